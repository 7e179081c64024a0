package sheetio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

/* =========================================================
 *  Date Serials (legacy binary format)
 * ========================================================= */

// serialEpoch is the base of the legacy binary date serial numbers.
// The 1899-12-30 base absorbs the format's 1900 leap-year quirk, so
// serial 1 is 1899-12-31 UTC.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// serialToTime converts a date serial (whole days since the epoch,
// fraction of a day as time) to a UTC time.
func serialToTime(serial float64) (time.Time, error) {
	if serial <= 0 {
		return time.Time{}, fmt.Errorf("invalid date serial: %v", serial)
	}
	days := int64(serial)
	frac := serial - float64(days)

	t := serialEpoch.AddDate(0, 0, int(days))
	sec := int64(frac*86400 + 0.5)
	return t.Add(time.Duration(sec) * time.Second), nil
}

/* =========================================================
 *  Scalar Parsing
 * ========================================================= */

// parseBool converts various common boolean strings into bool.
func parseBool(raw string) (bool, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool: %q", raw)
}

// parseTime attempts to parse a time value from cell text. It tries,
// in order: RFC3339, several common date/time layouts, and finally a
// date serial number.
func parseTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	layouts := []string{
		"2006-01-02",
		"02/01/2006",
		"02-01-2006",
		"2006/01/02",
		"02/01/2006 15:04",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"02-01-2006 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err2 := serialToTime(f); err2 == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse time: %q", raw)
}

/* =========================================================
 *  Cell Cast
 * ========================================================= */

// cellString renders a cell value as text.
func cellString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case time.Time:
		return s.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

func coercionErr(v any, t reflect.Type, err error) error {
	return &CoercionError{Value: v, Target: t.String(), Err: err}
}

// castCell coerces one cell value to the target type. Nil cells stay
// nil for pointer targets and become the zero value otherwise. Pointer
// targets are unwrapped for conversion and re-wrapped. When
// legacyDates is set, numeric cells aimed at time.Time are read as
// date serial numbers instead of going through generic parsing.
func castCell(v any, t reflect.Type, legacyDates bool) (reflect.Value, error) {
	if t.Kind() == reflect.Ptr {
		if v == nil {
			return reflect.Zero(t), nil
		}
		elem, err := castCell(v, t.Elem(), legacyDates)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	}
	if v == nil {
		return reflect.Zero(t), nil
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		out.SetString(cellString(v))
		return out, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := castInt(v)
		if err != nil {
			return reflect.Value{}, coercionErr(v, t, err)
		}
		out.SetInt(n)
		return out, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := castUint(v)
		if err != nil {
			return reflect.Value{}, coercionErr(v, t, err)
		}
		out.SetUint(n)
		return out, nil

	case reflect.Float32, reflect.Float64:
		f, err := castFloat(v)
		if err != nil {
			return reflect.Value{}, coercionErr(v, t, err)
		}
		out.SetFloat(f)
		return out, nil

	case reflect.Bool:
		b, err := castBool(v)
		if err != nil {
			return reflect.Value{}, coercionErr(v, t, err)
		}
		out.SetBool(b)
		return out, nil

	case reflect.Struct:
		if t == timeType {
			tm, err := castTime(v, legacyDates)
			if err != nil {
				return reflect.Value{}, coercionErr(v, t, err)
			}
			return reflect.ValueOf(tm), nil
		}
	}

	return reflect.Value{}, coercionErr(v, t, fmt.Errorf("unsupported kind %s", t.Kind()))
}

func castInt(v any) (int64, error) {
	switch s := v.(type) {
	case float64:
		return int64(s), nil
	case int:
		return int64(s), nil
	case int64:
		return s, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return 0, fmt.Errorf("not an integer: %v (%T)", v, v)
}

func castUint(v any) (uint64, error) {
	switch s := v.(type) {
	case float64:
		if s < 0 {
			return 0, fmt.Errorf("negative value: %v", s)
		}
		return uint64(s), nil
	case int:
		if s < 0 {
			return 0, fmt.Errorf("negative value: %v", s)
		}
		return uint64(s), nil
	case string:
		return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	}
	return 0, fmt.Errorf("not an unsigned integer: %v (%T)", v, v)
}

func castFloat(v any) (float64, error) {
	switch s := v.(type) {
	case float64:
		return s, nil
	case int:
		return float64(s), nil
	case int64:
		return float64(s), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	return 0, fmt.Errorf("not a number: %v (%T)", v, v)
}

func castBool(v any) (bool, error) {
	switch s := v.(type) {
	case bool:
		return s, nil
	case float64:
		return s != 0, nil
	case string:
		return parseBool(s)
	}
	return false, fmt.Errorf("not a bool: %v (%T)", v, v)
}

func castTime(v any, legacyDates bool) (time.Time, error) {
	switch s := v.(type) {
	case time.Time:
		return s, nil
	case float64:
		return serialToTime(s)
	case string:
		if legacyDates {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return serialToTime(f)
			}
		}
		return parseTime(s)
	}
	return time.Time{}, fmt.Errorf("not a time: %v (%T)", v, v)
}
