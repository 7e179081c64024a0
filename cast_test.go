package sheetio

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSerialToTime(t *testing.T) {
	got, err := serialToTime(1)
	require.NoError(t, err)
	require.Equal(t, time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC), got)

	got, err = serialToTime(2.5)
	require.NoError(t, err)
	require.Equal(t, time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC), got)

	_, err = serialToTime(0)
	require.Error(t, err)
}

func TestCastCellNil(t *testing.T) {
	v, err := castCell(nil, reflect.TypeOf((*int)(nil)), false)
	require.NoError(t, err)
	require.True(t, v.IsNil())

	v, err = castCell(nil, reflect.TypeOf(""), false)
	require.NoError(t, err)
	require.Equal(t, "", v.Interface())

	v, err = castCell(nil, timeType, true)
	require.NoError(t, err)
	require.True(t, v.Interface().(time.Time).IsZero())
}

func TestCastCellScalars(t *testing.T) {
	v, err := castCell("42", reflect.TypeOf(0), false)
	require.NoError(t, err)
	require.Equal(t, 42, v.Interface())

	v, err = castCell(" 3.5 ", reflect.TypeOf(0.0), false)
	require.NoError(t, err)
	require.Equal(t, 3.5, v.Interface())

	v, err = castCell("yes", reflect.TypeOf(false), false)
	require.NoError(t, err)
	require.Equal(t, true, v.Interface())

	v, err = castCell(float64(7), reflect.TypeOf(int64(0)), false)
	require.NoError(t, err)
	require.Equal(t, int64(7), v.Interface())

	v, err = castCell(float64(1.25), reflect.TypeOf(""), false)
	require.NoError(t, err)
	require.Equal(t, "1.25", v.Interface())
}

func TestCastCellPointer(t *testing.T) {
	v, err := castCell("7", reflect.TypeOf((*int)(nil)), false)
	require.NoError(t, err)
	require.Equal(t, 7, *v.Interface().(*int))
}

func TestCastCellFailure(t *testing.T) {
	_, err := castCell("abc", reflect.TypeOf(0), false)
	require.Error(t, err)

	var ce *CoercionError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "abc", ce.Value)
	require.Equal(t, "int", ce.Target)
	require.Error(t, ce.Err)
}

func TestCastCellLegacyDate(t *testing.T) {
	// Legacy binary sessions read numeric cells as date serials.
	v, err := castCell("1", timeType, true)
	require.NoError(t, err)
	require.Equal(t, time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC), v.Interface())

	// The zip-based path parses date text instead.
	v, err = castCell("2021-03-04", timeType, false)
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), v.Interface())
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "T", "Yes", "y", "ON"} {
		b, err := parseBool(s)
		require.NoError(t, err)
		require.True(t, b)
	}
	for _, s := range []string{"0", "false", "F", "No", "n", "off"} {
		b, err := parseBool(s)
		require.NoError(t, err)
		require.False(t, b)
	}
	_, err := parseBool("maybe")
	require.Error(t, err)
}

func TestParseTimeLayouts(t *testing.T) {
	for _, s := range []string{"2021-03-04", "04/03/2021", "2021/03/04"} {
		got, err := parseTime(s)
		require.NoError(t, err)
		require.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), got)
	}

	got, err := parseTime("2021-03-04 15:30")
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, 3, 4, 15, 30, 0, 0, time.UTC), got)

	_, err = parseTime("not a date")
	require.Error(t, err)
}
