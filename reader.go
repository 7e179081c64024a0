package sheetio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

/* =========================================================
 *  Session
 * ========================================================= */

// Reader is a read session over one spreadsheet file or stream. The
// workbook is decoded on first access and memoized for the session's
// lifetime. A Reader is not safe for concurrent use without external
// synchronization.
type Reader struct {
	opts Options
	src  io.Reader
	owns bool
	wb   *workbook
}

// Open opens a spreadsheet file from disk. The session owns the file
// handle; Close releases it.
func Open(path string, opts ...Option) (*Reader, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	applyDefaults(&o)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sheetio: open %s: %w", path, err)
	}
	return &Reader{opts: o, src: f, owns: true}, nil
}

// New wraps an already-open stream. The stream remains owned by the
// caller unless TakeOwnership() is given. Format auto-detection needs
// a seekable stream positioned at the start; for anything else pass
// WithFormat.
func New(r io.Reader, opts ...Option) *Reader {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	applyDefaults(&o)
	return &Reader{opts: o, src: r, owns: o.OwnStream}
}

/* =========================================================
 *  Format Detection
 * ========================================================= */

// detectFormat classifies the stream by its first two bytes ("PK"
// means zip-based OpenXML, anything else legacy binary) and restores
// the position to the start.
func detectFormat(rs io.ReadSeeker) (Format, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return FormatAuto, fmt.Errorf("sheetio: seek: %w", err)
	}
	var magic [2]byte
	if _, err := io.ReadFull(rs, magic[:]); err != nil {
		return FormatAuto, fmt.Errorf("sheetio: read magic: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return FormatAuto, fmt.Errorf("sheetio: seek: %w", err)
	}
	if magic[0] == 'P' && magic[1] == 'K' {
		return FormatXLSX, nil
	}
	return FormatXLS, nil
}

/* =========================================================
 *  Decode & Dispose
 * ========================================================= */

// ensureDecoded decodes the workbook at most once per session.
func (r *Reader) ensureDecoded() (*workbook, error) {
	if r.wb != nil {
		return r.wb, nil
	}

	format := r.opts.Format
	if format == FormatAuto {
		rs, ok := r.src.(io.ReadSeeker)
		if !ok {
			return nil, ErrFormatDetect
		}
		f, err := detectFormat(rs)
		if err != nil {
			return nil, err
		}
		format = f
	}

	var wb *workbook
	var err error
	switch format {
	case FormatXLSX:
		wb, err = decodeXLSX(r.src)
	case FormatXLS:
		rs, ok := r.src.(io.ReadSeeker)
		if !ok {
			// The legacy decoder needs random access.
			buf, rerr := io.ReadAll(r.src)
			if rerr != nil {
				return nil, fmt.Errorf("sheetio: buffer stream: %w", rerr)
			}
			rs = bytes.NewReader(buf)
		}
		wb, err = decodeXLS(rs, r.opts.Charset)
	default:
		return nil, fmt.Errorf("sheetio: unknown format %d", format)
	}
	if err != nil {
		return nil, err
	}

	r.wb = wb
	return wb, nil
}

// legacyDates reports whether the session decoded a legacy binary
// workbook, whose date cells arrive as serial numbers.
func (r *Reader) legacyDates() bool {
	return r.wb != nil && r.wb.format == FormatXLS
}

// Close releases the decoder and, if owned, the underlying stream.
// Every release step runs even when an earlier one fails; failures are
// joined. Close is idempotent.
func (r *Reader) Close() error {
	var errs []error
	if r.wb != nil && r.wb.closer != nil {
		if err := r.wb.closer.Close(); err != nil {
			errs = append(errs, err)
		}
		r.wb.closer = nil
	}
	if r.owns {
		if c, ok := r.src.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		r.owns = false
	}
	return errors.Join(errs...)
}

/* =========================================================
 *  Sheet Selection
 * ========================================================= */

// SheetRef selects one sheet of the workbook.
type SheetRef struct {
	name   string
	index  int
	byName bool
}

// ByName selects a sheet by exact, case-sensitive name.
func ByName(name string) SheetRef {
	return SheetRef{name: name, byName: true}
}

// ByIndex selects a sheet by zero-based position.
func ByIndex(idx int) SheetRef {
	return SheetRef{index: idx}
}

func (r *Reader) resolveSheet(ref SheetRef) (*sheet, error) {
	wb, err := r.ensureDecoded()
	if err != nil {
		return nil, err
	}
	if ref.byName {
		return wb.sheetNamed(ref.name)
	}
	return wb.sheetAt(ref.index)
}

// Sheets returns the workbook's sheet names in order.
func (r *Reader) Sheets() ([]string, error) {
	wb, err := r.ensureDecoded()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.name
	}
	return names, nil
}
