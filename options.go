package sheetio

import (
	"github.com/go-playground/validator/v10"
)

/* =========================================================
 *  Formats
 * ========================================================= */

// Format identifies the on-disk spreadsheet encoding.
type Format byte

const (
	// FormatAuto classifies the stream from its leading bytes.
	// Requires a seekable stream.
	FormatAuto Format = iota
	// FormatXLSX is the zip-based OpenXML encoding (.xlsx).
	FormatXLSX
	// FormatXLS is the legacy binary encoding (.xls).
	FormatXLS
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	}
	return "auto"
}

/* =========================================================
 *  Options
 * ========================================================= */

// Option is the configuration option type for Open/New.
type Option func(*Options)

// Options control how a spreadsheet session reads and maps data.
type Options struct {
	// Format is the explicit encoding of the input. FormatAuto sniffs
	// the stream's leading bytes on first access.
	Format Format

	// OwnStream makes the session close a caller-supplied stream on
	// Close. Sessions created with Open always own their file handle.
	OwnStream bool

	// HeaderReplacement replaces every invalid identifier character in
	// header cells. Empty (the default) removes them.
	HeaderReplacement string

	// IgnoreMappingErrors skips column assignments that fail during
	// object mapping instead of aborting the read.
	IgnoreMappingErrors bool

	// Charset is the text encoding used when decoding legacy binary
	// files. Defaults to "utf-8".
	Charset string

	// GoValidator, if set, validates every mapped object.
	GoValidator *validator.Validate
}

// applyDefaults fills in default values for unspecified options.
func applyDefaults(o *Options) {
	if o.Charset == "" {
		o.Charset = "utf-8"
	}
}

/* =========================================================
 *  Option Helpers (public API)
 * ========================================================= */

// WithFormat sets an explicit input format, bypassing detection.
func WithFormat(f Format) Option {
	return func(o *Options) { o.Format = f }
}

// TakeOwnership makes the session close a caller-supplied stream on
// Close. Has no effect for sessions created with Open, which always
// own their file handle.
func TakeOwnership() Option {
	return func(o *Options) { o.OwnStream = true }
}

// HeaderReplacement sets the replacement string for invalid identifier
// characters in header cells. The default removes them.
func HeaderReplacement(s string) Option {
	return func(o *Options) { o.HeaderReplacement = s }
}

// IgnoreMappingErrors makes MapRows skip failed column assignments
// instead of aborting. Resource, format and raw-grid conversion errors
// still propagate.
func IgnoreMappingErrors() Option {
	return func(o *Options) { o.IgnoreMappingErrors = true }
}

// Charset sets the text encoding for legacy binary files, e.g.
// "windows-1251". Defaults to "utf-8".
func Charset(cs string) Option {
	return func(o *Options) { o.Charset = cs }
}

// UseValidator sets the go-playground/validator instance used to
// validate mapped objects.
func UseValidator(v *validator.Validate) Option {
	return func(o *Options) { o.GoValidator = v }
}
