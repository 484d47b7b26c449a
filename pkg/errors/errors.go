// Package errors provides the error kinds shared by the ctxgen packages.
// Every failure surfaced to the CLI is a *ScanError carrying a Kind, so callers
// can tell fatal conditions (missing root, bad pattern) from recoverable ones.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported from the standard errors package for convenience.
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Kind classifies a ScanError.
type Kind int

const (
	Unknown Kind = iota
	// PathNotFound means the scan root does not exist.
	PathNotFound
	// PathResolution means the root could not be made absolute or canonical.
	PathResolution
	// InvalidPattern means an exclude string is not a valid glob.
	InvalidPattern
	// IO is an open/read failure on a specific file or directory.
	IO
	// CatalogLoad means the category catalog source is malformed.
	CatalogLoad
	// InvalidCategory means one or more category IDs are unknown.
	InvalidCategory
	// InvalidConfig means the configuration file could not be used.
	InvalidConfig
)

var kindNames = map[Kind]string{
	Unknown:         "unknown",
	PathNotFound:    "path not found",
	PathResolution:  "path resolution",
	InvalidPattern:  "invalid pattern",
	IO:              "io",
	CatalogLoad:     "catalog load",
	InvalidCategory: "invalid category",
	InvalidConfig:   "invalid config",
}

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ScanError is the error type returned by ctxgen packages.
type ScanError struct {
	msg  string
	path string
	err  error
	kind Kind
}

// NewError creates a ScanError. path and err may be empty/nil.
func NewError(kind Kind, msg, path string, err error) *ScanError {
	return &ScanError{msg: msg, path: path, err: err, kind: kind}
}

// Error returns the error message.
func (e *ScanError) Error() string {
	switch {
	case e.path != "" && e.err != nil:
		return fmt.Sprintf("%s %q: %v", e.msg, e.path, e.err)
	case e.path != "":
		return fmt.Sprintf("%s %q", e.msg, e.path)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error.
func (e *ScanError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error.
func (e *ScanError) Kind() Kind {
	return e.kind
}

// Path returns the file path associated with the error, if any.
func (e *ScanError) Path() string {
	return e.path
}

// Is reports whether target is a ScanError of the same kind. It lets callers
// compare against the sentinel values below with errors.Is.
func (e *ScanError) Is(target error) bool {
	t, ok := target.(*ScanError)
	if !ok {
		return false
	}
	return t.msg == "" && t.path == "" && t.err == nil && t.kind == e.kind
}

// Sentinels usable with errors.Is.
var (
	ErrPathNotFound    = &ScanError{kind: PathNotFound}
	ErrPathResolution  = &ScanError{kind: PathResolution}
	ErrInvalidPattern  = &ScanError{kind: InvalidPattern}
	ErrIO              = &ScanError{kind: IO}
	ErrCatalogLoad     = &ScanError{kind: CatalogLoad}
	ErrInvalidCategory = &ScanError{kind: InvalidCategory}
	ErrInvalidConfig   = &ScanError{kind: InvalidConfig}
)

// Wrap wraps an existing error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ScanError{msg: msg, err: err, kind: KindOf(err)}
}

// Wrapf wraps an existing error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ScanError{msg: fmt.Sprintf(format, args...), err: err, kind: KindOf(err)}
}

// KindOf returns the kind of the first ScanError in err's chain, or Unknown.
func KindOf(err error) Kind {
	var se *ScanError
	if errors.As(err, &se) {
		return se.kind
	}
	return Unknown
}

// IsPathNotFound checks if the error is a missing-root error.
func IsPathNotFound(err error) bool { return KindOf(err) == PathNotFound }

// IsInvalidPattern checks if the error is a glob compilation error.
func IsInvalidPattern(err error) bool { return KindOf(err) == InvalidPattern }

// IsIO checks if the error is a per-file I/O error.
func IsIO(err error) bool { return KindOf(err) == IO }

// IsCatalogLoad checks if the error is a catalog load error.
func IsCatalogLoad(err error) bool { return KindOf(err) == CatalogLoad }

// IsFatal reports whether err must end the run. Catalog load failures are
// the only kind that degrade locally.
func IsFatal(err error) bool {
	return err != nil && KindOf(err) != CatalogLoad
}
