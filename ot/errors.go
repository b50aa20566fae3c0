package ot

import (
	"errors"
	"fmt"
)

// ErrInvalidFont is the error all fatal font format errors resolve to,
// i.e. errors.Is(err, ErrInvalidFont) holds for them.
var ErrInvalidFont = errors.New("invalid font file")

// ErrorSeverity represents the severity level of a font loading error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error which leaves the binary layout of a table unknown.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error that may affect shaping but doesn't prevent usage.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered while loading a layout table.
type FontError struct {
	Table    Tag           // The OpenType table where the error occurred (e.g., "GSUB", "GPOS")
	Section  string        // Specific section within the table (e.g., "LookupList", "Coverage")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Offset   uint32        // Byte offset within the table where the error occurred (0 if unknown)
}

// Error implements the error interface.
func (e FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// Unwrap lets critical font errors match ErrInvalidFont.
func (e FontError) Unwrap() error {
	if e.Severity == SeverityCritical {
		return ErrInvalidFont
	}
	return nil
}

// FontWarning represents a tolerated malformation encountered while loading.
// Warnings indicate potential problems but do not prevent font usage.
type FontWarning struct {
	Table  Tag    // The OpenType table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset within the table (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// warnings accumulates tolerated issues while a table is loaded.
type warnings struct {
	table Tag
	list  []FontWarning
}

func (w *warnings) add(offset int, format string, args ...any) {
	if w == nil {
		return
	}
	issue := fmt.Sprintf(format, args...)
	tracer().Infof("%s: tolerating malformed table at offset %d: %s", w.table, offset, issue)
	w.list = append(w.list, FontWarning{
		Table:  w.table,
		Issue:  issue,
		Offset: uint32(max(offset, 0)),
	})
}
