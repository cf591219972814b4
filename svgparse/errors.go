package svgparse

import (
	"errors"
	"fmt"
)

// Hard error kinds returned by the parse entry points. Everything not
// covered here degrades silently: a malformed geometry attribute leaves
// its field at the structural default, and a dangling url(#id) resolves
// to the documented fallback instead of failing.
var (
	// ErrFormat reports a malformed transform list or an unresolvable
	// paint value.
	ErrFormat = errors.New("invalid format")

	// ErrInvalidDocument reports that the root element is missing or is
	// not an svg element.
	ErrInvalidDocument = errors.New("invalid svg document")

	// ErrEmptyInput reports a nil or zero-length input stream.
	ErrEmptyInput = errors.New("empty input")
)

// ErrorMode controls how the parser reacts to elements it cannot
// process.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs unsupported elements through the package logger.
	WarnErrorMode
	// StrictErrorMode aborts the parse on the first unsupported element.
	StrictErrorMode
)

func (c *context) handleUnsupported(tag string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return fmt.Errorf("cannot process svg element %q", tag)
	case WarnErrorMode:
		logger().Warn("cannot process svg element", "tag", tag)
	}
	return nil
}
