package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedScheme is returned for links whose scheme has no parser.
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	// ErrInvalidPayload is returned when a legacy vmess payload is not JSON.
	ErrInvalidPayload = errors.New("invalid vmess payload")
)

// ParseError is the only error Parse returns. Kind is one of the package sentinels.
type ParseError struct {
	Link   string
	Scheme string
	Kind   error
	Cause  error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if errors.Is(e.Kind, ErrUnsupportedScheme) {
		scheme := e.Scheme
		if scheme == "" {
			scheme = "(empty)"
		}
		return fmt.Sprintf("%v: %s", e.Kind, scheme)
	}
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

func (e *ParseError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
