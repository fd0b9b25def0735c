package render

import (
	"errors"
	"fmt"
)

// ErrAlreadyInstantiated is returned by New after the first successful call.
var ErrAlreadyInstantiated = errors.New("render may only be instantiated once")

// ErrDBNil is returned when New is called without a database.
var ErrDBNil = errors.New("database connection is nil")

// RegisterError reports a shortcode that could not be registered.
type RegisterError struct {
	Extension string
	Category  string
	Code      string
	Err       error
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("%s/%s: shortcode %q: %v", e.Extension, e.Category, e.Code, e.Err)
}

func (e *RegisterError) Unwrap() error {
	return e.Err
}
