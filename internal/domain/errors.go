package domain

import "errors"

var (
	// ErrConfig signals a malformed or incomplete configuration. Fatal at startup.
	ErrConfig = errors.New("invalid configuration")
	// ErrDataLoad signals a missing or corrupt registry table. Fatal at startup.
	ErrDataLoad = errors.New("data load failed")
	// ErrInvalidQuery signals malformed query input. Recoverable per request.
	ErrInvalidQuery = errors.New("invalid query")
)
