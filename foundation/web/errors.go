package web

import "errors"

// RequestError wraps an error with the HTTP status it should be reported
// as, letting handlers return a plain error for 500s and a RequestError
// wherever the status matters (bad input, not found, conflict).
type RequestError struct {
	Err    error
	Status int
}

// NewRequestError wraps err so App.Handle reports it with status instead
// of the default 500.
func NewRequestError(err error, status int) error {
	return &RequestError{Err: err, Status: status}
}

func (re *RequestError) Error() string {
	return re.Err.Error()
}

// asRequestError is errors.As without making callers import errors too.
func asRequestError(err error, target *RequestError) bool {
	var re *RequestError
	if errors.As(err, &re) {
		*target = *re
		return true
	}
	return false
}
