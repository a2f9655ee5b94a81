package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth means the inference API key is missing or empty.
	ErrAuth = errors.New("inference API key missing")
	// ErrRequestFailed marks a non-2xx answer from a remote API.
	ErrRequestFailed = errors.New("request failed")
	// ErrNotFound means a barcode has no product, or a stored record is missing.
	ErrNotFound = errors.New("not found")
	// ErrParse means the model output could not be decoded into an AnalysisResult.
	ErrParse = errors.New("cannot parse analysis JSON")
	// ErrInvalidInput rejects malformed resolution input.
	ErrInvalidInput = errors.New("invalid input")
)

// RequestError carries the raw body of a failed remote call.
type RequestError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s request failed: %s", e.Service, e.Body)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error { return ErrRequestFailed }
