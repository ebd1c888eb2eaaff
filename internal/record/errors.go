package record

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductType     = errors.New("product has wrong type")
	ErrDuplicatePut    = errors.New("product already put")
)

// RetrievalError reports a failed product lookup. It is fatal for the event.
type RetrievalError struct {
	Tag InputTag
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("get %s: %v", e.Tag, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
