package record

import (
	"errors"
)

var (
	ErrMissingField = errors.New("record: question or answer field is missing")
	ErrEmptyField   = errors.New("record: question and answer must not be empty")
	ErrInvalidField = errors.New("record: field contains a tab or line break")
)
