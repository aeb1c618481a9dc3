package grade

import (
	"errors"
)

var (
	ErrInvalidGrade = errors.New("invalid grade")
	ErrNoHistory    = errors.New("no grade history for topic")
)
