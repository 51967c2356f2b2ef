package customerr

import "github.com/pkg/errors"

// Storage level conditions, matched with errors.Is.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	ErrInUse     = errors.New("record is referenced")

	ErrMissingReference = errors.New("referenced record not found")
)

// ValidationError carries a message that is safe to show to the user.
type ValidationError struct {
	Err string
}

func (e *ValidationError) Error() string {
	return e.Err
}

type NotFoundError struct {
	Err string
}

func (e *NotFoundError) Error() string {
	return e.Err
}

type ConflictError struct {
	Err string
}

func (e *ConflictError) Error() string {
	return e.Err
}

// UserMessage returns the user-facing message of a business error, if err is one.
func UserMessage(err error) (string, bool) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Err, true
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Err, true
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.Err, true
	}
	return "", false
}
