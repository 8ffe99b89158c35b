package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalid      = errors.New("invalid")
	ErrCollaborator = errors.New("collaborator failure")
	ErrPersistence  = errors.New("persistence failure")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

func IsCollaborator(err error) bool {
	return errors.Is(err, ErrCollaborator)
}

func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// StageError marks which analysis stage failed. The orchestrator
// returns it so callers can tell a citation failure from a similarity
// failure without parsing messages.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("analysis stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// AsStageError returns the StageError in err's chain, if any.
func AsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
