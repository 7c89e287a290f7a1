package htree

import (
	"errors"
	"fmt"
)

// ErrAllocation is returned if the container or its copy of the source
// cannot be allocated, i.e. the source exceeds the configured size limit.
var ErrAllocation = errors.New("htree: cannot allocate container")

// ErrParse is returned if the parser could not produce any tree.
var ErrParse = errors.New("htree: parse failure")

// MisuseError is the panic value for violations of the handle contract.
// It signals a programming error, never a recoverable condition.
type MisuseError struct {
	Op  string // operation which detected the misuse
	Msg string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("htree: misuse in %s: %s", e.Op, e.Msg)
}

func misuse(op string, msg string, msgargs ...interface{}) {
	err := &MisuseError{Op: op, Msg: fmt.Sprintf(msg, msgargs...)}
	tracer().Errorf("%s", err.Error())
	panic(err)
}
