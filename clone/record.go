package clone

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrUncloneable = errors.New("value cannot be cloned structurally")
	ErrTooDeep     = errors.New("value nesting exceeds the maximum depth")
	ErrDropped     = errors.New("value is dropped entirely by the filtering rules")
	ErrTierPanic   = errors.New("clone tier panicked")
)

// ErrorRecord is the plain-data form an error takes after cloning.
// It still satisfies error, so it fits back into error-typed fields.
type ErrorRecord struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// NewErrorRecord reduces err to its name, message and, when err formats one
// with %+v, its stack.
func NewErrorRecord(err error) *ErrorRecord {
	if err == nil {
		return nil
	}

	if rec, ok := err.(*ErrorRecord); ok && rec != nil {
		cp := *rec
		return &cp
	}

	msg := err.Error()

	var stack string
	if _, ok := err.(fmt.Formatter); ok {
		if verbose := fmt.Sprintf("%+v", err); verbose != msg {
			stack = verbose
		}
	}

	return &ErrorRecord{
		Name:    reflect.TypeOf(err).String(),
		Message: msg,
		Stack:   stack,
	}
}

func (e *ErrorRecord) Error() string { return e.Message }

// asMap is the JSON tier's view of the record.
func (e *ErrorRecord) asMap() map[string]any {
	return map[string]any{
		"name":    e.Name,
		"message": e.Message,
		"stack":   e.Stack,
	}
}
