package ical

import (
	"fmt"
	"sort"
	"strings"
)

type CustomError struct {
	msg  string
	args map[string]any
}

// Create a new custom error
func NewCustomError(msg string, args map[string]any) *CustomError {
	if args == nil {
		args = make(map[string]any)
	}
	return &CustomError{
		msg:  msg,
		args: args,
	}
}

// Get the error message, args are listed by key
func (e CustomError) Error() string {
	keys := make([]string, 0, len(e.args))
	for key := range e.args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(e.msg)
	if len(keys) > 0 {
		sb.WriteString(" |")
	}
	for _, key := range keys {
		sb.WriteString(fmt.Sprintf(" %s: %v", key, e.args[key]))
	}
	return sb.String()
}

// Unwrap the "err" arg, if any
func (e CustomError) Unwrap() error {
	if err, ok := e.args["err"].(error); ok {
		return err
	}
	return nil
}
