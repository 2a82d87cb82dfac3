package interviewai

import "fmt"

// AdapterError wraps every failure of a generation or analysis call. The
// orchestrator treats it as a hard failure of the operation.
type AdapterError struct {
	Op  string
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("ai adapter %s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
