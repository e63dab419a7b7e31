package export

import "fmt"

// SinkError reports a sink that failed to store an artifact
type SinkError struct {
	Sink  string
	Cause error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("export sink %s: %v", e.Sink, e.Cause)
}

func (e *SinkError) Unwrap() error {
	return e.Cause
}
