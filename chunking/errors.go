package chunking

import "fmt"

// ParameterError rejects an invalid parameter combination before any
// scanning begins. No partial output accompanies it.
type ParameterError struct {
	Param  string
	Value  int
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("chunking: invalid %s %d: %s", e.Param, e.Value, e.Reason)
}

// ChunkingError wraps an internal failure detected while scanning, such as
// a cursor that stopped advancing. It converts what would otherwise be an
// infinite loop into an explicit error instead of silently truncated
// output.
type ChunkingError struct {
	Strategy string
	Reason   string
}

func (e *ChunkingError) Error() string {
	return fmt.Sprintf("chunking: %s strategy: %s", e.Strategy, e.Reason)
}
