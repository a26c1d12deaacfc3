package compiler

// Generation limits
const (
	// MaxStates is the largest number of value states a generated matcher
	// can track, one bit each in a uint64 state set.
	MaxStates = 64
)
