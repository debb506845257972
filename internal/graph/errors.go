package graph

import "fmt"

// InvalidHandleError reports a handle that is out of range or points
// at a tombstoned slot.
type InvalidHandleError struct {
	Handle int
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("invalid handle: %d", e.Handle)
}

// MalformedHandleError reports a token that is neither a known alias
// nor parseable as a handle.
type MalformedHandleError struct {
	Token string
}

func (e *MalformedHandleError) Error() string {
	return fmt.Sprintf("malformed handle: %q", e.Token)
}

// InvalidAliasError reports a token with no alias entry.
type InvalidAliasError struct {
	Alias string
}

func (e *InvalidAliasError) Error() string {
	return fmt.Sprintf("invalid alias: %q", e.Alias)
}

// InvalidDateError reports a calendar-valid date with no date node.
type InvalidDateError struct {
	Date string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("no date node for %s", e.Date)
}

// MalformedDateError reports a token that cannot be read as a date.
type MalformedDateError struct {
	Token string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date: %q", e.Token)
}

// NotTaskError reports a state change attempted on a node that carries
// no completion state.
type NotTaskError struct {
	Handle int
}

func (e *NotTaskError) Error() string {
	return fmt.Sprintf("node %d is not a task node", e.Handle)
}

// CycleError reports a traversal that re-entered its own starting
// handle.
type CycleError struct {
	Start     int
	Reentered int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("graph looped back: %d->...->%d->%d", e.Start, e.Reentered, e.Start)
}
