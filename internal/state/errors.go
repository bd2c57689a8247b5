package state

import "fmt"

// ContractViolation is raised (as a panic value) when an operation names a
// room absent from the room set. The server guarantees rooms exist before
// they are referenced, so a violation means local state can no longer be
// trusted and the session must end.
type ContractViolation struct {
	Op   string
	Room string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("%s: unknown room %q", e.Op, e.Room)
}
