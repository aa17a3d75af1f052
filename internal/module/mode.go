package module

// Mode is a module's advertised stance on whether an action (joining, or
// starting a round) is currently permitted.
type Mode interface {
	isMode()
}

// OpenMode means the action is currently permitted.
type OpenMode struct{}

func (OpenMode) isMode() {}

// Open is the canonical OpenMode value.
var Open = OpenMode{}

// ClosedMode means the action is currently refused, with a human-readable
// reason to relay to the player who attempted it.
type ClosedMode struct {
	Reason string
}

func (ClosedMode) isMode() {}

// Closed constructs a ClosedMode with the given reason.
func Closed(reason string) ClosedMode {
	return ClosedMode{Reason: reason}
}
