package terminal

import "time"

// Backend abstracts physical terminal I/O
type Backend interface {
	// Init enters the terminal mode (raw, alternate screen)
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Write stages cell updates for the next Flush
	Write(updates []CellUpdate) error

	// Flush makes staged updates visible
	Flush() error

	// Poll waits up to timeout for the first input item (0 = non-blocking),
	// then returns it with every other item already available
	Poll(timeout time.Duration) ([]RawEvent, error)
}

// MaxCells bounds the cell count of any grid a backend or buffer holds
const MaxCells = 1 << 22

// ValidSize reports whether a width x height grid is non-negative and
// within MaxCells
func ValidSize(width, height int) bool {
	if width < 0 || height < 0 {
		return false
	}
	return height == 0 || width <= MaxCells/height
}
