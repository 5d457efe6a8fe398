package converter

import "github.com/jonboulle/clockwork"

// clock supplies the single run timestamp used for both the version and updated_at.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
