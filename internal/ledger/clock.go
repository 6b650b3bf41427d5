package ledger

import "time"

// Clock supplies the recording timestamp. The host environment injects it so
// the ledger never reads ambient wall-clock state directly; tests substitute
// a fixed clock for deterministic records.
type Clock interface {
	// Now returns the current unix time in seconds.
	Now() int64
}

// SystemClock reads the operating system clock.
type SystemClock struct{}

// Now returns time.Now() as unix seconds.
func (SystemClock) Now() int64 {
	return time.Now().Unix()
}
