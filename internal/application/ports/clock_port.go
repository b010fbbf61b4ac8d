package ports

import "time"

// Clock provee la hora para sellar eventos (inyectable en tests).
type Clock interface {
	Now() time.Time
}

// SystemClock usa la hora del sistema en UTC.
type SystemClock struct{}

// Now implementa Clock.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock devuelve siempre el mismo instante.
type FixedClock struct{ At time.Time }

// Now implementa Clock.
func (c FixedClock) Now() time.Time { return c.At }
