package usecase

import "time"

// now marca de tiempo con precisión de microsegundos (la de timestamptz), para que
// el updated_at devuelto al cliente sirva luego como control de concurrencia.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
