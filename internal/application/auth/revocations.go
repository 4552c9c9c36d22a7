package auth

import (
	"sync"
	"time"
)

// Revocations registro en memoria de tokens cerrados (jti → expiración).
// Las entradas vencidas se descartan en cada Revoke.
type Revocations struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

// NewRevocations crea un registro vacío.
func NewRevocations() *Revocations {
	return &Revocations{items: map[string]time.Time{}, now: time.Now}
}

// Revoke marca el token como cerrado hasta expiresAt.
func (r *Revocations) Revoke(tokenID string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, exp := range r.items {
		if !exp.After(now) {
			delete(r.items, id)
		}
	}
	if expiresAt.After(now) {
		r.items[tokenID] = expiresAt
	}
}

// IsRevoked informa si el token está cerrado y todavía no expiró.
func (r *Revocations) IsRevoked(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.items[tokenID]
	return ok && exp.After(r.now())
}

// Len cantidad de tokens cerrados vigentes en el registro.
func (r *Revocations) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
