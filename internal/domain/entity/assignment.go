package entity

import "time"

// Assignment vínculo usuario↔cliente: el usuario puede ver el cliente.
// La clave (UserID, ClientID) es única.
type Assignment struct {
	UserID    string
	ClientID  string
	CreatedAt time.Time
}
