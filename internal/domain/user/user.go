package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a chat participant, identified by the sender ID the gateway reports
// (a phone number for WhatsApp gateways).
type User struct {
	ID        uuid.UUID
	Phone     string
	Name      string
	AuthState string
	Login     string
	CreatedAt time.Time
	LastSeen  time.Time
}
