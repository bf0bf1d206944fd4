package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the local replica of an account owned by the identity service.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	UpdatedAt time.Time
}
