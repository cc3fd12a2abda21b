package model

import "time"

// User is the single admin account. Password holds the bcrypt hash and is
// excluded from JSON so no response can ever carry it.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
