package models

import "time"

// User represents a registered account. The password hash and salt are never
// serialized into API responses, only into the persisted user document.
type User struct {
	UserID           string    `json:"user_id"`
	Username         string    `json:"username"`
	HashedPassword   string    `json:"hashed_password"`
	Salt             string    `json:"salt"`
	RegistrationDate time.Time `json:"registration_date"`
}
