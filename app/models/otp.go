package models

import "time"

// OTP is a one-time 6-digit email verification code.
// The most recently created code for an email is the only valid one,
// and it is deleted after a successful verification.
type OTP struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Code      string    `bson:"code" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
