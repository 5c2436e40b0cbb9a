package domain

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionIDKey is the storage key holding the cart session id
const SessionIDKey = "cart_session_id"

// NewSessionID generates an opaque cart session id: timestamp followed by a random suffix
func NewSessionID(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewOrderID generates an order confirmation id
func NewOrderID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), ulid.Monotonic(rand.Reader, 0)).String()
}
