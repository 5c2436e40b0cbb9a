package application

import (
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

// ResolveSessionID returns the cart session id kept in storage, creating and storing one when absent.
// It is the one place a session id is minted.
func ResolveSessionID(storage output.SessionStorage) (string, error) {
	if id, ok := storage.Get(domain.SessionIDKey); ok && id != "" {
		return id, nil
	}

	id, err := domain.NewSessionID(time.Now())
	if err != nil {
		logrus.Errorln(err)
		return "", err
	}
	storage.Set(domain.SessionIDKey, id)
	logrus.Debugf("New cart session: %s", id)
	return id, nil
}
