package application

import (
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

// notify logs the notification and forwards it when a notifier is attached
func notify(n output.Notifier, variant domain.NotificationVariant, title, description string) {
	entry := logrus.WithFields(logrus.Fields{"title": title, "variant": variant})
	if variant == domain.NotificationDestructive {
		entry.Warn(description)
	} else {
		entry.Info(description)
	}
	if n == nil {
		return
	}
	n.Notify(domain.Notification{Title: title, Description: description, Variant: variant})
}

func notifyError(n output.Notifier, title, description string) {
	notify(n, domain.NotificationDestructive, title, description)
}

func notifyInfo(n output.Notifier, title, description string) {
	notify(n, domain.NotificationDefault, title, description)
}
