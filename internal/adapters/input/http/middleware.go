package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"

	"storefront/internal/application"
	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

const (
	notificationsLocal = "notifications"
	sessionLocal       = "cart_session_id"
)

// notificationCollector gathers the notifications raised while serving one request
type notificationCollector struct {
	mu    sync.Mutex
	items []domain.Notification
}

// Notify func
func (n *notificationCollector) Notify(notification domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, notification)
}

func (n *notificationCollector) list() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.items...)
}

// Notifications installs a per-request collector on the request context
func Notifications() fiber.Handler {
	return func(c *fiber.Ctx) error {
		collector := &notificationCollector{}
		c.Locals(notificationsLocal, collector)
		c.SetUserContext(output.ContextWithNotifier(c.UserContext(), collector))
		return c.Next()
	}
}

func collectorOf(c *fiber.Ctx) output.Notifier {
	collector, _ := c.Locals(notificationsLocal).(*notificationCollector)
	if collector == nil {
		return nil
	}
	return collector
}

func notifications(c *fiber.Ctx) []domain.Notification {
	collector, _ := c.Locals(notificationsLocal).(*notificationCollector)
	if collector == nil {
		return nil
	}
	return collector.list()
}

// cookieStorage keeps shopper values in cookies
type cookieStorage struct {
	c      *fiber.Ctx
	names  map[string]string
	maxAge int
}

// Get func
func (s *cookieStorage) Get(key string) (string, bool) {
	// the cookie value aliases the request buffer, which fasthttp reuses
	value := utils.CopyString(s.c.Cookies(s.cookieName(key)))
	return value, value != ""
}

// Set func
func (s *cookieStorage) Set(key, value string) {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.cookieName(key),
		Value:    value,
		Path:     "/",
		MaxAge:   s.maxAge,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *cookieStorage) cookieName(key string) string {
	if name, ok := s.names[key]; ok {
		return name
	}
	return key
}

// CartSession resolves the shopper's cart session id from a cookie, minting one on first visit
func CartSession(cookieName string, maxAgeDays int) fiber.Handler {
	if cookieName == "" {
		cookieName = domain.SessionIDKey
	}
	maxAge := maxAgeDays * 24 * 60 * 60
	return func(c *fiber.Ctx) error {
		storage := &cookieStorage{
			c:      c,
			names:  map[string]string{domain.SessionIDKey: cookieName},
			maxAge: maxAge,
		}
		id, err := application.ResolveSessionID(storage)
		if err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
		}
		c.Locals(sessionLocal, id)
		return c.Next()
	}
}

func sessionIDOf(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocal).(string)
	return id
}
