package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/ports/input"
	"storefront/pkg/validator"
)

// Pinger reports whether a backing store is reachable
type Pinger func(ctx context.Context) error

// Services struct - use cases served over HTTP
type Services struct {
	Catalog         input.CatalogService
	Recommendations input.RecommendationService
	Cart            input.CartService
	Checkout        input.CheckoutService
	Assistant       input.AssistantService
	Dashboard       input.DashboardService
}

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	srv       Services
	ping      Pinger
	validator validator.Validator
}

// New func - Creates new HTTP handler; ping may be nil
func New(services Services, ping Pinger) *HTTPHandler {
	return &HTTPHandler{
		srv:       services,
		ping:      ping,
		validator: validator.New(),
	}
}

// HealthCheck func
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.ping != nil {
		if err := hdl.ping(c.UserContext()); err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(ResponseBody{Status: ServiceUnavailable})
		}
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
