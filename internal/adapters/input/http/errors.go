package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/pkg/log"
	"storefront/pkg/validator"
)

// statusFor maps domain errors onto HTTP statuses
func statusFor(err error) Status {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return BadRequest
	case errors.Is(err, domain.ErrNotFound):
		return NotFound
	case errors.Is(err, domain.ErrBusy), errors.Is(err, domain.ErrInvalidTransition):
		return ConFlict
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrCaptureUnavailable):
		return Unprocessable
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrEndpointUnavailable):
		return ServiceUnavailable
	default:
		return InternalServerError
	}
}

// fail writes err with its mapped status, the collected notifications and optional data
func fail(c *fiber.Ctx, err error, data interface{}) error {
	status := statusFor(err)
	entry := logrus.WithFields(log.Fields{
		"path":           c.Path(),
		log.RequestIDKey: c.Locals(log.RequestIDKey),
	})
	if status.Code >= fiber.StatusInternalServerError {
		entry.Errorln(err)
	} else {
		entry.Warnln(err)
	}
	msg := ResponseBody{
		Status:        Status{Code: status.Code, Message: []string{err.Error()}},
		Data:          data,
		Notifications: notifications(c),
	}
	return c.Status(status.Code).JSON(msg)
}

// badRequest writes a 400 for a malformed or invalid request
func badRequest(c *fiber.Ctx, err error) error {
	logrus.Errorln(err)
	msg := ResponseBody{
		Status: BadRequest,
	}
	msg.Status.Message = validator.Messages(err)
	return c.Status(fiber.StatusBadRequest).JSON(msg)
}

// ok writes a 200 with the collected notifications
func ok(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: data, Notifications: notifications(c)})
}
