package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ridoystarlord/lifeplan/assets"
	"github.com/ridoystarlord/lifeplan/store"
)

// errorHandler renders every failed request as {"detail": "..."}.
func errorHandler(c *fiber.Ctx, err error) error {
	code, detail := classify(err)
	if code >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"detail": detail})
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, store.ErrNotFound), errors.Is(err, assets.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, store.ErrConflict), errors.Is(err, assets.ErrExists):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, store.ErrInvalid), errors.Is(err, assets.ErrInvalid):
		return fiber.StatusBadRequest, err.Error()
	}
	return fiber.StatusInternalServerError, "internal server error"
}

// bind decodes query parameters on GET and the JSON body otherwise.
func bind(c *fiber.Ctx, v any) error {
	if c.Method() == fiber.MethodGet {
		if err := c.QueryParser(v); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid query: "+err.Error())
		}
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return nil
}

func date(s string) (time.Time, error) {
	return store.ParseDate(s)
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
}
