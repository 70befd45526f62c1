package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
)

var validate = validator.New()

// ErrorHandler renders every error returned by a handler or middleware as
// {"message": ..., "errors": {...}}. Internal errors are logged and their
// cause is never sent to the client.
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperrors.As(err); ok {
			body := fiber.Map{"message": appErr.Message}
			if len(appErr.Fields) > 0 {
				body["errors"] = appErr.Fields
			}
			if appErr.Kind == apperrors.KindInternal {
				logger.WithError(err).WithFields(logrus.Fields{
					"method": c.Method(),
					"path":   c.Path(),
				}).Error("Request failed")
			}
			return c.Status(appErr.HTTPCode()).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("Unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
}

// parseBody decodes the JSON body into out and validates it.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.Validation("Invalid request body", map[string]string{"body": err.Error()})
	}
	return validateStruct(out)
}

func validateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return apperrors.FromValidator(err)
	}
	return nil
}

// splitList accepts both repeated and comma separated values.
func splitList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// queryBool parses an optional boolean query parameter. A missing value
// yields absent and "all" yields nil.
func queryBool(c *fiber.Ctx, key string, absent *bool) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	switch strings.ToLower(raw) {
	case "":
		return absent, nil
	case "all":
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.Validation("Invalid query parameter", map[string]string{key: "must be true, false or all"})
	}
	return &v, nil
}

func queryValues(c *fiber.Ctx, key string) []string {
	var values []string
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		if string(k) == key {
			values = append(values, string(v))
		}
	})
	return values
}
