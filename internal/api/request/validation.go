package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Decode parses the JSON body into v and validates it. An empty body decodes
// as an empty object so that required checks report the missing field.
func Decode(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return apperrors.NewValidationError("invalid JSON body")
		}
	}
	return Validate(v)
}

// Validate runs struct validation and converts the first failure to a DomainError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.NewValidationError(err.Error())
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.NewRequiredField(fe.Field())
	case "oneof":
		return apperrors.NewValidationError(fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
	case "email":
		return apperrors.NewValidationError(fe.Field() + " must be a valid email")
	case "max", "min":
		return apperrors.NewValidationError(fmt.Sprintf("%s must respect %s=%s", fe.Field(), fe.Tag(), fe.Param()))
	}
	return apperrors.NewValidationError(fmt.Sprintf("%s is invalid", fe.Field()))
}

// RequireID returns the :id route parameter.
func RequireID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return "", apperrors.NewRequiredField("id")
	}
	return id, nil
}

// ListFilter reads the common list query parameters.
func ListFilter(c *fiber.Ctx) (repository.ListFilter, error) {
	var f repository.ListFilter
	f.Search = optionalQuery(c, "q")
	f.AccountID = optionalQuery(c, "account_id")
	f.ContactID = optionalQuery(c, "contact_id")
	f.DealID = optionalQuery(c, "deal_id")
	f.LeadID = optionalQuery(c, "lead_id")
	f.Status = optionalQuery(c, "status")
	f.Stage = optionalQuery(c, "stage")

	var err error
	if f.Limit, err = intQuery(c, "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = intQuery(c, "offset"); err != nil {
		return f, err
	}
	if f.DueFrom, err = int64Query(c, "due_from"); err != nil {
		return f, err
	}
	if f.DueTo, err = int64Query(c, "due_to"); err != nil {
		return f, err
	}
	return f, nil
}

func optionalQuery(c *fiber.Ctx, name string) *string {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	return &v
}

func intQuery(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperrors.NewValidationError(name + " must be a non-negative integer")
	}
	return v, nil
}

func int64Query(c *fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError(name + " must be epoch milliseconds")
	}
	return &v, nil
}
