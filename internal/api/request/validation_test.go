package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

type sample struct {
	Name  string  `json:"name" validate:"required"`
	Stage string  `json:"stage" validate:"omitempty,oneof=a b"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	return de.Code
}

func TestValidateRequiredUsesJSONName(t *testing.T) {
	err := Validate(&sample{})
	assert.Equal(t, "name_required", codeOf(t, err))
}

func TestValidateOneOf(t *testing.T) {
	err := Validate(&sample{Name: "x", Stage: "c"})
	assert.Equal(t, apperrors.CodeValidation, codeOf(t, err))
	assert.Contains(t, err.Error(), "stage must be one of")
}

func TestValidateOK(t *testing.T) {
	email := "ana@acme.test"
	assert.NoError(t, Validate(&sample{Name: "x", Stage: "a", Email: &email}))
}
