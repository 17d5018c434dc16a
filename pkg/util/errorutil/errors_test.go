package errorutil

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"no rows", fmt.Errorf("get: %w", pgx.ErrNoRows), CodeNotFound, http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, CodeIDConflict, http.StatusConflict},
		{"foreign key", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), CodeInvalidReference, http.StatusConflict},
		{"fiber", fiber.ErrNotFound, CodeNotFound, http.StatusNotFound},
		{"domain", NewConflict(CodeAccountContacts, "x"), CodeAccountContacts, http.StatusConflict},
		{"other", fmt.Errorf("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			de := ToDomainError(tc.err)
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, tc.status, de.HTTPStatus)
		})
	}
	assert.Nil(t, ToDomainError(nil))
}

func TestRequiredFieldCode(t *testing.T) {
	de := ToDomainError(NewRequiredField("name"))
	assert.Equal(t, "name_required", de.Code)
	assert.Equal(t, "name is required", de.Message)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
}

func TestViolationHelpers(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
}
