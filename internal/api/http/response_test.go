package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/security"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Validation", domain.NewValidationError("bad input"), http.StatusBadRequest},
		{"Conflict", domain.NewConflictError("already booked"), http.StatusBadRequest},
		{"InvalidState", domain.NewInvalidStateError("wrong state"), http.StatusBadRequest},
		{"Unauthorized", domain.NewUnauthorizedError("no token"), http.StatusUnauthorized},
		{"NotFound", domain.NewNotFoundError("missing"), http.StatusNotFound},
		{"Internal", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)

			var body envelope
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, assert.AnError)

	var body envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
}

func TestWriteList_NilBecomesEmptyArray(t *testing.T) {
	rec := httptest.NewRecorder()
	writeList[domain.Vehicle](rec, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestAuthenticateMiddleware(t *testing.T) {
	mgr := security.NewTokenManager("test-secret-test-secret-test-secret", time.Hour)
	handler := authenticate(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r.Context())
		writeData(w, http.StatusOK, claims.UserID)
	}))

	t.Run("MissingHeader", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BadToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := mgr.GenerateAccessToken(7, "staff@example.com", domain.UserRoleStaff)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":7`)
	})
}

func TestRequireRoles(t *testing.T) {
	mgr := security.NewTokenManager("test-secret-test-secret-test-secret", time.Hour)
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "ok")
	})
	handler = requireRoles(domain.UserRoleManager)(handler)
	handler = authenticate(mgr)(handler)

	request := func(role domain.UserRole) *httptest.ResponseRecorder {
		token, _ := mgr.GenerateAccessToken(7, "user@example.com", role)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, request(domain.UserRoleManager).Code)
	assert.Equal(t, http.StatusForbidden, request(domain.UserRoleStaff).Code)
	assert.Equal(t, http.StatusForbidden, request(domain.UserRoleCustomer).Code)
}
