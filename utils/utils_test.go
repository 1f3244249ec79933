package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewValidationError("date", "bad date"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", NewNotFoundError("appointment", "x")), http.StatusNotFound},
		{NewConflictError("slot %s taken", "10:00"), http.StatusConflict},
		{ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "date: bad date", NewValidationError("date", "bad date").Error())
	assert.Equal(t, "bad payload", (&ValidationError{Message: "bad payload"}).Error())
	assert.Equal(t, "appointment 42 not found", NewNotFoundError("appointment", "42").Error())
	assert.Equal(t, "settings not found", NewNotFoundError("settings", "").Error())
}

func serve(h gin.HandlerFunc, body string) (*httptest.ResponseRecorder, Response) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/", h)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRespondErrorEnvelope(t *testing.T) {
	w, resp := serve(func(c *gin.Context) {
		RespondError(c, NewValidationError("timeSlots", "invalid time slot"))
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid time slot", resp.Error)
	assert.Equal(t, "timeSlots", resp.Field)

	w, resp = serve(func(c *gin.Context) {
		RespondError(c, NewConflictError("Date is already blocked"))
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Date is already blocked", resp.Error)
}

func TestBindJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name" binding:"required"`
	}
	handler := func(c *gin.Context) {
		var p payload
		if !BindJSON(c, &p) {
			return
		}
		Success(c, "ok", p)
	}

	w, resp := serve(handler, `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email", resp.Field)
	assert.Contains(t, resp.Error, "email must be a valid email address")
	assert.Contains(t, resp.Error, "name is required")

	w, resp = serve(handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Error, "invalid request payload")

	w, resp = serve(handler, `{"email":"a@b.co","name":"Ada"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	w, resp := serve(func(c *gin.Context) { panic("kaboom") }, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, resp.Success)
	assert.NotContains(t, resp.Error, "kaboom")
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("s")
	tok, err := GenerateToken(secret, "owner@example.com", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", claims["sub"])
	assert.Equal(t, "admin", claims["role"])

	_, err = ValidateToken([]byte("other"), tok)
	assert.Error(t, err)

	_, err = GenerateToken(nil, "x", "admin", time.Hour)
	assert.Error(t, err)
}

func TestCheckHealthWithoutClients(t *testing.T) {
	status := CheckHealth(context.Background(), nil, nil)
	assert.True(t, status.Mongo)
	assert.True(t, status.Redis)
	assert.Equal(t, status, GetHealthStatus())
}
