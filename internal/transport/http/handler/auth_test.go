package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/student-records-api/internal/domain"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Signup(ctx context.Context, req domain.SignupRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAuthSvc) VerifyAndRegister(ctx context.Context, req domain.VerifySignupRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(1).(*domain.User)
	return args.String(0), u, args.Error(2)
}
func (m *mockAuthSvc) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAuthSvc) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

// --- helpers ---

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}

// --- tests ---

func TestSignup_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	req := domain.SignupRequest{Username: "alice", Email: "a@x.com", Password: "secret1"}
	svc.On("Signup", mock.Anything, req).Return(nil)

	rr := postJSON(t, NewAuthHandler(svc).Signup, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OTP sent to your email", decodeBody(t, rr)["message"])
}

func TestSignup_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	NewAuthHandler(&mockAuthSvc{}).Signup(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSignup_ShortPasswordIs422(t *testing.T) {
	svc := &mockAuthSvc{}
	rr := postJSON(t, NewAuthHandler(svc).Signup, domain.SignupRequest{Username: "alice", Email: "a@x.com", Password: "123"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["error"], "password")
	svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSignup_AlreadyRegistered(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Signup", mock.Anything, mock.Anything).Return(domain.Reason(domain.ErrConflict, "Email already registered"))

	rr := postJSON(t, NewAuthHandler(svc).Signup, domain.SignupRequest{Username: "alice", Email: "a@x.com", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, rr)["error"])
}

func TestSignup_MultibytePasswordOverLimitIs422(t *testing.T) {
	svc := &mockAuthSvc{}
	rr := postJSON(t, NewAuthHandler(svc).Signup,
		domain.SignupRequest{Username: "alice", Email: "a@x.com", Password: strings.Repeat("é", 40)})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSignup_DeliveryFailureIs502(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Signup", mock.Anything, mock.Anything).Return(errors.Join(domain.ErrDelivery, errors.New("smtp down")))

	rr := postJSON(t, NewAuthHandler(svc).Signup, domain.SignupRequest{Username: "alice", Email: "a@x.com", Password: "secret1"})
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.NotContains(t, rr.Body.String(), "smtp down")
}

func TestVerifyOTPAndRegister_Created(t *testing.T) {
	svc := &mockAuthSvc{}
	req := domain.VerifySignupRequest{Username: "alice", Email: "a@x.com", Password: "secret1", OTP: "123456"}
	svc.On("VerifyAndRegister", mock.Anything, req).Return(&domain.User{UserID: "u1", Email: "a@x.com", PasswordHash: "secret-hash"}, nil)

	rr := postJSON(t, NewAuthHandler(svc).VerifyOTPAndRegister, req)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret-hash")
	user := decodeBody(t, rr)["user"].(map[string]interface{})
	assert.Equal(t, "u1", user["id"])
}

func TestVerifyOTPAndRegister_OTPErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		code int
		msg  string
	}{
		"expired":   {domain.ErrExpired, http.StatusBadRequest, "OTP expired"},
		"mismatch":  {domain.ErrMismatch, http.StatusBadRequest, "Incorrect OTP"},
		"not found": {domain.ErrNotFound, http.StatusNotFound, "not found"},
		"conflict":  {domain.ErrConflict, http.StatusConflict, "conflict"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &mockAuthSvc{}
			svc.On("VerifyAndRegister", mock.Anything, mock.Anything).Return(nil, tc.err)

			rr := postJSON(t, NewAuthHandler(svc).VerifyOTPAndRegister,
				domain.VerifySignupRequest{Username: "alice", Email: "a@x.com", Password: "secret1", OTP: "123456"})
			assert.Equal(t, tc.code, rr.Code)
			assert.Equal(t, tc.msg, decodeBody(t, rr)["error"])
		})
	}
}

func TestVerifyOTPAndRegister_NonNumericOTP(t *testing.T) {
	rr := postJSON(t, NewAuthHandler(&mockAuthSvc{}).VerifyOTPAndRegister,
		domain.VerifySignupRequest{Username: "alice", Email: "a@x.com", Password: "secret1", OTP: "12a456"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestLogin_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, domain.LoginRequest{Email: "a@x.com", Password: "secret1"}).
		Return("jwt-token", &domain.User{UserID: "u1"}, nil)

	rr := postJSON(t, NewAuthHandler(svc).Login, domain.LoginRequest{Email: "a@x.com", Password: "secret1"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "jwt-token", decodeBody(t, rr)["token"])
}

func TestLogin_InvalidCredentialsSameResponse(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return("", nil, domain.ErrInvalidCredentials)
	h := NewAuthHandler(svc)

	a := postJSON(t, h.Login, domain.LoginRequest{Email: "a@x.com", Password: "wrong"})
	b := postJSON(t, h.Login, domain.LoginRequest{Email: "ghost@x.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, a.Code)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("ForgotPassword", mock.Anything, mock.Anything).Return(domain.Reason(domain.ErrNotFound, "Email not found"))

	rr := postJSON(t, NewAuthHandler(svc).ForgotPassword, domain.ForgotPasswordRequest{Email: "ghost@x.com"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Email not found", decodeBody(t, rr)["error"])
}

func TestResetPassword_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	req := domain.ResetPasswordRequest{Email: "a@x.com", OTP: "123456", NewPassword: "newsecret"}
	svc.On("ResetPassword", mock.Anything, req).Return(nil)

	rr := postJSON(t, NewAuthHandler(svc).ResetPassword, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Password reset successful", decodeBody(t, rr)["message"])
}

func TestHTTPError_StoreFailureIsGeneric(t *testing.T) {
	rr := httptest.NewRecorder()
	httpError(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password authentication")
}

func TestHTTPError_StoreDetailsNotEchoed(t *testing.T) {
	cases := map[string]struct {
		err  error
		code int
		msg  string
	}{
		"unique violation": {fmt.Errorf("update profile: update user: users_email_key: %w", domain.ErrConflict), http.StatusConflict, "conflict"},
		"fk violation":     {fmt.Errorf("insert enrollment: enrollments_student_id_fkey: %w", domain.ErrValidation), http.StatusBadRequest, "invalid input"},
		"zero rows":        {fmt.Errorf("delete student: %w", domain.ErrNotFound), http.StatusNotFound, "not found"},
		"service message":  {fmt.Errorf("update profile: %w", domain.Reason(domain.ErrConflict, "Email already in use")), http.StatusConflict, "Email already in use"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			httpError(rr, httptest.NewRequest(http.MethodPut, "/", nil), tc.err)
			assert.Equal(t, tc.code, rr.Code)
			assert.Equal(t, tc.msg, decodeBody(t, rr)["error"])
		})
	}
}
