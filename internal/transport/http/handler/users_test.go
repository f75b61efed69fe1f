package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/otp-auth-api/internal/application/auth"
	"github.com/otp-auth-api/internal/application/user"
	"github.com/otp-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) SendOTP(ctx context.Context, req domain.SendOTPRequest) (*domain.Identity, error) {
	args := m.Called(ctx, req)
	if i, _ := args.Get(0).(*domain.Identity); i != nil {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockUserSvc struct{ mock.Mock }

func (m *mockUserSvc) List(ctx context.Context) ([]domain.PublicIdentity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PublicIdentity), args.Error(1)
}

func (m *mockUserSvc) Get(ctx context.Context, identityID string) (*domain.PublicIdentity, error) {
	args := m.Called(ctx, identityID)
	if i, _ := args.Get(0).(*domain.PublicIdentity); i != nil {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) Delete(ctx context.Context, identityID string) error {
	return m.Called(ctx, identityID).Error(0)
}

// --- helpers ---

func ptr[T any](v T) *T { return &v }

func newTestRouter(authSvc auth.Service, userSvc user.Service) http.Handler {
	h := NewUserHandler(authSvc, userSvc)
	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.Route("/v1/users", func(r chi.Router) {
		r.Post("/sendOTP", h.SendOTP)
		r.Post("/login", h.Login)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

// --- tests ---

func TestSendOTP_ReturnsStoredRecordInSuccessEnvelope(t *testing.T) {
	authSvc := &mockAuthSvc{}
	rec := &domain.Identity{IdentityID: "i1", PhoneNumber: ptr("9876543210"), OTP: 4321}
	authSvc.On("SendOTP", mock.Anything, mock.Anything).Return(rec, nil)

	router := newTestRouter(authSvc, &mockUserSvc{})
	rr := do(t, router, http.MethodPost, "/v1/users/sendOTP", `{"phoneNumber":"9876543210"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, float64(http.StatusOK), body["status"])
	assert.Equal(t, "success", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "i1", data["id"])
	// The raw record goes back to the caller, generated code included.
	assert.Equal(t, float64(4321), data["otp"])
}

func TestSendOTP_StoreError_500(t *testing.T) {
	authSvc := &mockAuthSvc{}
	authSvc.On("SendOTP", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("dynamo down"))

	router := newTestRouter(authSvc, &mockUserSvc{})
	rr := do(t, router, http.MethodPost, "/v1/users/sendOTP", `{"email":"a@b.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "error", decode(t, rr)["type"])
}

func TestLogin_ReturnsToken(t *testing.T) {
	authSvc := &mockAuthSvc{}
	authSvc.On("Login", mock.Anything, mock.Anything).Return("signed-token", nil)

	router := newTestRouter(authSvc, &mockUserSvc{})
	rr := do(t, router, http.MethodPost, "/v1/users/login", `{"phoneNumber":"9876543210","otp":4321}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	data := decode(t, rr)["data"].(map[string]interface{})
	assert.Equal(t, "signed-token", data["token"])
}

func TestLogin_InvalidOTP_404WithFixedMessage(t *testing.T) {
	authSvc := &mockAuthSvc{}
	authSvc.On("Login", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("otp mismatch: %w", domain.ErrNotFound))

	router := newTestRouter(authSvc, &mockUserSvc{})
	rr := do(t, router, http.MethodPost, "/v1/users/login", `{"email":"a@b.com","otp":1}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "error", body["type"])
	assert.Equal(t, "User not found or Invalid OTP.", body["message"])
}

func TestList_ReturnsProjectedRecords(t *testing.T) {
	userSvc := &mockUserSvc{}
	userSvc.On("List", mock.Anything).Return([]domain.PublicIdentity{
		{IdentityID: "i1", Email: ptr("a@b.com")},
	}, nil)

	router := newTestRouter(&mockAuthSvc{}, userSvc)
	rr := do(t, router, http.MethodGet, "/v1/users/", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	data := decode(t, rr)["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "i1", first["id"])
	_, hasOTP := first["otp"]
	assert.False(t, hasOTP)
}

func TestGet_UnknownID_404(t *testing.T) {
	userSvc := &mockUserSvc{}
	userSvc.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	router := newTestRouter(&mockAuthSvc{}, userSvc)
	rr := do(t, router, http.MethodGet, "/v1/users/missing", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found.", decode(t, rr)["message"])
}

func TestDelete_Confirmation(t *testing.T) {
	userSvc := &mockUserSvc{}
	userSvc.On("Delete", mock.Anything, "i1").Return(nil)

	router := newTestRouter(&mockAuthSvc{}, userSvc)
	rr := do(t, router, http.MethodDelete, "/v1/users/i1", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	data := decode(t, rr)["data"].(map[string]interface{})
	assert.Equal(t, "Successfully removed the user.", data["message"])
}

func TestDelete_UnknownID_404(t *testing.T) {
	userSvc := &mockUserSvc{}
	userSvc.On("Delete", mock.Anything, "missing").Return(domain.ErrNotFound)

	router := newTestRouter(&mockAuthSvc{}, userSvc)
	rr := do(t, router, http.MethodDelete, "/v1/users/missing", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnmatchedRoute_FixedMessage(t *testing.T) {
	router := newTestRouter(&mockAuthSvc{}, &mockUserSvc{})
	rr := do(t, router, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "error", body["type"])
	assert.Equal(t, "the url you are trying to reach is not hosted on our server", body["message"])
}
