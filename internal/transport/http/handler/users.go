package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otp-auth-api/internal/application/auth"
	"github.com/otp-auth-api/internal/application/user"
	"github.com/otp-auth-api/internal/domain"
)

// UserHandler handles the OTP issuance, login, and user CRUD endpoints.
type UserHandler struct {
	authSvc auth.Service
	userSvc user.Service
}

func NewUserHandler(authSvc auth.Service, userSvc user.Service) *UserHandler {
	return &UserHandler{authSvc: authSvc, userSvc: userSvc}
}

// SendOTP issues a fresh code and responds with the upserted record as
// stored, OTP included. Trimming the record would break existing clients.
func (h *UserHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := h.authSvc.SendOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, rec)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		// Missing identity and wrong code collapse into one 404 so the
		// response never reveals which part of the credential failed.
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found or Invalid OTP.")
			return
		}
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"token": token})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	identities, err := h.userSvc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, identities)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.userSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, rec)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"message": "Successfully removed the user."})
}
