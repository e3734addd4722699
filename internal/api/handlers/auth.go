package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/authly/authly-rhythm/internal/domain"
	"github.com/authly/authly-rhythm/internal/service"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignInRequest struct {
	Username   string            `json:"username"`
	KeyPresses []domain.KeyPress `json:"keyPresses"`
}

type RegisterRequest struct {
	Username   string            `json:"username"`
	AudioURL   string            `json:"audioUrl"`
	KeyPresses []domain.KeyPress `json:"keyPresses"`
}

type RhythmDataResponse struct {
	AudioURL string `json:"audioUrl"`
}

type SignInResponse struct {
	Token string `json:"token"`
}

// Data returns the audio URL a client needs to play back while the user
// taps out their rhythm.
func (h *AuthHandler) Data(w http.ResponseWriter, r *http.Request) error {
	username := chi.URLParam(r, "username")

	audioURL, err := h.authService.RhythmData(r.Context(), username)
	if err != nil {
		return err
	}

	RespondJSON(w, http.StatusOK, RhythmDataResponse{AudioURL: audioURL})
	return nil
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) error {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.BadRequest("Invalid request body")
	}

	token, err := h.authService.SignIn(r.Context(), req.Username, req.KeyPresses)
	if err != nil {
		return err
	}

	RespondJSON(w, http.StatusOK, SignInResponse{Token: token})
	return nil
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.BadRequest("Invalid request body")
	}

	if err := h.authService.Register(r.Context(), req.Username, req.AudioURL, req.KeyPresses); err != nil {
		return err
	}

	RespondJSON(w, http.StatusOK, map[string]string{"message": "User registered"})
	return nil
}
