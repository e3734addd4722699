package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/authly/authly-rhythm/internal/domain"
	"github.com/authly/authly-rhythm/internal/service"
	"github.com/go-chi/chi/v5"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Push accepts raw audio bytes, stages them for the CDN to pull back
// and responds with the deployed URL. Oversized payloads are rejected
// from the declared content length before the body is read.
func (h *UploadHandler) Push(w http.ResponseWriter, r *http.Request) error {
	if r.ContentLength > service.MaxUploadBytes {
		return domain.PayloadTooLarge("Upload exceeds the 25 MiB limit")
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, service.MaxUploadBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return domain.PayloadTooLarge("Upload exceeds the 25 MiB limit")
		}
		return err
	}

	url, err := h.uploadService.Push(r.Context(), payload)
	if err != nil {
		return err
	}

	RespondJSON(w, http.StatusOK, UploadResponse{URL: url})
	return nil
}

// Serve hands staged bytes back to the CDN's pull request. Each staged
// id resolves at most once; unknown or already-consumed ids get an
// empty body.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) error {
	uid := chi.URLParam(r, "uid")

	payload, ok := h.uploadService.Serve(uid)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return nil
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
	return nil
}
