package service

import (
	"context"
	"errors"
	"log"

	"github.com/authly/authly-rhythm/internal/cdn"
	"github.com/authly/authly-rhythm/internal/domain"
	"github.com/authly/authly-rhythm/internal/upload"
)

// MaxUploadBytes caps accepted upload payloads at 25 MiB.
const MaxUploadBytes = 25 << 20

// CDNUploader asks the CDN to pull a URL and returns the deployed URL.
type CDNUploader interface {
	Upload(ctx context.Context, sourceURL string) (string, error)
}

type UploadService struct {
	staging  *upload.Staging
	uploader CDNUploader
	baseURL  string
}

func NewUploadService(staging *upload.Staging, uploader CDNUploader, baseURL string) *UploadService {
	return &UploadService{
		staging:  staging,
		uploader: uploader,
		baseURL:  baseURL,
	}
}

// Push stages the payload, points the CDN at its pull URL and returns
// the deployed URL. The staged entry is released on every exit path,
// whether or not the CDN round trip succeeds, so failed uploads cannot
// accumulate buffers. Failed pushes are not retried.
func (s *UploadService) Push(ctx context.Context, payload []byte) (string, error) {
	if len(payload) > MaxUploadBytes {
		return "", domain.PayloadTooLarge("Upload exceeds the 25 MiB limit")
	}

	id := s.staging.Stage(payload)
	defer s.staging.Release(id)

	deployedURL, err := s.uploader.Upload(ctx, s.baseURL+"/auth/upload/"+id)
	if err != nil {
		log.Printf("ERROR [UploadService.Push] CDN upload failed: %v", err)
		if errors.Is(err, cdn.ErrMissingToken) {
			// Configuration fault, surfaced as a generic 500.
			return "", err
		}
		return "", domain.BadUpstream("Upload to CDN failed")
	}

	return deployedURL, nil
}

// Serve hands the staged bytes to the CDN's pull request and consumes
// the entry; a second retrieval of the same id finds nothing.
func (s *UploadService) Serve(id string) ([]byte, bool) {
	payload, ok := s.staging.Take(id)
	if ok {
		s.staging.Release(id)
	}
	return payload, ok
}
