package service

import (
	"github.com/authly/authly-rhythm/internal/config"
	"github.com/authly/authly-rhythm/internal/repository"
	"github.com/authly/authly-rhythm/internal/upload"
)

type Services struct {
	Auth   *AuthService
	Chart  *ChartService
	Upload *UploadService
}

func NewServices(repos *repository.Repositories, staging *upload.Staging, uploader CDNUploader, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.User, cfg),
		Chart:  NewChartService(repos.Chart),
		Upload: NewUploadService(staging, uploader, cfg.BaseURL),
	}
}
