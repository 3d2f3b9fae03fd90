package devserver

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// MediaService uploads images to Cloudinary. When credentials are not
// configured it returns deterministic fake URLs so the upload flow
// works offline.
type MediaService struct {
	cld *cloudinary.Cloudinary
}

// NewMediaService creates a media service; empty credentials yield the
// offline fallback.
func NewMediaService(cloudName, apiKey, apiSecret string) (*MediaService, error) {
	if cloudName == "" {
		return &MediaService{}, nil
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &MediaService{cld: cld}, nil
}

// Upload stores an image under the given folder and returns its URL and
// public id.
func (s *MediaService) Upload(ctx context.Context, r io.Reader, folder string) (*domain.UploadResult, error) {
	if s.cld == nil {
		publicID := fmt.Sprintf("%s/%s", folder, uuid.NewString())
		return &domain.UploadResult{
			URL:      "https://media.local/" + publicID,
			PublicID: publicID,
		}, nil
	}

	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return &domain.UploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}
