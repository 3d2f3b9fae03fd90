package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// maxImageBytes is the client-local upload ceiling.
const maxImageBytes = 5 << 20

// allowedImageExtensions gates uploads before any network traffic.
var allowedImageExtensions = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ValidateImage runs the client-local upload gate. It must pass before
// UploadImage issues any network call.
func ValidateImage(filename string, size int64) error {
	if _, ok := allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]; !ok {
		return domain.ErrUploadUnsupportedType
	}
	if size > maxImageBytes {
		return domain.ErrUploadTooLarge
	}
	return nil
}

type uploadResponse struct {
	Success bool                `json:"success"`
	Data    domain.UploadResult `json:"data"`
}

// UploadImage implements domain.MediaAPI. A file rejected by the local
// gate produces zero network calls.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader, size int64, folder string) (*domain.UploadResult, error) {
	if err := ValidateImage(filename, size); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	n, err := io.Copy(part, r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	// The declared size passed the gate; the actual bytes must too.
	if n > maxImageBytes {
		return nil, domain.ErrUploadTooLarge
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/media/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	var resp uploadResponse
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	if resp.Data.URL == "" {
		return nil, fmt.Errorf("malformed upload response")
	}
	return &resp.Data, nil
}

var _ domain.MediaAPI = (*Client)(nil)
