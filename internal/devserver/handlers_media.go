package devserver

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes mirrors the client-local gate; the server enforces it
// again because the gate is advisory.
const maxUploadBytes = 5 << 20

var allowedUploadExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func (s *Server) handleUpload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image provided"})
		return
	}

	if !allowedUploadExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unsupported image type"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image exceeds the 5 MB limit"})
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "uploads"
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read image"})
		return
	}
	defer file.Close()

	result, err := s.media.Upload(c.Request.Context(), file, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"url":      result.URL,
			"publicId": result.PublicID,
		},
	})
}
