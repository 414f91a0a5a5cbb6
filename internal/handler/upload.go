package handler

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petmily-app/backend-go/internal/config"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// saveUploadedImage validates and stores an uploaded image under the
// configured upload directory with a randomized filename, returning the
// stored path.
func saveUploadedImage(c *gin.Context, cfg *config.Config, header *multipart.FileHeader) (string, error) {
	if header.Size > cfg.MaxUploadSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", cfg.MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(cfg.UploadDir, filename)

	if err := c.SaveUploadedFile(header, dst); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return dst, nil
}
