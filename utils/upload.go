package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaveUploadedImage stores an uploaded file under ./uploads/<kind>/ with a
// uuid filename and returns the public URL (/uploads/<kind>/<name>). The
// caller persists the URL; file content is never inspected.
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, kind string) (string, error) {
	dstDir := filepath.Join("uploads", kind)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(dstDir, filename)); err != nil {
		return "", err
	}

	return "/uploads/" + kind + "/" + filename, nil
}
