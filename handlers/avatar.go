package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/lithammer/shortuuid/v4"
	"github.com/sirupsen/logrus"
)

const maxAvatarSize = 2 << 20

// Uploader is the slice of manager.Uploader used for avatars.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// AvatarHandler stores profile images so their URL can be passed as the
// avatar of signUp.
type AvatarHandler struct {
	Uploader Uploader
	Bucket   string
	Logger   logrus.FieldLogger
}

func (h *AvatarHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if file.Size > maxAvatarSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Avatar must be at most 2 MiB"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Avatar must be an image"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	key := "avatars/" + generateKey() + strings.ToLower(filepath.Ext(file.Filename))
	out, err := h.Uploader.Upload(c.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(h.Bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		h.Logger.WithError(err).WithField("key", key).Error("Avatar upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upload failed"})
		return
	}

	h.Logger.WithField("key", key).Info("Avatar uploaded")
	c.JSON(http.StatusOK, gin.H{"avatar": out.Location})
}

// generateKey returns a short random object name.
func generateKey() string {
	return shortuuid.New()
}
