package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	awslib "portfolio/src/lib/aws"
	"portfolio/src/utils"
)

const (
	MAX_UPLOAD_SIZE    = 150 * 1024 * 1024
	UPLOAD_URL_EXPIRES = 10 * time.Minute
)

var videoExtensions = map[string]string{
	"video/mp4":        "mp4",
	"video/quicktime":  "mov",
	"video/webm":       "webm",
	"video/x-matroska": "mkv",
	"video/x-msvideo":  "avi",
}

type UploadPresigner interface {
	PresignUpload(ctx context.Context, key, contentType string, size int64, expires time.Duration) (*awslib.PresignedUpload, error)
}

type UploadService struct {
	presigner UploadPresigner
	now       func() time.Time
}

func NewUploadService(p UploadPresigner) *UploadService {
	return &UploadService{presigner: p, now: time.Now}
}

// Presign validates the declared upload and returns a short-lived PUT URL for it.
func (u *UploadService) Presign(ctx context.Context, contentType string, size int64) (*awslib.PresignedUpload, error) {
	if !strings.HasPrefix(contentType, "video/") {
		return nil, &ValidationError{Message: "Invalid content type. Only video files allowed."}
	}
	if size <= 0 {
		return nil, &ValidationError{Message: "Missing required fields", Missing: []string{"fileSize"}}
	}
	if size > MAX_UPLOAD_SIZE {
		return nil, &ValidationError{Message: "File exceeds 150MB limit."}
	}
	key, err := NewUploadKey(contentType, u.now())
	if err != nil {
		return nil, err
	}
	return u.presigner.PresignUpload(ctx, key, contentType, size, UPLOAD_URL_EXPIRES)
}

func NewUploadKey(contentType string, now time.Time) (string, error) {
	suffix, err := utils.RandomHex(4)
	if err != nil {
		return "", err
	}
	ext, ok := videoExtensions[strings.ToLower(contentType)]
	if !ok {
		ext = "mp4"
	}
	return fmt.Sprintf("uploads/%d-%s.%s", now.UnixMilli(), suffix, ext), nil
}
