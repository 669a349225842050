package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/imaging"
)

// ImageStorage is the blob store holding assessment photos.
type ImageStorage interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

type SignedImage struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type AssessmentImages struct {
	storage  ImageStorage
	maxBytes int64
	ttl      time.Duration
	logger   *slog.Logger

	transcode func([]byte) ([]byte, error)
	now       func() time.Time
}

func NewAssessmentImages(
	storage ImageStorage,
	maxBytes int64,
	ttl time.Duration,
	logger *slog.Logger,
) *AssessmentImages {
	return &AssessmentImages{
		storage:  storage,
		maxBytes: maxBytes,
		ttl:      ttl,
		logger:   logger,
		transcode: func(b []byte) ([]byte, error) {
			return imaging.Normalize(b, imaging.DefaultOptions())
		},
		now: time.Now,
	}
}

// Attach stores one photo for appointmentID and returns its path. The
// caller adds the path to the form's image list; nothing is written to the
// appointment row until the next save.
func (uc *AssessmentImages) Attach(
	ctx context.Context,
	appointmentID string,
	contentType string,
	data []byte,
) (string, error) {

	if appointmentID == "" {
		return "", httperr.New(httperr.CodeValidation, "appointment id is required")
	}
	if len(data) == 0 {
		return "", httperr.New(httperr.CodeValidation, "empty file")
	}
	if uc.maxBytes > 0 && int64(len(data)) > uc.maxBytes {
		return "", httperr.Newf(httperr.CodeValidation, "image is larger than %d bytes", uc.maxBytes)
	}
	if !isImage(contentType) || !isImage(http.DetectContentType(data)) {
		return "", httperr.New(httperr.CodeValidation, "only image files can be attached")
	}

	encoded, err := uc.transcode(data)
	if err != nil {
		return "", httperr.Classify(err, httperr.CodeValidation)
	}

	name := fmt.Sprintf("%s_%d_%s%s",
		appointmentID,
		uc.now().UnixMilli(),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:10],
		imaging.Extension,
	)

	path, err := uc.storage.Upload(ctx, name, imaging.ContentType, encoded)
	if err != nil {
		uc.logger.Error("image upload failed", "appointment_id", appointmentID, "error", err)
		return "", httperr.Classify(err, httperr.CodeTransient)
	}

	uc.logger.Info("image attached", "appointment_id", appointmentID, "path", path, "bytes", len(encoded))
	return path, nil
}

// Remove deletes the blob. The caller may drop the reference from the form
// even when this fails.
func (uc *AssessmentImages) Remove(ctx context.Context, path string) error {
	if path == "" {
		return httperr.New(httperr.CodeValidation, "path is required")
	}
	if err := uc.storage.Remove(ctx, path); err != nil {
		uc.logger.Warn("image removal failed", "path", path, "error", err)
		return httperr.Classify(err, httperr.CodeTransient)
	}
	return nil
}

// SignedURLs signs every path it can. Failures are logged and left out.
func (uc *AssessmentImages) SignedURLs(ctx context.Context, paths []string) []SignedImage {
	out := make([]SignedImage, 0, len(paths))
	for _, p := range paths {
		url, err := uc.storage.SignedURL(ctx, p, uc.ttl)
		if err != nil {
			uc.logger.Warn("image signing failed", "path", p, "error", err)
			continue
		}
		out = append(out, SignedImage{Path: p, URL: url})
	}
	return out
}

func isImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}
