package service

import (
	"context"
	"mime"
	"time"

	"github.com/vitasports/backend/internal/errs"
	"github.com/vitasports/backend/internal/lib/storage"
	"github.com/vitasports/backend/internal/model"
)

type uploadPresigner interface {
	PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// StorageService hands out presigned upload URLs. presigner is nil when
// object storage is not configured.
type StorageService struct {
	presigner uploadPresigner
	ttl       time.Duration
	now       func() time.Time
}

func NewStorageService(presigner uploadPresigner, ttl time.Duration) *StorageService {
	return &StorageService{presigner: presigner, ttl: ttl, now: time.Now}
}

func (s *StorageService) GenerateUploadURL(ctx context.Context, p *model.UploadURLPayload) (*model.UploadURL, error) {
	if s.presigner == nil {
		return nil, errs.NewServiceUnavailableError("Storage not configured")
	}

	fileName := p.FileName
	if fileName == "" && p.ContentType != "" {
		if exts, _ := mime.ExtensionsByType(p.ContentType); len(exts) > 0 {
			fileName = "upload" + exts[0]
		}
	}

	key := storage.VideoKey(p.UserID.String(), fileName)
	expiresAt := s.now().Add(s.ttl).UTC()

	url, err := s.presigner.PresignPut(ctx, key, s.ttl)
	if err != nil {
		return nil, err
	}

	return &model.UploadURL{UploadURL: url, ObjectKey: key, ExpiresAt: expiresAt}, nil
}
