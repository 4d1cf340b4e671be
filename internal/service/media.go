package service

import (
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/wave-feed/internal/models"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

// Media — файл, присланный клиентом вместе с записью.
type Media struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// mediaTypeOf определяет тип вложения по основному MIME-типу.
func mediaTypeOf(contentType string) (models.MediaType, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return models.MediaNone, ErrInvalidArgument
	}

	switch {
	case strings.HasPrefix(mt, "image/"):
		return models.MediaImage, nil
	case strings.HasPrefix(mt, "video/"):
		return models.MediaVideo, nil
	}

	return models.MediaNone, ErrInvalidArgument
}

// checkMedia проверяет размер и тип файла; allowVideo=false допускает только изображения.
func (s *Service) checkMedia(op string, m *Media, allowVideo bool) (models.MediaType, error) {
	if m == nil || m.Body == nil {
		return models.MediaNone, fmt.Errorf("%s: %w: file is required", op, ErrInvalidArgument)
	}

	if m.Size <= 0 || m.Size > s.cfg.Limits.UploadMaxBytes {
		return models.MediaNone, fmt.Errorf("%s: %w: file size must be within 1..%d bytes", op, ErrInvalidArgument, s.cfg.Limits.UploadMaxBytes)
	}

	mt, err := mediaTypeOf(m.ContentType)
	if err != nil || (mt == models.MediaVideo && !allowVideo) {
		return models.MediaNone, fmt.Errorf("%s: %w: unsupported content type %q", op, ErrInvalidArgument, m.ContentType)
	}

	return mt, nil
}

// objectName — "<prefix>/<uuid><ext>"; расширение берётся из имени файла клиента.
func objectName(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return prefix + "/" + uuid.NewString() + ext
}

func (m *Media) upload(name string, upsert bool) storage.Upload {
	return storage.Upload{
		Name:        name,
		Body:        m.Body,
		Size:        m.Size,
		ContentType: m.ContentType,
		Upsert:      upsert,
	}
}
