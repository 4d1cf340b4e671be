package minio

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	mclient "github.com/minio/minio-go/v7"

	"github.com/pribylovaa/wave-feed/internal/storage"
)

// Upload кладёт объект в бакет. Без Upsert существующий объект не
// перезаписывается: возвращается storage.ErrAlreadyExists.
func (s *ObjectStorage) Upload(ctx context.Context, bucket string, up storage.Upload) error {
	const op = "storage/minio/objects/Upload"

	name := strings.TrimLeft(up.Name, "/")
	if name == "" {
		return fmt.Errorf("%s: empty object name", op)
	}

	if !up.Upsert {
		_, err := s.client.StatObject(ctx, bucket, name, mclient.StatObjectOptions{})
		if err == nil {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		if !isNotFound(err) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	size := up.Size
	if size <= 0 {
		size = -1
	}

	_, err := s.client.PutObject(ctx, bucket, name, up.Body, size, mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// PublicURL возвращает ссылку вида <public_base_url>/<bucket>/<name>.
func (s *ObjectStorage) PublicURL(bucket, name string) string {
	return s.publicBase + "/" + bucket + "/" + strings.TrimLeft(name, "/")
}

func isNotFound(err error) bool {
	resp := mclient.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
