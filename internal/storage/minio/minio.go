// Package minio реализует storage.ObjectStorage на базе MinIO/S3.
// minio.go — конструктор клиента: нормализует endpoint, настраивает
// Secure/creds и проверяет наличие всех бакетов.
// objects.go — загрузка объектов и публичные ссылки.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pribylovaa/wave-feed/internal/config"
	"github.com/pribylovaa/wave-feed/internal/storage"
)

// ObjectStorage — адаптер MinIO для медиа постов, картинок сообществ и аватаров.
type ObjectStorage struct {
	client     *mclient.Client
	publicBase string
}

// New создает клиент MinIO и выполняет fail-fast-проверку бакетов.
func New(ctx context.Context, cfg config.S3Config) (*ObjectStorage, error) {
	const op = "storage/minio/New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, bucket := range cfg.Buckets.All() {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if !exists {
			return nil, fmt.Errorf("%s: bucket %q does not exist", op, bucket)
		}
	}

	return &ObjectStorage{
		client:     client,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.ObjectStorage = (*ObjectStorage)(nil)
