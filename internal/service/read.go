package service

import (
	"context"

	"github.com/pribylovaa/wave-feed/internal/querycache"
)

// cached читает значение через кэш запросов и переводит ошибки бэкенда.
func cached[T any](ctx context.Context, s *Service, op string, key querycache.Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := querycache.Fetch(ctx, s.cache, key, fetch)
	if err != nil {
		var zero T
		return zero, mapErr(op, err)
	}

	return v, nil
}
