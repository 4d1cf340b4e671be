package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pribylovaa/wave-feed/internal/mutation"
	"github.com/pribylovaa/wave-feed/internal/pkg/log"
)

// WatchSessions слушает события сессий и помечает устаревшими данные
// пользователя, у которого сменилось состояние входа. Возвращается,
// когда ctx отменён или брокер закрыт.
func (s *Service) WatchSessions(ctx context.Context) {
	if s.sessions == nil {
		return
	}

	events, cancel := s.sessions.Subscribe()
	defer cancel()

	lg := log.From(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}

			err := s.runner.Run(ctx, mutation.OpAuthStateChanged, mutation.Target{UserID: e.UserID}, func(context.Context) error {
				return nil
			})
			if err != nil && !errors.Is(err, mutation.ErrInFlight) {
				lg.Warn("auth_state_invalidation_failed", slog.String("err", err.Error()))
				continue
			}

			lg.Debug("auth_state_changed",
				slog.String("kind", string(e.Kind)),
				slog.String("user_id", e.UserID.String()),
			)
		}
	}
}
