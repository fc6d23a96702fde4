package main

import (
	"context"
	"time"

	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/logging"
	"github.com/Leonn190/Roll/internal/service"
)

// startTimeoutScanner resolves drafts whose deadline passed. Matches are
// handled one at a time to keep SQLite writes serialized.
func startTimeoutScanner(ctx context.Context, repo interface {
	FindExpiredDrafts(time.Time) ([]game.Match, error)
	service.MatchRepo
}, settings service.Settings, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				matches, err := repo.FindExpiredDrafts(now)
				if err != nil {
					logging.Error("timeout scanner failed", err, nil)
					continue
				}
				for i := range matches {
					m := &matches[i]
					if err := service.HandleExpiredDraft(ctx, repo, m, settings); err != nil {
						logging.Error("failed to resolve expired draft", err, logging.Fields{constants.LogFieldMatchID: m.ID})
					}
				}
			}
		}
	}()
}
