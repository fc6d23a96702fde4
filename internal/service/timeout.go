package service

import (
	"context"

	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/logging"
)

// HandleExpiredDraft resolves a match whose draft deadline passed.
// Behavior:
// - neither player placed units -> finish with no winner
// - one side placed nothing -> the other side wins without a battle
// - otherwise the boards fight as they stand, ready or not
func HandleExpiredDraft(ctx context.Context, repo MatchRepo, m *game.Match, s Settings) error {
	if m.Status != game.StatusDrafting || m.Phase != game.PhaseDraft {
		return nil
	}
	logging.Info("draft deadline passed; resolving battle", logging.Fields{
		constants.LogFieldMatchID:  m.ID,
		constants.LogFieldJoinCode: m.JoinCode,
	})
	_, err := ResolveBattle(ctx, repo, m, s)
	return err
}
