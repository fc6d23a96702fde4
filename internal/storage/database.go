package storage

import (
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

func OpenAndMigrate(dataSourceName string, cardsFromConfig []game.CardTemplate) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&game.CardTemplate{}, &game.User{}, &game.Match{}, &game.Player{}, &game.Unit{}, &game.BattleRecord{})
	if err != nil {
		return nil, err
	}
	if err := seedCards(db, cardsFromConfig); err != nil {
		return nil, err
	}
	return db, nil
}

// seedCards inserts every configured card, refreshing the display name of
// slugs that already exist. Stats are never persisted; the config file is
// the single source of truth and the repository reattaches them on load.
func seedCards(db *gorm.DB, cardsFromConfig []game.CardTemplate) error {
	if len(cardsFromConfig) == 0 {
		return nil
	}
	rows := make([]game.CardTemplate, 0, len(cardsFromConfig))
	for _, c := range cardsFromConfig {
		rows = append(rows, game.CardTemplate{Slug: c.Slug, Name: c.Name})
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&rows)
	if res.Error != nil {
		return res.Error
	}
	logging.Info("card list seeded", logging.Fields{"cards": len(rows)})
	return nil
}
