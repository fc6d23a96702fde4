package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Leonn190/Roll/internal/battle"
	"github.com/Leonn190/Roll/internal/dice"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/keys"
	"github.com/Leonn190/Roll/internal/shop"
)

type cardEntry struct {
	Name      string         `yaml:"name"`
	Rarity    string         `yaml:"rarity"`
	Synergies []string       `yaml:"synergies"`
	Stats     game.StatTable `yaml:"stats"`
}

type rawConfig struct {
	CardList []cardEntry `yaml:"card_list"`
	// Optional path to a card sheet in CSV. Relative paths are resolved
	// against the config file's directory. Entries from card_list are
	// appended after the CSV rows.
	CardCSV string `yaml:"card_csv"`
	Server  *struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Grid *struct {
		Cols int `yaml:"cols"`
		Rows int `yaml:"rows"`
	} `yaml:"grid"`
	Economy *struct {
		ShopSlots    int `yaml:"shop_slots"`
		BankSlots    int `yaml:"bank_slots"`
		RerollCost   int `yaml:"reroll_cost"`
		StartingGold int `yaml:"starting_gold"`
		StartingBank int `yaml:"starting_bank"`
	} `yaml:"economy"`
	Battle *struct {
		MaxRounds int    `yaml:"max_rounds"`
		Dice      string `yaml:"dice"`
	} `yaml:"battle"`
	DraftTimeout     time.Duration `yaml:"draft_timeout"`
	PublicMatchesTTL time.Duration `yaml:"public_matches_ttl"`
}

// LoadedConfig contains the card list to seed plus server and game tuning.
type LoadedConfig struct {
	Cards            []game.CardTemplate
	ServerAddress    string
	GridCols         int
	GridRows         int
	Rules            shop.Rules
	MaxRounds        int
	DiceFaces        []int
	DraftTimeout     time.Duration
	PublicMatchesTTL time.Duration
}

// LoadConfig reads the YAML configuration at path. At least one card must
// come from `card_list` or `card_csv`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	var cards []game.CardTemplate
	if rc.CardCSV != "" {
		csvPath := rc.CardCSV
		if !filepath.IsAbs(csvPath) {
			csvPath = filepath.Join(filepath.Dir(path), csvPath)
		}
		f, err := os.Open(csvPath)
		if err != nil {
			return nil, fmt.Errorf("config file %s: failed to open card_csv: %w", path, err)
		}
		defer f.Close()
		cards, err = ReadCardsCSV(f)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	for _, e := range rc.CardList {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'name'", path)
		}
		cards = append(cards, newCard(e.Name, e.Rarity, e.Synergies, e.Stats))
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("config file %s: no cards (provide 'card_list' or 'card_csv')", path)
	}

	slugs := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if c.Slug == "" {
			return nil, fmt.Errorf("config file %s: card '%s' has no usable id", path, c.Name)
		}
		if _, exists := slugs[c.Slug]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card '%s'", path, c.Name)
		}
		slugs[c.Slug] = struct{}{}
		if len(c.Synergies) > 4 {
			return nil, fmt.Errorf("config file %s: card '%s' has more than 4 synergies", path, c.Name)
		}
	}

	out := &LoadedConfig{
		Cards:            cards,
		ServerAddress:    ":8080",
		GridCols:         10,
		GridRows:         10,
		Rules:            shop.DefaultRules(),
		MaxRounds:        battle.DefaultMaxRounds,
		DiceFaces:        dice.DefaultFaces(),
		DraftTimeout:     5 * time.Minute,
		PublicMatchesTTL: 10 * time.Minute,
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Grid != nil {
		if rc.Grid.Cols > 0 {
			out.GridCols = rc.Grid.Cols
		}
		if rc.Grid.Rows > 0 {
			out.GridRows = rc.Grid.Rows
		}
	}
	if e := rc.Economy; e != nil {
		setPositive(&out.Rules.ShopSlots, e.ShopSlots)
		setPositive(&out.Rules.BankSlots, e.BankSlots)
		setPositive(&out.Rules.RerollCost, e.RerollCost)
		setPositive(&out.Rules.StartingGold, e.StartingGold)
		setPositive(&out.Rules.StartingBank, e.StartingBank)
	}
	if rc.Battle != nil {
		setPositive(&out.MaxRounds, rc.Battle.MaxRounds)
		if rc.Battle.Dice != "" {
			faces, err := dice.ParseFaces(rc.Battle.Dice)
			if err != nil {
				return nil, fmt.Errorf("config file %s: battle.dice: %w", path, err)
			}
			out.DiceFaces = faces
		}
	}
	if rc.DraftTimeout > 0 {
		out.DraftTimeout = rc.DraftTimeout
	}
	if rc.PublicMatchesTTL > 0 {
		out.PublicMatchesTTL = rc.PublicMatchesTTL
	}
	return out, nil
}

func setPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// newCard builds a template the same way for YAML entries and CSV rows:
// slug from the name, upper-cased display name, blank tags dropped.
func newCard(name, rarity string, synergies []string, st game.StatTable) game.CardTemplate {
	tags := make([]string, 0, len(synergies))
	for _, s := range synergies {
		if s = strings.TrimSpace(s); s != "" {
			tags = append(tags, s)
		}
	}
	name = strings.TrimSpace(name)
	return game.CardTemplate{
		Slug:      keys.CardSlug(name),
		Name:      strings.ToUpper(name),
		Rarity:    game.ParseRarity(rarity),
		Synergies: tags,
		Stats:     st,
	}
}
