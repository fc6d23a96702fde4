package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/keys"
)

// Column names are matched after slugging, so "Dano Especial",
// "dano_especial" and "Perfuração" all resolve. English headers work too.
var (
	colName   = []string{"nome", "name"}
	colRarity = []string{"raridade", "rarity"}
	colTags   = [][]string{
		{"sinergia_1", "synergy_1"},
		{"sinergia_2", "synergy_2"},
		{"sinergia_3", "synergy_3"},
		{"sinergia_4", "synergy_4"},
	}
	statColumns = []struct {
		names []string
		field func(*game.StatTable) *int
	}{
		{[]string{"vida", "health"}, func(s *game.StatTable) *int { return &s.Health }},
		{[]string{"dano_fisico", "physical_damage"}, func(s *game.StatTable) *int { return &s.PhysicalDamage }},
		{[]string{"dano_especial", "special_damage"}, func(s *game.StatTable) *int { return &s.SpecialDamage }},
		{[]string{"defesa_fisica", "physical_defense"}, func(s *game.StatTable) *int { return &s.PhysicalDefense }},
		{[]string{"defesa_especial", "special_defense"}, func(s *game.StatTable) *int { return &s.SpecialDefense }},
		{[]string{"regeneracao", "regen"}, func(s *game.StatTable) *int { return &s.Regen }},
		{[]string{"mana"}, func(s *game.StatTable) *int { return &s.Mana }},
		{[]string{"velocidade", "speed"}, func(s *game.StatTable) *int { return &s.Speed }},
		{[]string{"perfuracao", "pierce"}, func(s *game.StatTable) *int { return &s.Pierce }},
	}
)

// ReadCardsCSV parses a card sheet with a header row. Rows without a name
// are skipped; blank or non-numeric stats read as zero.
func ReadCardsCSV(r io.Reader) ([]game.CardTemplate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("card csv is empty")
		}
		return nil, fmt.Errorf("failed to read card csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		index[keys.CardSlug(h)] = i
	}
	nameIdx, ok := lookup(index, colName)
	if !ok {
		return nil, errors.New("card csv has no name column")
	}

	var out []game.CardTemplate
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("card csv line %d: %w", line, err)
		}
		field := func(i int, ok bool) string {
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		name := strings.TrimSpace(field(nameIdx, true))
		if name == "" {
			continue
		}
		var tags []string
		for _, names := range colTags {
			i, ok := lookup(index, names)
			tags = append(tags, field(i, ok))
		}
		var st game.StatTable
		for _, sc := range statColumns {
			i, ok := lookup(index, sc.names)
			*sc.field(&st) = parseStat(field(i, ok))
		}
		i, ok := lookup(index, colRarity)
		out = append(out, newCard(name, field(i, ok), tags, st))
	}
	return out, nil
}

func lookup(index map[string]int, names []string) (int, bool) {
	for _, n := range names {
		if i, ok := index[n]; ok {
			return i, true
		}
	}
	return 0, false
}

// parseStat accepts "12" and "12.0"; fractions are truncated.
func parseStat(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}
