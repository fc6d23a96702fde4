// Package shop implements the draft economy: the per-player deck, the
// three-card shop, the twelve-slot bank and gold.
package shop

import (
	"errors"
	"sort"

	"github.com/Leonn190/Roll/internal/game"
)

var (
	ErrNotEnoughGold = errors.New("not enough gold")
	ErrBankFull      = errors.New("bank is full")
	ErrSlotEmpty     = errors.New("shop slot is empty")
	ErrUnknownCard   = errors.New("unknown card")
	ErrNotSellable   = errors.New("unit cannot be sold from its location")
)

// Rules are the economy knobs, loaded from config.
type Rules struct {
	ShopSlots    int
	BankSlots    int
	RerollCost   int
	StartingGold int
	StartingBank int
}

func DefaultRules() Rules {
	return Rules{ShopSlots: 3, BankSlots: 12, RerollCost: 1, StartingGold: 10, StartingBank: 8}
}

// Rand is what the shop needs from a random source. *math/rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Catalog looks up card templates by slug.
type Catalog map[string]game.CardTemplate

func NewCatalog(cards []game.CardTemplate) Catalog {
	c := make(Catalog, len(cards))
	for _, card := range cards {
		c[card.Slug] = card
	}
	return c
}

// Slugs returns every slug in sorted order.
func (c Catalog) Slugs() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NewDeck holds one copy of every card.
func (c Catalog) NewDeck() []string { return c.Slugs() }

// FreeBankSlot returns the lowest empty bank slot.
func FreeBankSlot(p *game.Player, r Rules) (int, bool) {
	used := make(map[int]bool, r.BankSlots)
	for _, u := range p.UnitsAt(game.LocationBank) {
		used[u.Slot] = true
	}
	for i := 0; i < r.BankSlots; i++ {
		if !used[i] {
			return i, true
		}
	}
	return 0, false
}

// DealStartingBank fills the first bank slots with a random sample of the
// catalog. The deck is left untouched.
func DealStartingBank(p *game.Player, cat Catalog, r Rules, rng Rand) {
	slugs := cat.Slugs()
	rng.Shuffle(len(slugs), func(i, j int) { slugs[i], slugs[j] = slugs[j], slugs[i] })
	n := r.StartingBank
	if n > len(slugs) {
		n = len(slugs)
	}
	for _, s := range slugs[:n] {
		slot, ok := FreeBankSlot(p, r)
		if !ok {
			return
		}
		u := game.NewUnit(cat[s])
		u.Location = game.LocationBank
		u.Slot = slot
		p.Units = append(p.Units, u)
	}
}

// Reroll returns the shown cards to the deck, shuffles it and draws a new
// shop. A free reroll does not charge gold. It returns the IDs of stored
// shop units that were discarded so the caller can delete them.
func Reroll(p *game.Player, cat Catalog, r Rules, rng Rand, free bool) ([]uint, error) {
	cost := r.RerollCost
	if free {
		cost = 0
	}
	if p.Gold < cost {
		return nil, ErrNotEnoughGold
	}
	p.Gold -= cost
	p.Rerolls++

	var removed []uint
	kept := p.Units[:0]
	for _, u := range p.Units {
		if u.Location == game.LocationShop {
			p.Deck = append(p.Deck, u.CardSlug)
			if u.ID != 0 {
				removed = append(removed, u.ID)
			}
			continue
		}
		kept = append(kept, u)
	}
	p.Units = kept

	rng.Shuffle(len(p.Deck), func(i, j int) { p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i] })
	for slot := 0; slot < r.ShopSlots && len(p.Deck) > 0; slot++ {
		s := p.Deck[len(p.Deck)-1]
		p.Deck = p.Deck[:len(p.Deck)-1]
		card, ok := cat[s]
		if !ok {
			continue
		}
		u := game.NewUnit(card)
		u.Location = game.LocationShop
		u.Slot = slot
		p.Units = append(p.Units, u)
	}
	return removed, nil
}

// ShopUnit returns the unit shown in a shop slot.
func ShopUnit(p *game.Player, slot int) *game.Unit {
	for _, u := range p.UnitsAt(game.LocationShop) {
		if u.Slot == slot {
			return u
		}
	}
	return nil
}

// Buy moves the card in a shop slot into the first free bank slot.
func Buy(p *game.Player, slot int, r Rules) (*game.Unit, error) {
	u := ShopUnit(p, slot)
	if u == nil {
		return nil, ErrSlotEmpty
	}
	cost := u.Rarity.Cost()
	if p.Gold < cost {
		return nil, ErrNotEnoughGold
	}
	bank, ok := FreeBankSlot(p, r)
	if !ok {
		return nil, ErrBankFull
	}
	p.Gold -= cost
	u.Location = game.LocationBank
	u.Slot = bank
	return u, nil
}

// Sell removes a bank or grid unit, refunds its sell value and puts its
// card back in the deck. It returns the refund.
func Sell(p *game.Player, unitID uint) (int, error) {
	idx := -1
	for i := range p.Units {
		if p.Units[i].ID == unitID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, ErrUnknownCard
	}
	u := p.Units[idx]
	if u.Location == game.LocationShop {
		return 0, ErrNotSellable
	}
	refund := u.Rarity.SellValue()
	p.Gold += refund
	p.Deck = append(p.Deck, u.CardSlug)
	p.Units = append(p.Units[:idx], p.Units[idx+1:]...)
	return refund, nil
}
