package battle

import "fmt"

// MaxDeckSize is the largest number of cards a deck (and so a battle) can hold.
const MaxDeckSize = 6

// Stats are the values a card fights with.
type Stats struct {
	Name    string  `json:"name"`
	Damage  int     `json:"damage"`
	Health  int     `json:"health"`
	Element Element `json:"element"`
}

func (s Stats) validate() error {
	if s.Damage < 0 || s.Health < 0 {
		return fmt.Errorf("%w: card %q has negative stats", ErrInvalidInput, s.Name)
	}
	return nil
}

// PlayerCard is a player-owned card instance: base stats plus the boosts it
// has accumulated from won battles.
type PlayerCard struct {
	Base        Stats
	DamageBoost int
	HealthBoost int
}

// Effective returns the stats the card fights with.
func (c PlayerCard) Effective() Stats {
	return Stats{
		Name:    c.Base.Name,
		Damage:  c.Base.Damage + c.DamageBoost,
		Health:  c.Base.Health + c.HealthBoost,
		Element: c.Base.Element,
	}
}

func (c PlayerCard) validate() error {
	if c.DamageBoost < 0 || c.HealthBoost < 0 {
		return fmt.Errorf("%w: card %q has negative boosts", ErrInvalidInput, c.Base.Name)
	}
	return c.Base.validate()
}

type BoostType string

const (
	BoostDamageDouble BoostType = "damage_double"
	BoostHealthDouble BoostType = "health_double"
)

func (b BoostType) IsValid() bool {
	switch b {
	case BoostDamageDouble, BoostHealthDouble:
		return true
	}
	return false
}

// Slot is one position of a dungeon. It is either a PlainSlot or a LeaderSlot.
type Slot interface {
	effective() (Stats, error)
}

// PlainSlot fights with the card's base stats. Dungeon cards never carry boosts.
type PlainSlot struct {
	Card Stats
}

func (s PlainSlot) effective() (Stats, error) {
	if err := s.Card.validate(); err != nil {
		return Stats{}, err
	}
	return s.Card, nil
}

// LeaderSlot doubles exactly one stat of its base card, chosen by Boost.
type LeaderSlot struct {
	Base  Stats
	Boost BoostType
}

func (s LeaderSlot) effective() (Stats, error) {
	if err := s.Base.validate(); err != nil {
		return Stats{}, err
	}

	stats := s.Base
	switch s.Boost {
	case BoostDamageDouble:
		stats.Damage *= 2
	case BoostHealthDouble:
		stats.Health *= 2
	default:
		return Stats{}, fmt.Errorf("%w: leader %q has unknown boost type %q", ErrConfiguration, s.Base.Name, s.Boost)
	}
	return stats, nil
}

// EffectiveSlotStats returns the stats a slot fights with. Only PlainSlot and
// LeaderSlot values are accepted; nil and pointer slots are configuration errors.
func EffectiveSlotStats(slot Slot) (Stats, error) {
	switch s := slot.(type) {
	case PlainSlot:
		return s.effective()
	case LeaderSlot:
		return s.effective()
	default:
		return Stats{}, fmt.Errorf("%w: unsupported slot %T", ErrConfiguration, slot)
	}
}
