package battle

import "fmt"

type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// Clash is the recorded result of Deck[Order] against Dungeon[Order].
type Clash struct {
	Order   int    `json:"order"`
	Winner  Side   `json:"winner"`
	Reason  Reason `json:"reason"`
	Player  Stats  `json:"player"`
	Dungeon Stats  `json:"dungeon"`
}

// Result is a fully resolved battle.
type Result struct {
	Clashes     []Clash `json:"clashes"`
	PlayerWins  int     `json:"playerWins"`
	DungeonWins int     `json:"dungeonWins"`
	Outcome     Outcome `json:"outcome"`
}

// ResolveBattle pairs deck[i] with dungeon[i] and evaluates every clash.
// The player wins the battle when they take at least half of the clashes.
// Any invalid input rejects the whole battle; no partial result is returned.
func ResolveBattle(deck []PlayerCard, dungeon []Slot) (*Result, error) {
	if len(deck) != len(dungeon) {
		return nil, fmt.Errorf("%w: deck has %d cards but dungeon has %d", ErrInvalidInput, len(deck), len(dungeon))
	}
	if len(deck) == 0 || len(deck) > MaxDeckSize {
		return nil, fmt.Errorf("%w: battle needs 1 to %d cards, got %d", ErrInvalidInput, MaxDeckSize, len(deck))
	}

	result := &Result{Clashes: make([]Clash, 0, len(deck))}

	for i := range deck {
		if err := deck[i].validate(); err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		player := deck[i].Effective()

		opponent, err := EffectiveSlotStats(dungeon[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}

		r := EvaluateClash(player.Damage, player.Health, player.Element, opponent.Damage, opponent.Health, opponent.Element)
		result.Clashes = append(result.Clashes, Clash{
			Order:   i,
			Winner:  r.Winner,
			Reason:  r.Reason,
			Player:  player,
			Dungeon: opponent,
		})

		if r.Winner == SidePlayer {
			result.PlayerWins++
		} else {
			result.DungeonWins++
		}
	}

	// wins/len >= 1/2 without leaving integer arithmetic
	if 2*result.PlayerWins >= len(dungeon) {
		result.Outcome = OutcomeWon
	} else {
		result.Outcome = OutcomeLost
	}

	return result, nil
}
