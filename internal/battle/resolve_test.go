package battle_test

import (
	"testing"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(name string, damage, health int, element battle.Element) battle.Stats {
	return battle.Stats{Name: name, Damage: damage, Health: health, Element: element}
}

// winning and losing pairs used to build battles with a known score
var (
	strongCard = battle.PlayerCard{Base: card("Golem", 9, 9, battle.ElementEarth)}
	weakCard   = battle.PlayerCard{Base: card("Sprite", 0, 0, battle.ElementEarth)}
	guardSlot  = battle.PlainSlot{Card: card("Guard", 1, 1, battle.ElementEarth)}
)

func buildBattle(playerWins, total int) ([]battle.PlayerCard, []battle.Slot) {
	deck := make([]battle.PlayerCard, total)
	dungeon := make([]battle.Slot, total)
	for i := 0; i < total; i++ {
		if i < playerWins {
			deck[i] = strongCard
		} else {
			deck[i] = weakCard
		}
		dungeon[i] = guardSlot
	}
	return deck, dungeon
}

func TestResolveBattle_WinThreshold(t *testing.T) {
	tests := []struct {
		name       string
		playerWins int
		total      int
		want       battle.Outcome
	}{
		{"3 of 6 is a win", 3, 6, battle.OutcomeWon},
		{"2 of 6 is a loss", 2, 6, battle.OutcomeLost},
		{"6 of 6 is a win", 6, 6, battle.OutcomeWon},
		{"2 of 4 is a win", 2, 4, battle.OutcomeWon},
		{"1 of 4 is a loss", 1, 4, battle.OutcomeLost},
		{"1 of 1 is a win", 1, 1, battle.OutcomeWon},
		{"0 of 1 is a loss", 0, 1, battle.OutcomeLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck, dungeon := buildBattle(tt.playerWins, tt.total)

			result, err := battle.ResolveBattle(deck, dungeon)
			require.NoError(t, err)

			assert.Equal(t, tt.playerWins, result.PlayerWins)
			assert.Equal(t, tt.total-tt.playerWins, result.DungeonWins)
			assert.Equal(t, tt.want, result.Outcome)
		})
	}
}

func TestResolveBattle_ClashOrderMatchesPairing(t *testing.T) {
	deck := []battle.PlayerCard{
		{Base: card("Ember", 5, 3, battle.ElementFire)},
		{Base: card("Tide", 2, 2, battle.ElementWater)},
		{Base: card("Stone", 10, 1, battle.ElementEarth)},
	}
	dungeon := []battle.Slot{
		battle.PlainSlot{Card: card("Mole", 2, 4, battle.ElementEarth)},
		battle.PlainSlot{Card: card("Gust", 2, 2, battle.ElementAir)},
		battle.LeaderSlot{Base: card("Warden", 3, 6, battle.ElementEarth), Boost: battle.BoostHealthDouble},
	}

	result, err := battle.ResolveBattle(deck, dungeon)
	require.NoError(t, err)
	require.Len(t, result.Clashes, 3)

	for i, c := range result.Clashes {
		assert.Equal(t, i, c.Order)
		assert.Equal(t, deck[i].Base.Name, c.Player.Name)
	}

	assert.Equal(t, battle.SidePlayer, result.Clashes[0].Winner)
	assert.Equal(t, battle.ReasonDamage, result.Clashes[0].Reason)

	assert.Equal(t, battle.SidePlayer, result.Clashes[1].Winner)
	assert.Equal(t, battle.ReasonTypeAdvantage, result.Clashes[1].Reason)

	// leader health doubles to 12, so 10 damage is not enough
	assert.Equal(t, battle.SideDungeon, result.Clashes[2].Winner)
	assert.Equal(t, battle.ReasonDamage, result.Clashes[2].Reason)
	assert.Equal(t, 12, result.Clashes[2].Dungeon.Health)
	assert.Equal(t, 3, result.Clashes[2].Dungeon.Damage)

	assert.Equal(t, 2, result.PlayerWins)
	assert.Equal(t, 1, result.DungeonWins)
	assert.Equal(t, battle.OutcomeWon, result.Outcome)
}

func TestResolveBattle_PlayerBoostsApply(t *testing.T) {
	deck := []battle.PlayerCard{
		{Base: card("Ember", 2, 2, battle.ElementFire), DamageBoost: 3, HealthBoost: 1},
	}
	dungeon := []battle.Slot{
		battle.PlainSlot{Card: card("Mole", 3, 4, battle.ElementWater)},
	}

	result, err := battle.ResolveBattle(deck, dungeon)
	require.NoError(t, err)

	clash := result.Clashes[0]
	assert.Equal(t, 5, clash.Player.Damage)
	assert.Equal(t, 3, clash.Player.Health)
	assert.Equal(t, battle.SidePlayer, clash.Winner)
	assert.Equal(t, battle.ReasonDamage, clash.Reason)
}

func TestResolveBattle_LeaderDoublesOneStat(t *testing.T) {
	base := card("Warden", 3, 6, battle.ElementEarth)

	tests := []struct {
		boost      battle.BoostType
		wantDamage int
		wantHealth int
	}{
		{battle.BoostDamageDouble, 6, 6},
		{battle.BoostHealthDouble, 3, 12},
	}

	for _, tt := range tests {
		t.Run(string(tt.boost), func(t *testing.T) {
			stats, err := battle.EffectiveSlotStats(battle.LeaderSlot{Base: base, Boost: tt.boost})
			require.NoError(t, err)
			assert.Equal(t, tt.wantDamage, stats.Damage)
			assert.Equal(t, tt.wantHealth, stats.Health)
			assert.Equal(t, base.Element, stats.Element)
		})
	}

	// the underlying card is left untouched
	assert.Equal(t, 3, base.Damage)
	assert.Equal(t, 6, base.Health)
}

func TestResolveBattle_Deterministic(t *testing.T) {
	deck, dungeon := buildBattle(3, 6)

	first, err := battle.ResolveBattle(deck, dungeon)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := battle.ResolveBattle(deck, dungeon)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveBattle_Rejects(t *testing.T) {
	validDeck, validDungeon := buildBattle(1, 2)

	tests := []struct {
		name    string
		deck    []battle.PlayerCard
		dungeon []battle.Slot
		wantErr error
	}{
		{
			name:    "length mismatch",
			deck:    validDeck,
			dungeon: validDungeon[:1],
			wantErr: battle.ErrInvalidInput,
		},
		{
			name:    "empty battle",
			deck:    nil,
			dungeon: nil,
			wantErr: battle.ErrInvalidInput,
		},
		{
			name: "too many cards",
			deck: func() []battle.PlayerCard {
				d, _ := buildBattle(0, battle.MaxDeckSize+1)
				return d
			}(),
			dungeon: func() []battle.Slot {
				_, s := buildBattle(0, battle.MaxDeckSize+1)
				return s
			}(),
			wantErr: battle.ErrInvalidInput,
		},
		{
			name:    "nil slot",
			deck:    validDeck,
			dungeon: []battle.Slot{guardSlot, nil},
			wantErr: battle.ErrConfiguration,
		},
		{
			name:    "typed nil leader slot",
			deck:    validDeck,
			dungeon: []battle.Slot{guardSlot, (*battle.LeaderSlot)(nil)},
			wantErr: battle.ErrConfiguration,
		},
		{
			name:    "typed nil plain slot",
			deck:    validDeck,
			dungeon: []battle.Slot{(*battle.PlainSlot)(nil), guardSlot},
			wantErr: battle.ErrConfiguration,
		},
		{
			name: "leader without boost type",
			deck: validDeck,
			dungeon: []battle.Slot{
				guardSlot,
				battle.LeaderSlot{Base: card("Warden", 3, 6, battle.ElementEarth)},
			},
			wantErr: battle.ErrConfiguration,
		},
		{
			name: "negative boost",
			deck: []battle.PlayerCard{
				{Base: card("Ember", 2, 2, battle.ElementFire), DamageBoost: -1},
			},
			dungeon: []battle.Slot{guardSlot},
			wantErr: battle.ErrInvalidInput,
		},
		{
			name:    "negative dungeon stats",
			deck:    []battle.PlayerCard{strongCard},
			dungeon: []battle.Slot{battle.PlainSlot{Card: card("Broken", -1, 1, battle.ElementAir)}},
			wantErr: battle.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				result *battle.Result
				err    error
			)
			require.NotPanics(t, func() {
				result, err = battle.ResolveBattle(tt.deck, tt.dungeon)
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}
