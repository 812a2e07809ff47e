package battle_test

import (
	"testing"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/stretchr/testify/assert"
)

func TestComputeReward(t *testing.T) {
	tests := []struct {
		category battle.Category
		want     battle.Reward
	}{
		{battle.CategorySimpleEncounter, battle.Reward{DamageBoost: 1}},
		{battle.CategorySmallDungeon, battle.Reward{HealthBoost: 2}},
		{battle.CategoryLargeDungeon, battle.Reward{DamageBoost: 3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := battle.ComputeReward(tt.category)
			assert.Equal(t, tt.want, got)

			// exactly one of the two boosts is granted
			assert.True(t, (got.DamageBoost == 0) != (got.HealthBoost == 0))
		})
	}
}

func TestCategory_Composition(t *testing.T) {
	tests := []struct {
		category       battle.Category
		wantSlots      int
		requiresLeader bool
	}{
		{battle.CategorySimpleEncounter, 1, false},
		{battle.CategorySmallDungeon, 4, true},
		{battle.CategoryLargeDungeon, 6, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.True(t, tt.category.IsValid())
			assert.Equal(t, tt.wantSlots, tt.category.SlotCount())
			assert.Equal(t, tt.requiresLeader, tt.category.RequiresLeader())
			assert.LessOrEqual(t, tt.category.SlotCount(), battle.MaxDeckSize)
		})
	}
}

func TestComputeReward_UnknownCategoryPanics(t *testing.T) {
	unknown := battle.Category("mega_dungeon")

	assert.False(t, unknown.IsValid())
	assert.Panics(t, func() { battle.ComputeReward(unknown) })
}
