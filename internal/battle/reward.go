package battle

import "fmt"

// Category is the size of a dungeon. It fixes the slot composition and the
// reward for winning.
type Category string

const (
	CategorySimpleEncounter Category = "simple_encounter"
	CategorySmallDungeon    Category = "small_dungeon"
	CategoryLargeDungeon    Category = "large_dungeon"
)

// AllCategories contains all valid categories, smallest first
var AllCategories = []Category{CategorySimpleEncounter, CategorySmallDungeon, CategoryLargeDungeon}

// Reward is the permanent boost granted to one player card after a won battle.
type Reward struct {
	DamageBoost int `json:"damageBoost"`
	HealthBoost int `json:"healthBoost"`
}

type categoryRules struct {
	plainSlots  int
	leaderSlots int
	reward      Reward
}

var categories = map[Category]categoryRules{
	CategorySimpleEncounter: {plainSlots: 1, leaderSlots: 0, reward: Reward{DamageBoost: 1}},
	CategorySmallDungeon:    {plainSlots: 3, leaderSlots: 1, reward: Reward{HealthBoost: 2}},
	CategoryLargeDungeon:    {plainSlots: 5, leaderSlots: 1, reward: Reward{DamageBoost: 3}},
}

func (c Category) IsValid() bool {
	_, ok := categories[c]
	return ok
}

// SlotCount returns how many cards a dungeon of this category holds.
func (c Category) SlotCount() int {
	r := c.rules()
	return r.plainSlots + r.leaderSlots
}

// RequiresLeader reports whether the last slot must be a leader.
func (c Category) RequiresLeader() bool {
	return c.rules().leaderSlots > 0
}

func (c Category) rules() categoryRules {
	r, ok := categories[c]
	if !ok {
		panic(fmt.Sprintf("battle: unknown dungeon category %q", string(c)))
	}
	return r
}

// ComputeReward returns the reward for beating a dungeon of the given category.
// It panics on an unknown category.
func ComputeReward(c Category) Reward {
	return c.rules().reward
}
