package battle_test

import (
	"testing"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateClash(t *testing.T) {
	tests := []struct {
		name       string
		pDmg, pHP  int
		pElem      battle.Element
		dDmg, dHP  int
		dElem      battle.Element
		wantWinner battle.Side
		wantReason battle.Reason
	}{
		{
			name: "player wins by damage",
			pDmg: 5, pHP: 3, pElem: battle.ElementFire,
			dDmg: 2, dHP: 4, dElem: battle.ElementEarth,
			wantWinner: battle.SidePlayer, wantReason: battle.ReasonDamage,
		},
		{
			name: "dungeon wins by damage despite player type advantage",
			pDmg: 1, pHP: 1, pElem: battle.ElementFire,
			dDmg: 2, dHP: 5, dElem: battle.ElementEarth,
			wantWinner: battle.SideDungeon, wantReason: battle.ReasonDamage,
		},
		{
			name: "equal damage and health falls to type advantage",
			pDmg: 2, pHP: 2, pElem: battle.ElementWater,
			dDmg: 2, dHP: 2, dElem: battle.ElementAir,
			wantWinner: battle.SidePlayer, wantReason: battle.ReasonTypeAdvantage,
		},
		{
			name: "dungeon type advantage when neither wins by damage",
			pDmg: 1, pHP: 9, pElem: battle.ElementEarth,
			dDmg: 1, dHP: 9, dElem: battle.ElementFire,
			wantWinner: battle.SideDungeon, wantReason: battle.ReasonTypeAdvantage,
		},
		{
			name: "both win by damage falls through to player type advantage",
			pDmg: 10, pHP: 1, pElem: battle.ElementAir,
			dDmg: 10, dHP: 1, dElem: battle.ElementFire,
			wantWinner: battle.SidePlayer, wantReason: battle.ReasonTypeAdvantage,
		},
		{
			name: "both win by damage falls through to dungeon type advantage",
			pDmg: 10, pHP: 1, pElem: battle.ElementFire,
			dDmg: 10, dHP: 1, dElem: battle.ElementAir,
			wantWinner: battle.SideDungeon, wantReason: battle.ReasonTypeAdvantage,
		},
		{
			name: "both win by damage with same element is a default loss",
			pDmg: 10, pHP: 1, pElem: battle.ElementWater,
			dDmg: 10, dHP: 1, dElem: battle.ElementWater,
			wantWinner: battle.SideDungeon, wantReason: battle.ReasonDefault,
		},
		{
			name: "identical elements and no damage win defaults to dungeon",
			pDmg: 3, pHP: 3, pElem: battle.ElementEarth,
			dDmg: 3, dHP: 3, dElem: battle.ElementEarth,
			wantWinner: battle.SideDungeon, wantReason: battle.ReasonDefault,
		},
		{
			name: "elements outside the cycle relation default to dungeon",
			pDmg: 0, pHP: 0, pElem: battle.ElementFire,
			dDmg: 0, dHP: 0, dElem: battle.ElementWater,
			wantWinner: battle.SideDungeon, wantReason: battle.ReasonDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := battle.EvaluateClash(tt.pDmg, tt.pHP, tt.pElem, tt.dDmg, tt.dHP, tt.dElem)
			assert.Equal(t, tt.wantWinner, got.Winner)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestEvaluateClash_IsTotal(t *testing.T) {
	values := []int{0, 1, 2, 5}

	for _, pe := range battle.AllElements {
		for _, de := range battle.AllElements {
			for _, pd := range values {
				for _, ph := range values {
					for _, dd := range values {
						for _, dh := range values {
							got := battle.EvaluateClash(pd, ph, pe, dd, dh, de)
							assert.Contains(t, []battle.Side{battle.SidePlayer, battle.SideDungeon}, got.Winner)
							assert.Contains(t, []battle.Reason{battle.ReasonDamage, battle.ReasonTypeAdvantage, battle.ReasonDefault}, got.Reason)
							if got.Reason == battle.ReasonDefault {
								assert.Equal(t, battle.SideDungeon, got.Winner)
							}
						}
					}
				}
			}
		}
	}
}
