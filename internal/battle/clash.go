package battle

type Side string

const (
	SidePlayer  Side = "player"
	SideDungeon Side = "dungeon"
)

type Reason string

const (
	ReasonDamage        Reason = "damage"
	ReasonTypeAdvantage Reason = "type_advantage"
	ReasonDefault       Reason = "default"
)

// ClashResult is the outcome of a single card-vs-card pairing.
type ClashResult struct {
	Winner Side
	Reason Reason
}

// EvaluateClash resolves one pairing from effective stats. Rules are applied in
// order and the first one that picks a single side wins:
//
//  1. damage: a side wins if its damage exceeds the other's health and the
//     other side's damage does not exceed its own health
//  2. type advantage: a side wins if its element beats the other's and not
//     the reverse
//  3. default: the dungeon wins
//
// When both sides win by damage the clash falls through to rule 2.
func EvaluateClash(playerDamage, playerHealth int, playerElement Element, dungeonDamage, dungeonHealth int, dungeonElement Element) ClashResult {
	playerWinsByDamage := playerDamage > dungeonHealth
	dungeonWinsByDamage := dungeonDamage > playerHealth

	if playerWinsByDamage && !dungeonWinsByDamage {
		return ClashResult{Winner: SidePlayer, Reason: ReasonDamage}
	}
	if dungeonWinsByDamage && !playerWinsByDamage {
		return ClashResult{Winner: SideDungeon, Reason: ReasonDamage}
	}

	playerAdvantage := playerElement.Beats(dungeonElement)
	dungeonAdvantage := dungeonElement.Beats(playerElement)

	if playerAdvantage && !dungeonAdvantage {
		return ClashResult{Winner: SidePlayer, Reason: ReasonTypeAdvantage}
	}
	if dungeonAdvantage && !playerAdvantage {
		return ClashResult{Winner: SideDungeon, Reason: ReasonTypeAdvantage}
	}

	return ClashResult{Winner: SideDungeon, Reason: ReasonDefault}
}
