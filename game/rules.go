package game

// Rules holds the tunable numbers of combat, reinforcement and setup.
// Dice caps and area bonuses are configuration, not engine constants.
type Rules interface {
	DieSides() int
	AttackDice(attackers int) int
	DefendDice(defenders int) int
	// DetermineAttackOutcome compares rolls sorted in descending order pairwise.
	DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int)
	Reinforcements(territories, areaBonus int) int
	StartingForces(players int) int
	ConquestMove(remaining int) (lo, hi int)
}
