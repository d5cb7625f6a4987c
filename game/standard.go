package game

type StandardRules struct {
	MaxAttackDice      int
	MaxDefendDice      int
	Sides              int
	MinReinforcements  int
	TerritoriesPerUnit int
	StartingBase       int
	StartingPerPlayer  int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		MaxAttackDice:      3,
		MaxDefendDice:      2,
		Sides:              6,
		MinReinforcements:  3,
		TerritoriesPerUnit: 3,
		StartingBase:       35,
		StartingPerPlayer:  2,
	}
}

func (sr *StandardRules) DieSides() int {
	return sr.Sides
}

// AttackDice leaves one unit behind on the source territory.
func (sr *StandardRules) AttackDice(attackers int) int {
	return max(0, min(attackers-1, sr.MaxAttackDice))
}

func (sr *StandardRules) DefendDice(defenders int) int {
	return max(0, min(defenders, sr.MaxDefendDice))
}

func (sr *StandardRules) DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int) {
	// Standard Risk attack outcome, ties go to the defender
	battles := min(len(attackerRolls), len(defenderRolls))
	for i := 0; i < battles; i++ {
		if attackerRolls[i] > defenderRolls[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return attackerLosses, defenderLosses
}

func (sr *StandardRules) Reinforcements(territories, areaBonus int) int {
	return max(sr.MinReinforcements, territories/sr.TerritoriesPerUnit) + areaBonus
}

func (sr *StandardRules) StartingForces(players int) int {
	return sr.StartingBase - sr.StartingPerPlayer*players
}

// ConquestMove bounds the units moved into a captured territory: at least as many as
// the largest attack roll allows, never the last unit on the source.
func (sr *StandardRules) ConquestMove(remaining int) (lo, hi int) {
	hi = remaining - 1
	lo = min(hi, sr.MaxAttackDice)
	return lo, hi
}

// ClassicWorld builds the classic 42 territory world.
func ClassicWorld() *World {
	w, err := NewWorld(classicAreas, SplitConnections(classicConnections))
	if err != nil {
		panic("classic world: " + err.Error())
	}
	return w
}

var classicAreas = []AreaDef{
	{Name: "North America", Bonus: 5, Territories: []string{"Alaska", "Northwest Territories", "Greenland", "Alberta", "Ontario", "Quebec", "Western United States", "Eastern United States", "Mexico"}},
	{Name: "South America", Bonus: 2, Territories: []string{"Venezuala", "Brazil", "Peru", "Argentina"}},
	{Name: "Africa", Bonus: 3, Territories: []string{"North Africa", "Egypt", "East Africa", "Congo", "South Africa", "Madagascar"}},
	{Name: "Europe", Bonus: 5, Territories: []string{"Iceland", "Great Britain", "Scandanavia", "Ukraine", "Northern Europe", "Western Europe", "Southern Europe"}},
	{Name: "Asia", Bonus: 7, Territories: []string{"Middle East", "Afghanistan", "India", "South East Asia", "China", "Mongolia", "Japan", "Kamchatka", "Irkutsk", "Yakutsk", "Siberia", "Ural"}},
	{Name: "Australia", Bonus: 2, Territories: []string{"Indonesia", "New Guinea", "Eastern Australia", "Western Australia"}},
}

// Territory names keep the historical spelling of the map data so traces stay comparable.
const classicConnections = `
Alaska--Northwest Territories--Alberta--Alaska
Alberta--Ontario--Greenland--Northwest Territories
Greenland--Quebec--Ontario--Eastern United States--Quebec
Alberta--Western United States--Ontario--Northwest Territories
Western United States--Eastern United States--Mexico--Western United States

Venezuala--Peru--Argentina--Brazil
Peru--Brazil--Venezuala

North Africa--Egypt--East Africa--North Africa
North Africa--Congo--East Africa--South Africa--Congo
East Africa--Madagascar--South Africa

Indonesia--Western Australia--Eastern Australia--New Guinea--Indonesia
Western Australia--New Guinea

Iceland--Great Britain--Western Europe--Southern Europe--Northern Europe--Western Europe
Northern Europe--Great Britain--Scandanavia--Northern Europe--Ukraine--Scandanavia--Iceland
Southern Europe--Ukraine

Middle East--India--South East Asia--China--Mongolia--Japan--Kamchatka--Yakutsk--Irkutsk--Kamchatka--Mongolia--Irkutsk
Yakutsk--Siberia--Irkutsk
China--Siberia--Mongolia
Siberia--Ural--China--Afghanistan--Ural
Middle East--Afghanistan--India--China

Mexico--Venezuala
Brazil--North Africa
Western Europe--North Africa--Southern Europe--Egypt--Middle East--East Africa
Southern Europe--Middle East--Ukraine--Afghanistan--Ural
Ukraine--Ural
Greenland--Iceland
Alaska--Kamchatka
South East Asia--Indonesia
`
