package ingest

// Fixed worksheet layout. Column order is set by the export tool's
// convention; the sheet is not self-describing.
const (
	colLordID = iota
	colName
	colDivision
	colAllianceID
	colAllianceTag
	colCurrentPower
	colHighestPower
	colMerits
	colUnitsKilled
	colUnitsDead
	colUnitsHealed
	colT1Kills
	colT2Kills
	colT3Kills
	colT4Kills
	colT5Kills
	colVictories
	colDefeats
	colCitySieges
	colScouted
	colHelpsGiven
	colGold
	colGoldSpent
	colWood
	colWoodSpent
	colOre
	colOreSpent
	colMana
	colManaSpent
	colGems
	colGemsSpent
	colResourcesGiven
	colResourcesGivenCount
	colCityLevel
	colFaction
	colHeroPower
	colLegionPower
	colTechPower
	colBuildingPower

	columnCount // 39
)

// PlayerRow is one normalized data row. Large cumulative counters stay
// as cleaned decimal strings end to end.
type PlayerRow struct {
	LordID      string
	Name        string
	Division    int
	AllianceID  string
	AllianceTag string
	Faction     string
	CityLevel   int

	CurrentPower  string
	HighestPower  string
	HeroPower     string
	LegionPower   string
	TechPower     string
	BuildingPower string

	UnitsKilled string
	UnitsDead   string
	UnitsHealed string
	T1Kills     string
	T2Kills     string
	T3Kills     string
	T4Kills     string
	T5Kills     string

	Merits     int64
	Victories  int64
	Defeats    int64
	CitySieges int64
	Scouted    int64
	HelpsGiven int64

	Gold      string
	GoldSpent string
	Wood      string
	WoodSpent string
	Ore       string
	OreSpent  string
	Mana      string
	ManaSpent string
	Gems      string
	GemsSpent string

	ResourcesGiven      string
	ResourcesGivenCount int64
}
