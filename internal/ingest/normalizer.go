package ingest

import (
	"regexp"
	"strconv"

	"github.com/kavehz/realmstats/internal/security"
	"github.com/kavehz/realmstats/pkg/errors"
	"github.com/kavehz/realmstats/pkg/logger"
	"github.com/kavehz/realmstats/pkg/utils"
	"github.com/xuri/excelize/v2"
)

var decimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// NormalizeRows maps the worksheet's fixed 39-column layout onto typed
// rows. The first row is the header. Rows with a blank lord-id cell are
// trailing blanks and are skipped silently. A duplicate lord id within
// one sheet keeps the last occurrence; the (player, snapshot) pair must
// stay unique downstream.
func NormalizeRows(f *excelize.File, sheet string) ([]PlayerRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidationFailed, "failed to read worksheet rows")
	}

	normalized := make([]PlayerRow, 0, len(rows))
	seen := make(map[string]int)

	for i, row := range rows {
		if i == 0 { // header
			continue
		}

		lordID := security.SanitizeCell(cell(row, colLordID))
		if lordID == "" {
			continue
		}

		pr := normalizeRow(lordID, row)

		if pos, dup := seen[lordID]; dup {
			logger.Warn("Duplicate lord id in upload, keeping last occurrence",
				"lord_id", lordID, "row", i+1, "sheet", sheet)
			normalized[pos] = pr
			continue
		}

		seen[lordID] = len(normalized)
		normalized = append(normalized, pr)
	}

	return normalized, nil
}

func normalizeRow(lordID string, row []string) PlayerRow {
	return PlayerRow{
		LordID:      lordID,
		Name:        utils.CollapseSpaces(security.SanitizeCell(cell(row, colName))),
		Division:    int(parseCounter(cell(row, colDivision))),
		AllianceID:  security.SanitizeCell(cell(row, colAllianceID)),
		AllianceTag: security.SanitizeCell(cell(row, colAllianceTag)),
		Faction:     security.SanitizeCell(cell(row, colFaction)),
		CityLevel:   int(parseCounter(cell(row, colCityLevel))),

		CurrentPower:  decimalString(cell(row, colCurrentPower)),
		HighestPower:  decimalString(cell(row, colHighestPower)),
		HeroPower:     decimalString(cell(row, colHeroPower)),
		LegionPower:   decimalString(cell(row, colLegionPower)),
		TechPower:     decimalString(cell(row, colTechPower)),
		BuildingPower: decimalString(cell(row, colBuildingPower)),

		UnitsKilled: decimalString(cell(row, colUnitsKilled)),
		UnitsDead:   decimalString(cell(row, colUnitsDead)),
		UnitsHealed: decimalString(cell(row, colUnitsHealed)),
		T1Kills:     decimalString(cell(row, colT1Kills)),
		T2Kills:     decimalString(cell(row, colT2Kills)),
		T3Kills:     decimalString(cell(row, colT3Kills)),
		T4Kills:     decimalString(cell(row, colT4Kills)),
		T5Kills:     decimalString(cell(row, colT5Kills)),

		Merits:     parseCounter(cell(row, colMerits)),
		Victories:  parseCounter(cell(row, colVictories)),
		Defeats:    parseCounter(cell(row, colDefeats)),
		CitySieges: parseCounter(cell(row, colCitySieges)),
		Scouted:    parseCounter(cell(row, colScouted)),
		HelpsGiven: parseCounter(cell(row, colHelpsGiven)),

		Gold:      decimalString(cell(row, colGold)),
		GoldSpent: decimalString(cell(row, colGoldSpent)),
		Wood:      decimalString(cell(row, colWood)),
		WoodSpent: decimalString(cell(row, colWoodSpent)),
		Ore:       decimalString(cell(row, colOre)),
		OreSpent:  decimalString(cell(row, colOreSpent)),
		Mana:      decimalString(cell(row, colMana)),
		ManaSpent: decimalString(cell(row, colManaSpent)),
		Gems:      decimalString(cell(row, colGems)),
		GemsSpent: decimalString(cell(row, colGemsSpent)),

		ResourcesGiven:      decimalString(cell(row, colResourcesGiven)),
		ResourcesGivenCount: parseCounter(cell(row, colResourcesGivenCount)),
	}
}

// cell returns the value at idx, tolerating the short rows excelize
// produces when trailing cells are empty.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseCounter parses a bounded integer counter. Thousands separators
// are stripped; anything unparseable defaults to 0.
func parseCounter(raw string) int64 {
	cleaned := utils.CleanNumericString(raw)
	if cleaned == "" {
		return 0
	}

	if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return v
	}

	// Some exports format integers as "1234.0"
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return int64(v)
	}

	return 0
}

// decimalString cleans a large cumulative counter without parsing it
// into a fixed-width integer. Invalid or empty cells become "0".
func decimalString(raw string) string {
	cleaned := utils.CleanNumericString(raw)
	if !decimalPattern.MatchString(cleaned) {
		return "0"
	}
	return cleaned
}
