package ingest

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kavehz/realmstats/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Export filenames encode the kingdom and the capture instant, e.g.
// 671_20250810_2040utc.xlsx: kingdom 671, captured 2025-08-10 20:40 UTC.
var filenamePattern = regexp.MustCompile(`^(\d+)_(\d{8})_(\d{4})utc\.(xlsx|xls)$`)

// Sheets the export tool has been observed to use when it does not name
// the sheet after the kingdom.
var fallbackSheetNames = []string{"Players", "PlayerStats", "Data"}

// ParseFilename extracts the kingdom id and the capture timestamp from
// an upload's filename. The timestamp is the nominal capture time, not
// the ingestion time, and is always UTC no matter where the server runs.
func ParseFilename(filename string) (string, time.Time, error) {
	m := filenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return "", time.Time{}, errors.New(errors.ErrCodeInvalidFilenameFormat,
			fmt.Sprintf("filename %q does not match <kingdom>_<yyyymmdd>_<hhmm>utc.xlsx", filename))
	}

	ts, err := time.ParseInLocation("200601021504", m[2]+m[3], time.UTC)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.ErrCodeInvalidFilenameFormat,
			fmt.Sprintf("filename %q encodes an invalid date or time", filename))
	}

	return m[1], ts, nil
}

// LocateWorksheet finds the sheet holding the player rows. The export
// tool usually names it after the kingdom; older exports use one of a
// few known names; the oldest put the data on the third sheet.
func LocateWorksheet(f *excelize.File, kingdom string) (string, error) {
	sheets := f.GetSheetList()

	for _, name := range sheets {
		if name == kingdom {
			return name, nil
		}
	}

	for _, fallback := range fallbackSheetNames {
		for _, name := range sheets {
			if name == fallback {
				return name, nil
			}
		}
	}

	if len(sheets) >= 3 {
		return sheets[2], nil
	}

	return "", errors.New(errors.ErrCodeWorksheetNotFound,
		fmt.Sprintf("no player worksheet found for kingdom %s", kingdom))
}
