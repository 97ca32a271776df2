package main

import (
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

// Operator tool: print an export workbook's sheets and first rows to
// verify the column layout before uploading it.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: inspect_export <file.xlsx>")
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		log.Fatal("no sheets found")
	}

	fmt.Printf("Sheets: %v\n", sheets)

	sheetName := sheets[0]
	if len(os.Args) > 2 {
		sheetName = os.Args[2]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Fatal(err)
	}

	for i, row := range rows {
		if i > 5 {
			break
		}
		fmt.Printf("Row %d (%d cells): %v\n", i, len(row), row)
	}
}
