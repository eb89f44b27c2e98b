package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"patchsheet/app/patch"
)

// Writer produces the single-sheet XLSX artifact. The file is created
// in one shot after the pipeline completes; an aborted run leaves no
// partial output behind.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Run writes the header row followed by one row per record.
func (w *Writer) Run(rows []patch.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &patch.Columns); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell reference: %w", err)
		}
		cells := row.Cells()
		if err := f.SetSheetRow(sheet, ref, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", w.path, err)
	}

	return nil
}
