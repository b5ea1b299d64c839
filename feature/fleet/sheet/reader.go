package sheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"fleet-report/core/utils"
	"fleet-report/feature/fleet/models"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidFormat is returned for workbooks that cannot be read.
var ErrInvalidFormat = errors.New("invalid workbook")

// Input columns, 1-based.
const (
	colIMO = iota + 1
	colVesselName
	colTimestamp
	colReport
)

// Read parses the first worksheet of the workbook in r. Row 1 is the header;
// every following row up to the sheet's last used row becomes one UploadedRow.
func Read(r io.Reader) ([]models.UploadedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no worksheet", ErrInvalidFormat)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: worksheet %q has no dimension", ErrInvalidFormat, sheet)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	out := make([]models.UploadedRow, 0, len(rows)-1)
	for row := 2; row <= len(rows); row++ {
		out = append(out, models.UploadedRow{
			IMO:        cellText(f, sheet, colIMO, row),
			VesselName: cellText(f, sheet, colVesselName, row),
			Timestamp:  timestampText(f, sheet, row, date1904),
			Report:     cellText(f, sheet, colReport, row),
		})
	}
	return out, nil
}

func cellText(f *excelize.File, sheet string, col, row int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	v, _ := f.GetCellValue(sheet, cell)
	return v
}

// timestampText converts numeric cells (date serials) to UTC text and returns
// the displayed text of every other cell.
func timestampText(f *excelize.File, sheet string, row int, date1904 bool) string {
	cell, err := excelize.CoordinatesToCellName(colTimestamp, row)
	if err != nil {
		return ""
	}

	typ, _ := f.GetCellType(sheet, cell)
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeBool, excelize.CellTypeError:
		v, _ := f.GetCellValue(sheet, cell)
		return v
	case excelize.CellTypeDate:
		raw, _ := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
		if ts, ok := utils.ParseTimestamp(raw); ok {
			return utils.FormatTimestamp(ts)
		}
		v, _ := f.GetCellValue(sheet, cell)
		return v
	}

	raw, _ := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if ts, err := excelize.ExcelDateToTime(serial, date1904); err == nil {
			return utils.FormatTimestamp(ts.Round(time.Second))
		}
	}
	v, _ := f.GetCellValue(sheet, cell)
	return v
}
