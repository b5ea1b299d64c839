package sheet

import (
	"fmt"
	"path"
	"strings"
	"time"

	"fleet-report/core/utils"
	"fleet-report/feature/fleet/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single worksheet of a generated report.
const SheetName = "Reports"

// NotAvailable is written in the gap column when no report matched the row.
const NotAvailable = "N/A"

// Header is the fixed header of every generated report.
var Header = []string{
	"IMO",
	"VesselName",
	"Timestamp",
	"Report",
	"Checked At UTC Timestamp",
	"Last Data Received UTC Timestamp",
	"Gap from Last Check Time",
	"Response Report",
}

// EnrichmentHeader is appended after Header when enrichment ran.
var EnrichmentHeader = []string{
	"MMSI",
	"AIS Latest UTC Timestamp",
	"Warehouse Latest UTC Timestamp",
	"Enrichment Error",
}

// Options controls rendering.
type Options struct {
	// Now is the check time written in every row and used for the gap.
	Now time.Time
	// Enriched appends the enrichment columns.
	Enriched bool
}

// OutputName derives the report file name from the uploaded file name:
// "vessels.xlsx" becomes "vessels_Report.xlsx".
func OutputName(uploaded string) string {
	base := path.Base(strings.ReplaceAll(uploaded, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "upload"
	}
	return base + "_Report.xlsx"
}

// MatchReport returns the first report for the row's IMO whose description
// equals the row's report label, ignoring case.
func MatchReport(row models.UploadedRow, reports []models.Report) *models.Report {
	for i := range reports {
		if reports[i].IMO == row.IMO && strings.EqualFold(reports[i].Description, row.Report) {
			return &reports[i]
		}
	}
	return nil
}

// Gap renders now minus the report timestamp, or NotAvailable.
func Gap(now time.Time, report *models.Report) string {
	if report == nil {
		return NotAvailable
	}
	ts, ok := utils.ParseTimestamp(report.Timestamp)
	if !ok {
		return NotAvailable
	}
	return utils.FormatGap(now.Sub(ts))
}

// Render builds the report workbook. Rows with an empty IMO are skipped.
func Render(rows []models.UploadedRow, reports []models.Report, opts Options) (*excelize.File, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	checkedAt := utils.FormatTimestamp(now)

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, 0, len(Header)+len(EnrichmentHeader))
	for _, h := range Header {
		header = append(header, h)
	}
	if opts.Enriched {
		for _, h := range EnrichmentHeader {
			header = append(header, h)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	line := 2
	for _, row := range rows {
		if row.IMO == "" {
			continue
		}

		report := MatchReport(row, reports)
		values := []any{row.IMO, row.VesselName, row.Timestamp, row.Report, checkedAt, "", Gap(now, report), ""}
		if report != nil {
			values[5] = report.Timestamp
			values[7] = report.Description
		}
		if opts.Enriched {
			if report != nil {
				values = append(values, report.MMSI, report.AISLatest, report.WarehouseLatest, report.EnrichError)
			} else {
				values = append(values, "", "", "", "")
			}
		}

		cell, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", line, err)
		}
		line++
	}

	if err := styleHeader(f, len(header)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Bytes renders the workbook and serializes it.
func Bytes(rows []models.UploadedRow, reports []models.Report, opts Options) ([]byte, error) {
	f, err := Render(rows, reports, opts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func styleHeader(f *excelize.File, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	last, _ := excelize.ColumnNumberToName(columns)
	if err := f.SetCellStyle(SheetName, "A1", last+"1", style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", last, 22); err != nil {
		return fmt.Errorf("size columns: %w", err)
	}
	return nil
}
