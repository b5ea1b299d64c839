package sheet

import (
	"bytes"
	"testing"
	"time"

	"fleet-report/feature/fleet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, fill func(f *excelize.File, sheet string)) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"IMO", "Vessel", "Timestamp", "Report"}))
	fill(f, sheet)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead(t *testing.T) {
	buf := workbook(t, func(f *excelize.File, sheet string) {
		require.NoError(t, f.SetCellStr(sheet, "A2", "9123456"))
		require.NoError(t, f.SetCellStr(sheet, "B2", "Aurora"))
		require.NoError(t, f.SetCellValue(sheet, "C2", 46082.5))
		require.NoError(t, f.SetCellStr(sheet, "D2", "Daily"))

		require.NoError(t, f.SetCellValue(sheet, "A3", 9234567))
		require.NoError(t, f.SetCellStr(sheet, "B3", "Borealis"))
		require.NoError(t, f.SetCellStr(sheet, "C3", "yesterday noon"))
		require.NoError(t, f.SetCellStr(sheet, "D3", "Noon"))

		require.NoError(t, f.SetCellStr(sheet, "B4", "No identifier"))
	})

	rows, err := Read(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, models.UploadedRow{IMO: "9123456", VesselName: "Aurora", Timestamp: "2026-03-01 12:00:00", Report: "Daily"}, rows[0])
	assert.Equal(t, "9234567", rows[1].IMO)
	assert.Equal(t, "yesterday noon", rows[1].Timestamp)
	assert.Empty(t, rows[2].IMO)
	assert.Equal(t, "No identifier", rows[2].VesselName)
}

func TestRead_HeaderOnly(t *testing.T) {
	rows, err := Read(workbook(t, func(*excelize.File, string) {}))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRead_InvalidWorkbook(t *testing.T) {
	_, err := Read(bytes.NewBufferString("not a workbook"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRead_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	f.Close()

	_, err = Read(buf)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vessels.xlsx", "vessels_Report.xlsx"},
		{"fleet.march.xlsx", "fleet.march_Report.xlsx"},
		{`C:\Users\ops\vessels.xlsx`, "vessels_Report.xlsx"},
		{"../../etc/vessels.xlsx", "vessels_Report.xlsx"},
		{"", "upload_Report.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.in))
		})
	}
}

func TestMatchReport(t *testing.T) {
	reports := []models.Report{
		{IMO: "123", Description: "Noon"},
		{IMO: "123", Description: "DAILY", ReportID: "first"},
		{IMO: "123", Description: "daily", ReportID: "second"},
	}

	got := MatchReport(models.UploadedRow{IMO: "123", Report: "Daily"}, reports)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ReportID)

	assert.Nil(t, MatchReport(models.UploadedRow{IMO: "0123", Report: "Daily"}, reports))
	assert.Nil(t, MatchReport(models.UploadedRow{IMO: "123", Report: "Weekly"}, reports))
}

func TestGap(t *testing.T) {
	now := time.Date(2026, 3, 2, 13, 30, 15, 500, time.UTC)

	assert.Equal(t, NotAvailable, Gap(now, nil))
	assert.Equal(t, NotAvailable, Gap(now, &models.Report{Timestamp: "garbage"}))
	assert.Equal(t, "25h30m15s", Gap(now, &models.Report{Timestamp: "2026-03-01 12:00:00"}))
}

func TestRender(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	rows := []models.UploadedRow{
		{IMO: "123", VesselName: "Aurora", Timestamp: "2026-03-01 00:00:00", Report: "Daily"},
		{IMO: "", VesselName: "Skipped"},
		{IMO: "456", VesselName: "Borealis", Report: "Noon"},
	}
	reports := []models.Report{
		{Serial: "S1", IMO: "123", Timestamp: "2026-03-01 12:00:00", Description: "DAILY"},
	}

	f, err := Render(rows, reports, Options{Now: now})
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, Header, got[0])
	assert.Equal(t, []string{"123", "Aurora", "2026-03-01 00:00:00", "Daily", "2026-03-02 12:00:00", "2026-03-01 12:00:00", "24h0m0s", "DAILY"}, got[1])
	assert.Equal(t, "456", got[2][0])
	assert.Equal(t, NotAvailable, got[2][6])
}

func TestRender_Enriched(t *testing.T) {
	rows := []models.UploadedRow{{IMO: "123", Report: "Daily"}}
	reports := []models.Report{{
		IMO: "123", Timestamp: "2026-03-01 12:00:00", Description: "Daily",
		MMSI: "235000001", AISLatest: "2026-03-02 08:00:00", EnrichError: "warehouse: no rows",
	}}

	data, err := Bytes(rows, reports, Options{Now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), Enriched: true})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, append(append([]string{}, Header...), EnrichmentHeader...), got[0])
	assert.Equal(t, []string{"235000001", "2026-03-02 08:00:00", "", "warehouse: no rows"}, got[1][8:])
}
