package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"fleet-report/core/fleetapi"
	"fleet-report/feature/fleet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags shared by the reconcile and roster commands
	fleetUsername string
	fleetPassword string

	enrichReports bool
	outPath       string
)

// reconcileCmd runs the report pipeline against a local workbook.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <workbook.xlsx>",
	Short: "Generate a report workbook from a local vessel workbook",
	Long: `Runs the same pipeline as POST /api/fleet/upload against a local file.

The report is written through the configured sink unless --out is given.
Credentials default to FLEET_USERNAME and FLEET_PASSWORD.

Examples:
  # Write Reports/vessels_Report.xlsx
  reconcile vessels.xlsx --username captain --password secret

  # Enrich with AIS and warehouse data and write to a chosen path
  reconcile vessels.xlsx --enrich --out /tmp/report.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&fleetUsername, "username", os.Getenv("FLEET_USERNAME"), "Fleet API username")
	reconcileCmd.Flags().StringVar(&fleetPassword, "password", os.Getenv("FLEET_PASSWORD"), "Fleet API password")
	reconcileCmd.Flags().BoolVar(&enrichReports, "enrich", false, "Enrich reports with AIS and warehouse data")
	reconcileCmd.Flags().StringVar(&outPath, "out", "", "Write the report to this path instead of the configured sink")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	var enrich *bool
	if cmd.Flags().Changed("enrich") {
		enrich = &enrichReports
	}

	d, err := loadDeps(warehouseForEnrich(enrich))
	if err != nil {
		return err
	}
	l := d.log

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read workbook: %w", err)
	}

	req := fleet.UploadRequest{
		FileName:    filepath.Base(args[0]),
		Data:        data,
		Credentials: fleetapi.Credentials{Username: fleetUsername, Password: fleetPassword},
		Stream:      outPath != "",
		Enrich:      enrich,
	}

	l.Info("Starting reconciliation", zap.String("file", req.FileName))
	out, err := d.fleetFeature().Service().Reconcile(cmd.Context(), req)
	if err != nil {
		return err
	}

	location := out.Location
	if outPath != "" {
		if err := os.WriteFile(outPath, out.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		location = outPath
	}

	fields := []zap.Field{
		zap.String("run_id", out.RunID),
		zap.String("file", out.FileName),
		zap.String("location", location),
		zap.Int("matched", out.Matched),
		zap.Int("reports", out.Reports),
	}
	if out.Enrichment != nil {
		fields = append(fields,
			zap.Int("enriched", out.Enrichment.Succeeded),
			zap.Int("enrichment_failed", out.Enrichment.Failed),
		)
	}
	l.Info("Reconciliation report", fields...)
	return nil
}
