package cmd

import (
	"context"
	"errors"
	"os"

	"fleet-report/feature/health"
	"fleet-report/feature/health/checks"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// healthCmd runs the dependency checks from the command line.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the report sink, storage bucket and warehouse table",
	Long:  `Runs the same checks as GET /health and prints a JSON report. With --fix a missing report bucket is created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(withWarehouse)
		if err != nil {
			return err
		}
		svc := health.NewService(d.store, d.cfg.Storage, d.db, d.cfg.Warehouse, d.sink, d.log)
		report := runHealthChecks(cmd.Context(), svc, d.log)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	healthCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the report bucket when missing")
	RootCmd.AddCommand(healthCmd)
}

func runHealthChecks(ctx context.Context, svc *health.Service, l *zap.Logger) map[string]interface{} {
	report := make(map[string]interface{})

	if count, err := svc.CheckOutput(ctx); err != nil {
		report["output"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["output"] = map[string]interface{}{"status": "ok", "reports": count}
	}

	exists, err := svc.CheckStorage(ctx)
	switch {
	case errors.Is(err, checks.ErrNotConfigured):
		report["storage"] = map[string]interface{}{"status": "skipped"}
	case err != nil:
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	case !exists && fixFlag:
		if err := svc.FixStorage(ctx); err != nil {
			report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			report["storage"] = map[string]interface{}{"status": "fixed"}
		}
	case !exists:
		l.Warn("Report bucket missing; rerun with --fix to create it")
		report["storage"] = map[string]interface{}{"status": "error", "error": "bucket does not exist"}
	default:
		report["storage"] = map[string]interface{}{"status": "ok"}
	}

	wh, err := svc.CheckWarehouse()
	switch {
	case errors.Is(err, checks.ErrNotConfigured):
		report["warehouse"] = map[string]interface{}{"status": "skipped"}
	case err != nil:
		report["warehouse"] = map[string]interface{}{"status": "error", "error": err.Error()}
	default:
		report["warehouse"] = wh
	}

	return report
}
