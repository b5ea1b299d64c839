package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"fleet-report/core/fleetapi"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var rosterJSON bool

// rosterCmd prints the fleet visible to a set of credentials.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Print the fleet roster of an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(withoutWarehouse)
		if err != nil {
			return err
		}

		creds := fleetapi.Credentials{Username: fleetUsername, Password: fleetPassword}
		roster, err := d.fleetFeature().Service().Roster(cmd.Context(), creds)
		if err != nil {
			return err
		}

		if rosterJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(roster)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SERIAL\tIMO\tNAME")
		for _, e := range roster {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Serial, e.IMO, e.Name)
		}
		return w.Flush()
	},
}

func init() {
	rosterCmd.Flags().StringVar(&fleetUsername, "username", os.Getenv("FLEET_USERNAME"), "Fleet API username")
	rosterCmd.Flags().StringVar(&fleetPassword, "password", os.Getenv("FLEET_PASSWORD"), "Fleet API password")
	rosterCmd.Flags().BoolVar(&rosterJSON, "json", false, "Print the roster as JSON")

	RootCmd.AddCommand(rosterCmd)
}
