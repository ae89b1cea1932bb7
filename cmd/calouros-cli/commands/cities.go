package commands

import (
	"os"

	"calouros-backend/lib/callstore"
	callstoredb "calouros-backend/lib/callstore/db"
	configlibsql "calouros-backend/lib/configutil/libsql"
	"calouros-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	citiesDb          *string
	citiesInstitution *string
)

func init() {
	citiesDb = citiesCmd.Flags().String("db", "calouros.db", "The database to read.")
	citiesInstitution = citiesCmd.Flags().String("institution", "unicamp", "The institution tag to report on.")
	rootCmd.AddCommand(citiesCmd)
}

var citiesCmd = &cobra.Command{
	Use:   "cities [--db <path/to/calouros.db>]",
	Short: "Prints the cumulative record count per city.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := configlibsql.Struct{File: *citiesDb}.OpenDB(callstoredb.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		store := callstore.NewStore(database)
		cities, err := store.Cities(cmd.Context(), *citiesInstitution)
		if err != nil {
			serviceutil.Fatal("failed to query cities", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"City", "Records"})

		total := 0
		for _, c := range cities {
			t.AppendRow(table.Row{c.City, c.Records})
			total += c.Records
		}
		t.AppendFooter(table.Row{"total", total})

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
