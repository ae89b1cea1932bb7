package commands

import (
	"fmt"

	"calouros-backend/lib/callstore"
	callstoredb "calouros-backend/lib/callstore/db"
	configlibsql "calouros-backend/lib/configutil/libsql"
	"calouros-backend/lib/lookup"
	"calouros-backend/lib/serviceutil"
	"calouros-backend/services/ingest"

	"github.com/spf13/cobra"
)

var (
	ingestDb          *string
	ingestTables      *string
	ingestCall        *int
	ingestInstitution *string
)

func init() {
	ingestDb = ingestCmd.Flags().String("db", "calouros.db", "The database to merge parsed records into.")
	ingestTables = ingestCmd.Flags().String("tables", "tables", "The directory holding the lookup table json files.")
	ingestCall = ingestCmd.Flags().Int("call", 0, "The call number, inferred from the url when omitted.")
	ingestInstitution = ingestCmd.Flags().String("institution", "", "The institution tag, inferred from the url when omitted.")
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file|url> [--db <path/to/calouros.db>]",
	Short: "Parses a listing and merges it into a local database, skipping the staging step.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, call, institution, err := readListing(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to read listing", err)
		}
		if *ingestCall != 0 {
			call = *ingestCall
		}
		if *ingestInstitution != "" {
			institution = *ingestInstitution
		}

		tables, err := lookup.Load(*ingestTables)
		if err != nil {
			serviceutil.Fatal("failed to load lookup tables", err)
		}

		database, err := configlibsql.Struct{File: *ingestDb}.OpenDB(callstoredb.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		service := ingest.NewService(ingest.Options{
			Store:  callstore.NewStore(database),
			Tables: tables,
		})

		parsed, err := service.Parse(cmd.Context(), ingest.ParseRequest{
			RawText:     raw,
			Call:        call,
			Institution: institution,
		})
		if err != nil {
			serviceutil.Fatal("failed to parse listing", err)
		}
		confirmed, err := service.Confirm(cmd.Context(), parsed.BatchID)
		if err != nil {
			serviceutil.Fatal("failed to merge listing", err)
		}

		fmt.Printf(
			"merged call %d of %s: %d appended, %d already present\n",
			parsed.Call, parsed.Institution,
			confirmed.Merge.Appended, confirmed.Merge.Skipped,
		)
		renderSummary(parsed.Summary)
		renderUnresolved(parsed.Unresolved)
	},
}
