package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"calouros-backend/lib/lookup"
	"calouros-backend/lib/scrapers/comvest"
	"calouros-backend/lib/serviceutil"
	"calouros-backend/services/ingest"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	parseTables      *string
	parseCall        *int
	parseInstitution *string
)

func init() {
	parseTables = parseCmd.Flags().String("tables", "tables", "The directory holding the lookup table json files.")
	parseCall = parseCmd.Flags().Int("call", 0, "The call number, inferred from the url when omitted.")
	parseInstitution = parseCmd.Flags().String("institution", "", "The institution tag, inferred from the url when omitted.")
	rootCmd.AddCommand(parseCmd)
}

// readListing loads a raw listing from a local file or a listing url.
func readListing(ctx context.Context, source string) (raw string, call int, institution string, err error) {
	call = 1
	institution = "unknown"

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		institution, call = comvest.DetectTarget(source)
		client, err := comvest.NewClient()
		if err != nil {
			return "", 0, "", err
		}
		raw, err = client.FetchListing(ctx, source)
		return raw, call, institution, err
	}

	contents, err := os.ReadFile(source)
	return string(contents), call, institution, err
}

var parseCmd = &cobra.Command{
	Use:   "parse <file|url>",
	Short: "Parses and classifies a listing without persisting anything.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, call, institution, err := readListing(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to read listing", err)
		}
		if *parseCall != 0 {
			call = *parseCall
		}
		if *parseInstitution != "" {
			institution = *parseInstitution
		}

		tables, err := lookup.Load(*parseTables)
		if err != nil {
			serviceutil.Fatal("failed to load lookup tables", err)
		}

		candidates, report := ingest.ExtractRecords(raw, call, institution)
		records := ingest.Classify(candidates, tables)
		summary := ingest.Summarize(records)

		fmt.Printf("parsed %d of %d lines (%d failed)\n", report.Parsed, report.Lines, report.Failed())
		renderSummary(summary)
		renderUnresolved(ingest.ReportUnresolved(records, tables))
	},
}

func renderSummary(summary ingest.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Bucket", "Key", "Records"})

	for _, bucket := range []struct {
		name   string
		counts map[string]int
	}{
		{"gender", summary.ByGender},
		{"city", summary.ByCity},
		{"quota", summary.ByQuota},
	} {
		keys := make([]string, 0, len(bucket.counts))
		for key := range bucket.counts {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			t.AppendRow(table.Row{bucket.name, key, bucket.counts[key]})
		}
	}
	t.AppendFooter(table.Row{"", "total", summary.Total})

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderUnresolved(report ingest.UnresolvedReport) {
	if len(report.Courses) == 0 && len(report.Names) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Unresolved Course", "Nearest Known Key", "Similarity"})
	for _, c := range report.Courses {
		t.AppendRow(table.Row{c.Key, c.Nearest, fmt.Sprintf("%.2f", c.Similarity)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	if len(report.Names) > 0 {
		fmt.Printf("unknown first names: %s\n", strings.Join(report.Names, ", "))
	}
}
