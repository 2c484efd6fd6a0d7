package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/nconklindev/portail/internal/aggregate"
	"github.com/nconklindev/portail/internal/app"
	"github.com/nconklindev/portail/internal/config"
	"github.com/nconklindev/portail/internal/portal"
	"github.com/nconklindev/portail/internal/sheets"
	"github.com/nconklindev/portail/internal/table"
	"github.com/nconklindev/portail/internal/types"
	"github.com/nconklindev/portail/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	envFile string
	dataDir string
	demo    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "portail",
		Short:         "Terminal dashboard for the facility-services client portal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			return runUI(cfg)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("portail %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	cmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "Environment file to load")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Read sources from exported files in this directory")
	cmd.PersistentFlags().BoolVar(&opts.demo, "demo", false, "Use generated demo data")

	cmd.AddCommand(
		newStatsCmd(opts),
		newReportsCmd(opts),
		newCalendarCmd(opts),
		newDemandesCmd(opts),
		newSourcesCmd(opts),
		newInspectCmd(),
	)

	return cmd
}

// config loads the environment and applies the command-line overrides.
func (o *options) config() (config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return config.Config{}, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.demo {
		cfg.Demo = true
	}
	return cfg, nil
}

func runUI(cfg config.Config) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "portail")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	store, err := app.NewStore(cfg)
	if err != nil {
		return err
	}

	model := ui.New(store, portal.NewService(store), cfg.HTTPTimeout)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func load(cmd *cobra.Command, opts *options) (*portal.Service, error) {
	cfg, err := opts.config()
	if err != nil {
		return nil, err
	}
	_, svc, err := app.Load(cmd.Context(), cfg)
	return svc, err
}

func render(headers []string, rows [][]string) string {
	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(ui.LabelStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return ui.ValueStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func parseDateFlag(name, value string) (*table.CalendarDate, error) {
	if value == "" {
		return nil, nil
	}
	d, ok := table.ParseFrenchDate(value)
	if !ok {
		return nil, fmt.Errorf("--%s: invalid date %q (use DD/MM/YYYY)", name, value)
	}
	return &d, nil
}

func newStatsCmd(opts *options) *cobra.Command {
	var from, to, export string
	var visits bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print time spent per sanitary block",
		Long: `Print visits and time spent per sanitary block (BS) over a period.

Example: portail stats --from 01/03/2025 --to 31/03/2025 --export mars.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := parseDateFlag("from", from)
			if err != nil {
				return err
			}
			toDate, err := parseDateFlag("to", to)
			if err != nil {
				return err
			}

			svc, err := load(cmd, opts)
			if err != nil {
				return err
			}
			summary, err := svc.BlockStats(fromDate, toDate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Blocks.Len() == 0 {
				fmt.Fprintln(out, "Aucune donnée trouvée")
				return nil
			}

			headers, rows := portal.BlockColumns, summary.Rows()
			if visits {
				list, err := svc.Visits(fromDate, toDate)
				if err != nil {
					return err
				}
				headers, rows = portal.VisitColumns, make([][]string, 0, len(list))
				for _, v := range list {
					rows = append(rows, v.Row())
				}
			}
			fmt.Fprintln(out, render(headers, rows))
			fmt.Fprintf(out, "%d passages, temps total %s\n", summary.Visits, table.FormatMinutes(summary.TotalMinutes))

			if export != "" {
				res, err := sheets.Export(export, headers, rows)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Export: %s (%d lignes)\n", res.OutputFile, res.RowsWritten)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (DD/MM/YYYY), inclusive")
	cmd.Flags().StringVar(&to, "to", "", "Last day (DD/MM/YYYY), inclusive")
	cmd.Flags().StringVar(&export, "export", "", "Write the table to a .csv or .xlsx file")
	cmd.Flags().BoolVar(&visits, "visits", false, "List every visit instead of the per-block totals")

	return cmd
}

func newReportsCmd(opts *options) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "reports [category]",
		Short: "Print intervention reports",
		Long: `Without a category, print the latest report of every category.
With one, list its reports over a period, newest first.

Categories: vacations, mecanisation, remise-en-etat

Example: portail reports vacations --from 01/03/2025 --to 31/03/2025`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var keys []string
			for _, c := range portal.ReportCategories() {
				keys = append(keys, c.Key)
			}
			return keys, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var category portal.Category
			if len(args) == 1 {
				var ok bool
				if category, ok = portal.ReportCategory(args[0]); !ok {
					return fmt.Errorf("unknown category %q", args[0])
				}
			}
			fromDate, err := parseDateFlag("from", from)
			if err != nil {
				return err
			}
			toDate, err := parseDateFlag("to", to)
			if err != nil {
				return err
			}

			svc, err := load(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if category.Key == "" {
				ov, err := svc.Overview(time.Now())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(ov.Reports))
				for _, r := range ov.Reports {
					rows = append(rows, []string{r.Category, r.DateString(), r.Label, r.URL})
				}
				fmt.Fprintln(out, render([]string{"Catégorie", "Date", "Détail", "PDF"}, rows))
				return nil
			}

			reports, err := svc.Reports(category, fromDate, toDate)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Fprintln(out, "Aucune donnée trouvée")
				return nil
			}
			rows := make([][]string, 0, len(reports))
			for _, r := range reports {
				rows = append(rows, portal.ReportRow(r))
			}
			fmt.Fprintln(out, render(portal.ReportColumns, rows))
			fmt.Fprintf(out, "%d rapports %s\n", len(reports), category.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (DD/MM/YYYY), inclusive")
	cmd.Flags().StringVar(&to, "to", "", "Last day (DD/MM/YYYY), inclusive")

	return cmd
}

// parseMonth reads MM/YYYY, defaulting to the month of now.
func parseMonth(value string, now time.Time) (int, time.Month, error) {
	if value == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("01/2006", value)
	if err != nil {
		return 0, 0, fmt.Errorf("--month: invalid month %q (use MM/YYYY)", value)
	}
	return t.Year(), t.Month(), nil
}

func newCalendarCmd(opts *options) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the deployments planned in a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := parseMonth(month, time.Now())
			if err != nil {
				return err
			}
			svc, err := load(cmd, opts)
			if err != nil {
				return err
			}
			events, err := svc.Calendar(year, m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", portal.MonthName(m), year)
			if len(events) == 0 {
				fmt.Fprintln(out, "Aucune donnée trouvée")
				return nil
			}
			rows := make([][]string, 0, len(events))
			for _, ev := range events {
				rows = append(rows, portal.EventRow(ev))
			}
			fmt.Fprintln(out, render(portal.EventColumns, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (MM/YYYY), current month by default")

	return cmd
}

func newDemandesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demandes",
		Short: "Print ADP request statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := load(cmd, opts)
			if err != nil {
				return err
			}
			_, stats, err := svc.Demandes(time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stats.Total == 0 {
				fmt.Fprintln(out, "Aucune donnée trouvée")
				return nil
			}
			fmt.Fprintf(out, "%d demandes, %d créées ces dernières 24h, %d%% réalisées\n",
				stats.Total, stats.Recent, stats.CompletionRate())
			fmt.Fprintln(out, render([]string{"Statut", "Demandes"}, countRows(stats.ByStatus)))
			fmt.Fprintln(out, render([]string{"Zone", "Demandes"}, countRows(stats.ByZone)))
			fmt.Fprintln(out, render([]string{"Prestation", "Demandes"}, countRows(stats.ByType)))
			fmt.Fprintln(out, render([]string{"Demandeur", "Demandes"}, countRows(stats.ByDemandeur)))
			return nil
		},
	}
}

func newSourcesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Refresh every source and print what was loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			store, _, err := app.Load(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(store.Sources()))
			for _, src := range store.Sources() {
				count, fetched := "-", "-"
				if raw, ok := store.Table(src.Name); ok {
					count = strconv.Itoa(len(raw.DataRows()))
				}
				if at, ok := store.FetchedAt(src.Name); ok {
					fetched = at.Format("02/01/2006 15:04:05")
				}
				rows = append(rows, []string{src.Name, src.Range, count, fetched})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mode: %s\n", cfg.Mode())
			fmt.Fprintln(cmd.OutOrStdout(), render([]string{"Source", "Plage", "Lignes", "Chargée le"}, rows))
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Guess the column types of an exported sheet",
		Long: `Read a .csv, .xlsx or values .json export and print the type guessed
for every column from its first rows.

Example: portail inspect export.xlsx --sheet Sequoia`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data *types.FileData
				err  error
			)
			if sheet != "" {
				data, err = sheets.ReadXLSXSheet(args[0], sheet)
			} else {
				data, err = sheets.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			spec := sheets.DetectSpec(data)
			records, err := table.MapRows(data.Table(), spec)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(spec))
			for _, col := range spec {
				rows = append(rows, []string{col.Name, col.Kind.String()})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render([]string{"Colonne", "Type"}, rows))
			fmt.Fprintf(out, "%d lignes, en-tête ligne %d\n", len(records), data.HeaderRow+1)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Workbook sheet to read (.xlsx only)")

	return cmd
}

func countRows(r aggregate.Result) [][]string {
	rows := make([][]string, 0, r.Len())
	for _, g := range r.Groups() {
		rows = append(rows, []string{g.Key, strconv.Itoa(g.Count)})
	}
	return rows
}
