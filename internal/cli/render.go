package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"VizChat/internal/chart"
	"VizChat/internal/dataset"
	"VizChat/internal/render"
	"VizChat/internal/sample"
)

type renderOptions struct {
	dataPath string
	title    string
	scheme   string
	seed     int64
}

func (a *App) newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <type>",
		Short: "Render one chart to an HTML file",
		Long: `Render one chart to an HTML file in the output directory and print its path.

Without --data the chart is drawn from sample data.

Examples:
  # Sample scatter plot
  vizchat render scatter

  # Bar chart of a CSV file
  vizchat render bar --data sales.csv --title "Revenue by Region"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderChart(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dataPath, "data", "d", "", "CSV, TSV or XLSX file to chart")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Chart title")
	cmd.Flags().StringVar(&opts.scheme, "scheme", "", "Color scheme (plotly, viridis, pastel)")
	cmd.Flags().Int64Var(&opts.seed, "seed", sample.DefaultSeed, "Seed for sample data")

	return cmd
}

func (a *App) renderChart(name string, opts *renderOptions) error {
	t, ok := chart.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown chart type %q", name)
	}

	chartOpts, err := a.cfg.ChartOptions()
	if err != nil {
		return fmt.Errorf("failed to load chart style: %w", err)
	}
	if opts.scheme != "" {
		chartOpts = append(chartOpts, chart.WithColorScheme(opts.scheme))
	}

	var ds *dataset.Dataset
	if opts.dataPath != "" {
		ds, err = dataset.LoadFile(opts.dataPath)
		if err != nil {
			return err
		}
	} else {
		ds = sample.Synthesize(t, opts.seed)
	}

	res, err := chart.Resolve(t, ds, opts.title, chartOpts...)
	if err != nil {
		return err
	}
	if opts.title == "" && opts.dataPath != "" {
		res.Spec.Title = chart.QuickTitle(res.Spec)
	}

	path, err := render.New().RenderFile(a.cfg.OutputDir, res.Spec, res.Data)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, path)
	return nil
}

type inspectOptions struct {
	outputJSON bool
}

type inspectReport struct {
	Name        string             `json:"name"`
	Columns     []string           `json:"columns"`
	Schema      dataset.Schema     `json:"schema"`
	Summary     dataset.Summary    `json:"summary"`
	QuickCharts []chart.QuickChart `json:"quick_charts"`
}

func (a *App) newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Describe a data file and the charts it supports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspectFile(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.outputJSON, "json", false, "Output as JSON")

	return cmd
}

func (a *App) inspectFile(path string, opts *inspectOptions) error {
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return err
	}
	schema := ds.Schema()
	report := inspectReport{
		Name:        ds.Name,
		Columns:     ds.Names(),
		Schema:      schema,
		Summary:     dataset.Describe(ds),
		QuickCharts: chart.QuickCharts(schema),
	}

	if opts.outputJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	s := report.Summary
	fmt.Fprintf(a.stdout, "%s: %d rows x %d columns\n", report.Name, s.Rows, s.Columns)
	fmt.Fprintf(a.stdout, "  numeric:     %s\n", strings.Join(schema.Numeric, ", "))
	fmt.Fprintf(a.stdout, "  categorical: %s\n", strings.Join(schema.Categorical, ", "))
	fmt.Fprintf(a.stdout, "  temporal:    %s\n", strings.Join(schema.Temporal, ", "))
	fmt.Fprintf(a.stdout, "  duplicate rows: %d\n", s.DuplicateRows)
	for _, q := range report.QuickCharts {
		status := "yes"
		if !q.Enabled {
			status = fmt.Sprintf("no (needs %d numeric, %d categorical)", q.Need.Numeric, q.Need.Categorical)
		}
		fmt.Fprintf(a.stdout, "  %-10s %s\n", q.Type, status)
	}
	return nil
}
