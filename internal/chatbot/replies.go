package chatbot

import (
	"fmt"
	"strings"

	"VizChat/internal/chart"
	"VizChat/internal/dataset"
)

const helpReply = `I'm your data visualization assistant. I can help you create interactive charts and graphs.

What I can do:
  - Create bar charts, line graphs, scatter plots, pie charts, histograms, heatmaps and box plots
  - Load CSV, TSV and XLSX files (/upload <path>)
  - Generate sample data for testing
  - Write interactive HTML charts you can open in a browser

How to use me:
  - Just ask! "Show me a bar chart" or "Create a line graph"
  - Upload a file and try /quick bar, /quick scatter or /quick pie
  - Type /help for the full command list

Example requests:
  - "Create a sales chart by quarter"
  - "Show me customer data as a scatter plot"
  - "Make a pie chart of product categories"

What would you like to visualize today?`

const dataReply = `I can work with various types of data:

Sample data (built-in):
  - Sales data by quarter
  - Time series data
  - Customer analytics
  - Product categories

Your data:
  - Load CSV, TSV or XLSX files with /upload <path>
  - Use /columns to see which quick charts fit your file
  - Use /summary for row counts, missing values and column statistics

Supported formats:
  - CSV files with headers
  - Tab-separated values
  - Excel workbooks (first sheet)

Would you like me to create a chart with sample data, or do you have specific data to visualize?`

const greetingReply = `Hello! I'm your data visualization assistant. I can help you create beautiful, interactive charts and graphs.

Quick start:
  - Say "show me a bar chart" to see a sample visualization
  - Type "help" for more detailed instructions
  - Load a CSV file with /upload <path> to visualize your own data

Popular chart types:
  - Bar charts for comparisons
  - Line graphs for trends over time
  - Scatter plots for relationships
  - Pie charts for proportions
  - Histograms for distributions

What kind of visualization would you like to create?`

const commandHelp = `Available commands:
  /quit, /exit          - Exit
  /new-session          - Start a new session
  /upload <path>        - Load a CSV, TSV or XLSX file
  /columns              - Show column kinds and quick chart availability
  /summary              - Describe the uploaded data
  /quick <type>         - Chart the uploaded data
  /sample <type>        - Chart sample data
  /history              - List charts created in this session
  /replay <n>           - Re-create chart n from the history
  /auto on|off          - Toggle chart creation for chart requests
  /scheme <name>        - Set the color scheme (plotly, viridis, pastel)
  /sessions             - List saved sessions
  /clear                - Clear messages and chart history
  /help                 - Show this help message`

// cannedReply answers messages that do not produce a chart
func cannedReply(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "help"):
		return helpReply
	case strings.Contains(lower, "data"):
		return dataReply
	default:
		return greetingReply
	}
}

func sampleTitle(t chart.Type) string {
	return t.Title() + " Chart - Sample Data"
}

func sampleReply(info ChartInfo) string {
	return fmt.Sprintf(`I've created a sample %s chart for you!

Chart details:
  - Type: %s
  - Data points: %d rows
  - Columns: [%s]
  - Saved to: %s

To use your own data, load a file with /upload <path> and try /quick %s.
This chart uses sample data for demonstration.`,
		info.Spec.Type, info.Spec.Type.Title(), info.Rows, strings.Join(info.Columns, ", "), info.Path, info.Spec.Type)
}

func uploadReply(info DataInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File uploaded: %s\n", info.Name)
	fmt.Fprintf(&b, "Shape: %d rows x %d columns\n", info.Rows, len(info.Columns))
	fmt.Fprintf(&b, "Columns: [%s]\n", strings.Join(info.Columns, ", "))
	b.WriteString(quickChartsText(info.QuickCharts))
	return b.String()
}

func columnsReply(info DataInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", info.Name)
	fmt.Fprintf(&b, "  numeric:     %s\n", orNone(info.Schema.Numeric))
	fmt.Fprintf(&b, "  categorical: %s\n", orNone(info.Schema.Categorical))
	fmt.Fprintf(&b, "  temporal:    %s\n", orNone(info.Schema.Temporal))
	b.WriteString(quickChartsText(info.QuickCharts))
	return b.String()
}

func quickChartsText(quick []chart.QuickChart) string {
	var on, off []string
	for _, q := range quick {
		if q.Enabled {
			on = append(on, string(q.Type))
		} else {
			off = append(off, string(q.Type))
		}
	}
	text := fmt.Sprintf("Quick charts: %s", orNone(on))
	if len(off) > 0 {
		text += fmt.Sprintf(" (unavailable: %s)", strings.Join(off, ", "))
	}
	return text
}

func summaryReply(name string, s dataset.Summary, order []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d rows, %d columns (%d numeric, %d categorical), %d duplicate rows\n",
		name, s.Rows, s.Columns, s.Numeric, s.Categorical, s.DuplicateRows)
	for _, col := range order {
		fmt.Fprintf(&b, "  %s: %d missing", col, s.NullCounts[col])
		if st, ok := s.Stats[col]; ok {
			fmt.Fprintf(&b, ", mean %.2f, std %.2f, min %.2f, max %.2f", st.Mean, st.Std, st.Min, st.Max)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func unavailableReply(ue *chart.UnavailableError, name string) string {
	return fmt.Sprintf("A %s chart needs at least %d numeric and %d categorical columns, but %s has %d numeric and %d categorical.",
		ue.Type, ue.Need.Numeric, ue.Need.Categorical, name, ue.Have.Numeric, ue.Have.Categorical)
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
