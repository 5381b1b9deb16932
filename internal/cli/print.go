package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/headline-goat/abtest/internal/stats"
)

func writeReport(w io.Writer, r *stats.Report, format string) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	}
	return writeReportText(w, r)
}

func writeReportText(w io.Writer, r *stats.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", r.Title)
	fmt.Fprintln(&b, r.NullHypothesis)
	fmt.Fprintln(&b, r.AlternativeHypothesis)
	fmt.Fprintln(&b)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tSIZE\tVALUE\tINTERVAL")
	for _, g := range r.Groups {
		interval := "-"
		if g.ConfInt != nil {
			interval = fmt.Sprintf("[%.2f%%, %.2f%%]", g.ConfInt.Low*100, g.ConfInt.High*100)
		}
		value := strconv.FormatFloat(g.Value, 'f', 3, 64)
		if g.ConfInt != nil {
			value = formatPercent(g.Value)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", g.Name, g.Size, value, interval)
	}
	tw.Flush()
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Results:")
	fmt.Fprintln(&b)
	if r.DoF > 0 {
		fmt.Fprintf(&b, "%s: %0.3f, dof: %g, p_value: %0.3f %s\n", r.StatName, r.Statistic, r.DoF, r.PValue, r.Stars)
	} else {
		fmt.Fprintf(&b, "%s: %0.3f, p_value: %0.3f %s\n", r.StatName, r.Statistic, r.PValue, r.Stars)
	}
	fmt.Fprintf(&b, "Critical value: %0.3f\n", r.CriticalValue)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "=> %s\n", r.Conclusion)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Observed diff: %0.3f , relative diff %0.3f\n", r.Diff, r.RelativeDiff)
	fmt.Fprintf(&b, "%s percent confidence interval (relative change): [ %0.3f , %0.3f ]\n",
		strconv.FormatFloat((1-r.Significance)*100, 'g', 4, 64), r.ConfInt.Low, r.ConfInt.High)

	_, err := io.WriteString(w, b.String())
	return err
}

func formatPercent(rate float64) string {
	if rate == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", rate*100)
}
