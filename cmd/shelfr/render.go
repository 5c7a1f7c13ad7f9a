package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"shelfr/internal/importer"
	"shelfr/internal/preflight"
)

func renderSummary(w io.Writer, summary importer.Summary) string {
	colorize := shouldColorize(w)

	rows := make([][]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		detail := result.Reason
		if result.Err != nil {
			detail = result.Err.Error()
		}
		rows = append(rows, []string{
			filepath.Base(result.Source),
			result.ASIN,
			statusLabel(result.Status, colorize),
			detail,
		})
	}

	var b strings.Builder
	if summary.DryRun {
		b.WriteString("Dry run: no files were changed.\n")
	}
	b.WriteString(renderTable(
		[]string{"Candidate", "ASIN", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))
	b.WriteString(fmt.Sprintf("\n%d placed, %d replaced, %d kept both, %d skipped, %d quarantined, %d failed",
		summary.Count(importer.StatusPlaced),
		summary.Count(importer.StatusReplaced),
		summary.Count(importer.StatusKeptBoth),
		summary.Count(importer.StatusSkipped),
		summary.Count(importer.StatusQuarantined),
		summary.Count(importer.StatusFailed)))
	return b.String()
}

func statusLabel(status importer.Status, colorize bool) string {
	label := string(status)
	if !colorize {
		return label
	}
	switch status {
	case importer.StatusPlaced, importer.StatusReplaced, importer.StatusKeptBoth:
		return text.FgGreen.Sprint(label)
	case importer.StatusSkipped, importer.StatusQuarantined:
		return text.FgYellow.Sprint(label)
	case importer.StatusFailed:
		return text.FgRed.Sprint(label)
	default:
		return label
	}
}

func renderChecks(checks []preflight.Result) string {
	rows := make([][]string, 0, len(checks))
	for _, check := range checks {
		state := "FAIL"
		if check.Passed {
			state = "OK"
		} else if check.Optional {
			state = "WARN"
		}
		rows = append(rows, []string{check.Name, state, check.Detail})
	}
	return renderTable(
		[]string{"Check", "State", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
