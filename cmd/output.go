package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// formatMoney renders a rupee amount with digit grouping, e.g. "Rs.12,500".
func formatMoney(amount float64) string {
	return moneyPrinter.Sprintf("Rs.%d", int64(amount+0.5))
}

// outputRows renders tabular command output as a terminal table, CSV, or
// an XLSX workbook. XLSX always needs an output path; the other formats
// fall back to stdout when none is given.
func outputRows(format, outputPath, sheet string, header []string, rows [][]string) error {
	if format == "xlsx" {
		if outputPath == "" {
			return eris.New("output: xlsx format requires --output")
		}
		return writeXLSX(outputPath, sheet, header, rows)
	}

	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "output: create file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "csv":
		return writeCSVRows(w, header, rows)
	case "table":
		return writeTableRows(w, header, rows)
	default:
		return eris.Errorf("output: unsupported format %q", format)
	}
}

func writeCSVRows(w *os.File, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "output: write CSV header")
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "output: write CSV row")
		}
	}
	return nil
}

func writeTableRows(w *os.File, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeLine := func(cells []string) error {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteByte('\n')
		_, err := fmt.Fprint(w, b.String())
		return err
	}

	if err := writeLine(header); err != nil {
		return eris.Wrap(err, "output: write table header")
	}
	var total int
	for _, width := range widths {
		total += width + 2
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", total)); err != nil {
		return eris.Wrap(err, "output: write table separator")
	}
	for _, row := range rows {
		if err := writeLine(row); err != nil {
			return eris.Wrap(err, "output: write table row")
		}
	}
	return nil
}

func writeXLSX(path, sheet string, header []string, rows [][]string) error {
	f := xlsx.NewFile()
	sh, err := f.AddSheet(sheet)
	if err != nil {
		return eris.Wrap(err, "output: add xlsx sheet")
	}

	hr := sh.AddRow()
	for _, h := range header {
		hr.AddCell().Value = h
	}
	for _, row := range rows {
		r := sh.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "output: save xlsx file %s", path)
	}
	return nil
}
