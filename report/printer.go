package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devlights/gomy/output"
	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/execution/accounting"
	"github.com/ryogrid/SamehadaSMJ/samehada"
	"github.com/ryogrid/SamehadaSMJ/samehada/samehada_util"
)

// FormatJoinSummary makes the lines PrintJoinSummary prints.
// failed joins are not included.
func FormatJoinSummary(results []*samehada.JoinResult) []string {
	lines := make([]string, 0, len(results)*3+3)
	total := accounting.Stats{}
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("=== %s ===", result.Name))
		lines = append(lines, fmt.Sprintf("Pages: %d, IOs: %d, Tuples: %d", result.Stats.PagesCount, result.Stats.IOCount, result.Stats.TuplesCount))
		lines = append(lines, "")
		total = total.Add(result.Stats)
	}
	lines = append(lines, "=== GENERAL RESUME ===")
	lines = append(lines, fmt.Sprintf("Total - Pages: %d, IOs: %d, Tuples: %d", total.PagesCount, total.IOCount, total.TuplesCount))
	lines = append(lines, "")
	return lines
}

func PrintJoinSummary(results []*samehada.JoinResult) {
	for _, line := range FormatJoinSummary(results) {
		output.Stdoutl(line)
	}
}

// SaveTuplesToFile writes rows of result as csv. header is the union of
// column names in name order and absent columns are empty.
// nothing is written when result has no rows (saved is false).
// the file is removed when writing fails.
func SaveTuplesToFile(result *samehada.JoinResult, filePath string) (saved bool, err error) {
	if len(result.Rows) == 0 {
		output.Stdoutl("No result tuples to save.")
		return false, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
			saved = false
		}
		if err != nil {
			if rerr := os.Remove(filePath); rerr != nil {
				common.ShPrintf(common.WARN, "Warning: Could not remove %s: %v\n", filePath, rerr)
			}
		}
	}()

	columns := result.Columns()
	w := csv.NewWriter(f)
	if err = w.Write(columns); err != nil {
		return false, err
	}
	for _, row := range result.Rows {
		if err = w.Write(row.ValuesOf(columns)); err != nil {
			return false, err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return false, err
	}
	output.Stdoutl(fmt.Sprintf("Result tuples saved to %s", filePath))
	return true, nil
}

// SaveResults writes each successful join to outDir/<join name>.csv.
// a failed write does not stop the others. all failures are returned together.
func SaveResults(results []*samehada.JoinResult, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	var errs []error
	for _, result := range results {
		if result.Err != nil {
			common.ShPrintf(common.WARN, "Warning: %s is not saved because it failed.\n", result.Name)
			continue
		}
		path := filepath.Join(outDir, samehada_util.ResultFileName(result.Name))
		if _, err := SaveTuplesToFile(result, path); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", result.Name, err))
		}
	}
	return errors.Join(errs...)
}
