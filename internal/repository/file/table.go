// Package file reads timesheets and the employee roster from CSV or XLSX
// exports and writes branch-month rates to CSV.
package file

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumn     = errors.New("required column missing")
	ErrEmptyFile         = errors.New("file has no header row")
)

// readTable returns every row of the file, header included.
func readTable(path string) ([][]string, error) {
	switch {
	case strings.EqualFold(filepath.Ext(path), ".csv"):
		return readCSV(path)
	case isSpreadsheet(path):
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func isSpreadsheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// readXLSX reads the first sheet of the workbook. Cells are read raw, so
// dates and times arrive as serial numbers whatever their display format.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", ErrEmptyFile, path)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

// header maps canonical column names to their position in a row.
type header map[string]int

// newHeader resolves each canonical column against its accepted spellings.
func newHeader(row []string, columns map[string][]string) (header, error) {
	positions := make(map[string]int, len(row))
	for i, name := range row {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	h := make(header, len(columns))
	var missing []string
	for canonical, aliases := range columns {
		found := false
		for _, alias := range aliases {
			if i, ok := positions[alias]; ok {
				h[canonical] = i
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, canonical)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return h, nil
}

// get returns the cell of the named column. Spreadsheet readers drop
// trailing empty cells, so short rows read as empty.
func (h header) get(row []string, column string) string {
	i := h[column]
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// serialDate converts a spreadsheet serial date to YYYY-MM-DD. Cells that
// are not serial numbers are returned unchanged.
func serialDate(cell string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || serial < 1 {
		return cell
	}
	t, err := excelize.ExcelDateToTime(math.Floor(serial), false)
	if err != nil {
		return cell
	}
	return t.Format(time.DateOnly)
}

// serialClock converts a spreadsheet serial time, or the time part of a
// serial date-time, to HH:MM:SS. Cells that are not serial numbers are
// returned unchanged.
func serialClock(cell string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || serial < 0 {
		return cell
	}
	_, frac := math.Modf(serial)
	offset := time.Duration(math.Round(frac*86400)) * time.Second
	return time.Time{}.Add(offset).Format(time.TimeOnly)
}
