package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ReadCSV loads a run file into a frame. Ragged rows are tolerated: short
// rows are padded with empty cells, cells beyond the header are dropped. An
// empty file yields a zero-row frame with no columns.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open run: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return NewFrame(nil, nil), nil
	}
	return NewFrame(records[0], records[1:]), nil
}

// WriteCSV persists the frame: original columns first, derived columns after,
// one header row. Invalid derived values become empty cells.
func WriteCSV(frame *Frame, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	derivedNames := frame.DerivedNames()
	header := append(append([]string{}, frame.Columns...), derivedNames...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < frame.Len(); i++ {
		row := make([]string, 0, len(header))
		raw := frame.Rows[i]
		for j := range frame.Columns {
			if j < len(raw) {
				row = append(row, raw[j])
			} else {
				row = append(row, "")
			}
		}
		for _, name := range derivedNames {
			values, _ := frame.Derived(name)
			if i < len(values) {
				row = append(row, values[i].String())
			} else {
				row = append(row, "")
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return file.Close()
}
