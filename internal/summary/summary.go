package summary

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"torquelab/internal/telemetry"
)

// FileName is the summary artifact's name under the output root.
const FileName = "summary.csv"

// Record summarizes one processed run. Median and max ignore undefined
// torque samples; when every sample is undefined they are undefined too and
// serialize as empty cells.
type Record struct {
	Pilot          string
	File           string // input path relative to the input root
	OutCSV         string // normalized CSV path relative to the output root
	TorqueMedianNm telemetry.Float
	TorqueMaxNm    telemetry.Float
}

// NewRecord folds a normalized torque column into a summary record.
func NewRecord(pilot, file, outCSV string, torque []telemetry.Float) Record {
	return Record{
		Pilot:          pilot,
		File:           file,
		OutCSV:         outCSV,
		TorqueMedianNm: telemetry.Median(torque),
		TorqueMaxNm:    telemetry.Max(torque),
	}
}

var header = []string{"pilot", "file", "out_csv", "torque_median_nm", "torque_max_nm"}

// Write persists records to path in the order given.
func Write(records []Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create summary directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.Pilot,
			record.File,
			record.OutCSV,
			record.TorqueMedianNm.String(),
			record.TorqueMaxNm.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush summary: %w", err)
	}
	return file.Close()
}

// Read loads a previously written summary, tolerating ragged rows.
func Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open summary: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := Record{}
		if len(row) > 0 {
			record.Pilot = row[0]
		}
		if len(row) > 1 {
			record.File = row[1]
		}
		if len(row) > 2 {
			record.OutCSV = row[2]
		}
		if len(row) > 3 {
			record.TorqueMedianNm = telemetry.ParseFloat(row[3])
		}
		if len(row) > 4 {
			record.TorqueMaxNm = telemetry.ParseFloat(row[4])
		}
		records = append(records, record)
	}
	return records, nil
}
