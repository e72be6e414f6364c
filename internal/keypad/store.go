package keypad

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"picking/internal/pkg/errs"
)

// pickingFileHeader is the column set of a local picking file. It mirrors the
// item fields served by the API exactly, so a pull/edit/push round-trip loses
// nothing.
var pickingFileHeader = []string{
	"id",
	"location",
	"item_code",
	"description",
	"total_quantity",
	"unit_of_measure",
	"total_needed",
	"total_issued",
	"picked_quantity",
	"picked_at",
}

// PickingFilePath returns the local file path for a picking inside dir.
func PickingFilePath(dir string, id int64) string {
	return filepath.Join(dir, fmt.Sprintf("picking_%d.csv", id))
}

// SavePickingFile writes a pulled picking to a local CSV file the operator
// can edit offline. The parent directory is created if missing.
func SavePickingFile(dir string, picking Picking) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := PickingFilePath(dir, picking.ID)
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err = writer.Write(pickingFileHeader); err != nil {
		return "", err
	}

	for _, item := range picking.OrderItems {
		record := []string{
			item.ID,
			item.Location,
			item.ItemCode,
			item.Description,
			item.TotalQuantity,
			item.UnitOfMeasure,
			item.TotalNeeded,
			item.TotalIssued,
			deref(item.PickedQuantity),
			deref(item.PickedAt),
		}
		if err = writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	return path, writer.Error()
}

// ReadPickingFile parses an edited local picking file back into update
// records. Blank picked_quantity cells become records without a quantity,
// which the server treats as no-ops; blank picked_at cells leave the
// timestamp to the server clock.
func ReadPickingFile(path string) ([]UpdateRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(pickingFileHeader)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse %s: %w", path,
			errs.NewValueIsRequiredError("header row"))
	}

	records := make([]UpdateRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := UpdateRecord{ID: strings.TrimSpace(row[0])}

		if qty := strings.TrimSpace(row[8]); qty != "" {
			record.PickedQuantity = &qty
		}
		if at := strings.TrimSpace(row[9]); at != "" {
			record.PickedAt = &at
		}

		records = append(records, record)
	}

	return records, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
