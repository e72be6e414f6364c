// Package csvdir implements the bulk-ingestion order source over a directory
// of delimited files dropped by the warehouse management export. Each file is
// named order_<id>.csv and carries one header row followed by one row per
// order line.
package csvdir

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/order"
	"picking/internal/pkg/errs"
)

const (
	filePrefix = "order_"
	fileSuffix = ".csv"
)

// column layout of the export files
const (
	colLocation = iota
	colItemCode
	colDescription
	colTotalQuantity
	colUnitOfMeasure
	colTotalNeeded
	colTotalIssued
	columnCount
)

// Loader implements ports.OrderSource over a single flat directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader reading from the given directory. The directory
// must exist.
func NewLoader(dir string) (*Loader, error) {
	if dir == "" {
		return nil, errs.NewValueIsRequiredError("dir")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("dir", err)
	}
	if !info.IsDir() {
		return nil, errs.NewValueIsInvalidErrorWithCause("dir",
			fmt.Errorf("%s is not a directory", dir))
	}

	return &Loader{dir: dir}, nil
}

// ListOrderIDs scans the directory and returns the id of every order file
// found, sorted ascending. Files whose names do not match the order_<id>.csv
// pattern are ignored.
func (l *Loader) ListOrderIDs(_ context.Context) ([]int64, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := orderIDFromFilename(entry.Name())
		if !ok {
			continue
		}
		ids = append(ids, id)
	}

	slices.Sort(ids)
	return ids, nil
}

// LoadOrder reads and parses one order file into a NotStarted aggregate.
// Item ids are assigned here; rows keep their file order.
func (l *Loader) LoadOrder(_ context.Context, id int64) (*order.Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not greater than 0", id))
	}

	path := filepath.Join(l.dir, fmt.Sprintf("%s%d%s", filePrefix, id, fileSuffix))
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NewObjectNotFoundErrorWithCause("order file", id, err)
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = columnCount

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: %w", path,
			errs.NewValueIsRequiredError("header row"))
	}

	// first row is the header
	items := make([]*order.Item, 0, len(records)-1)
	for rowNum, record := range records[1:] {
		item, rowErr := itemFromRecord(id, record)
		if rowErr != nil {
			return nil, fmt.Errorf("parse %s row %d: %w", path, rowNum+2, rowErr)
		}
		items = append(items, item)
	}

	return order.NewOrder(id, items)
}

func itemFromRecord(orderID int64, record []string) (*order.Item, error) {
	totalQuantity, err := kernel.ParseQuantity(record[colTotalQuantity])
	if err != nil {
		return nil, err
	}
	totalNeeded, err := kernel.ParseQuantity(record[colTotalNeeded])
	if err != nil {
		return nil, err
	}
	totalIssued, err := kernel.ParseQuantity(record[colTotalIssued])
	if err != nil {
		return nil, err
	}

	return order.NewItem(kernel.NewUUID(), orderID,
		strings.TrimSpace(record[colLocation]),
		strings.TrimSpace(record[colItemCode]),
		strings.TrimSpace(record[colDescription]),
		strings.TrimSpace(record[colUnitOfMeasure]),
		totalQuantity, totalNeeded, totalIssued)
}

func orderIDFromFilename(name string) (int64, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return 0, false
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
