package commands

import (
	"context"
	"errors"
	"fmt"

	"picking/internal/core/ports"
	"picking/internal/pkg/errs"
)

var ErrImportOrdersCommandHandlerIsNotConstructed = errors.New(
	"ImportOrdersCommandHandler must be created via NewImportOrdersCommandHandler constructor",
)

// ImportOrdersCommandHandler ingests orders from the bulk-load source.
//
// Every order the source offers is checked against the store first: ids that
// are already present are skipped, so re-running the import (at startup and on
// the rescan schedule) is idempotent and never touches pick progress recorded
// since the first load. Each new order is loaded and stored in its own unit
// of work, so one malformed file does not block the rest of the batch.
type ImportOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	source     ports.OrderSource
}

// NewImportOrdersCommandHandler creates a handler for order ingestion.
// Requires an OrderUoWFactory for persistence and an OrderSource to read from.
func NewImportOrdersCommandHandler(
	uowFactory OrderUoWFactory, source ports.OrderSource,
) (ImportOrdersCommandHandler, error) {
	if uowFactory == nil {
		return ImportOrdersCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if source == nil {
		return ImportOrdersCommandHandler{}, errs.NewValueIsRequiredError("source")
	}

	return ImportOrdersCommandHandler{
		uowFactory: uowFactory,
		source:     source,
	}, nil
}

// Handle scans the source and stores every order that is not yet present.
// Returns the number of orders actually imported.
func (h ImportOrdersCommandHandler) Handle(ctx context.Context, cmd ImportOrdersCommand) (int, error) {
	if h.uowFactory == nil || h.source == nil {
		return 0, ErrImportOrdersCommandHandlerIsNotConstructed
	}
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.source.ListOrderIDs(ctx)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, id := range ids {
		stored, err := h.importOrder(ctx, id)
		if err != nil {
			return imported, fmt.Errorf("import order %d: %w", id, err)
		}
		if stored {
			imported++
		}
	}

	return imported, nil
}

func (h ImportOrdersCommandHandler) importOrder(ctx context.Context, id int64) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	exists, err := repo.Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	aggregate, err := h.source.LoadOrder(ctx, id)
	if err != nil {
		return false, err
	}

	if err = repo.Add(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
