package commands

import (
	"errors"

	"picking/internal/pkg/guard"
)

var ErrImportOrdersCommandIsNotConstructed = errors.New(
	"ImportOrdersCommand must be created via NewImportOrdersCommand constructor",
)

// ImportOrdersCommand asks the service to scan the bulk-load source and
// ingest every order not yet stored. This is a parameterless command: the
// source itself knows what it offers.
type ImportOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewImportOrdersCommand creates a command to ingest new orders from the
// bulk-load source.
func NewImportOrdersCommand() ImportOrdersCommand {
	return ImportOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
// Returns ErrImportOrdersCommandIsNotConstructed if validation fails.
func (c ImportOrdersCommand) Validate() error {
	return c.guard.Validate(ErrImportOrdersCommandIsNotConstructed)
}
