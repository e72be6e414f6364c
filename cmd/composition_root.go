package cmd

import (
	"picking/internal/adapters/out/csvdir"
	"picking/internal/adapters/out/postgres"
	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/application/usecases/queries"
	"picking/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	orderSource ports.OrderSource
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	orderSource, err := csvdir.NewLoader(config.OrdersDir)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		orderSource: orderSource,
	}, nil
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateImportOrdersCommandHandler() (commands.ImportOrdersCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportOrdersCommandHandler(f, c.orderSource)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
