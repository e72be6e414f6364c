package queries_test

import (
	"context"
	"testing"
	"time"

	"picking/internal/adapters/out/postgres/orderrepo"
	"picking/internal/core/application/usecases/queries"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/order"
	"picking/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ExistingOrder_ReturnsFullReadModel() {
	pickedAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	stored := suite.storeOrder(7, pickedAt)

	query, err := queries.NewGetOrderQuery(7)
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(int64(7), resp.ID)
	suite.Equal("started", resp.Status)
	suite.Require().Len(resp.Items, 3)

	// items come back in file order
	for i, item := range resp.Items {
		original := stored.Items()[i]
		suite.True(item.ID.IsEqual(original.ID()))
		suite.Equal(original.Location(), item.Location)
		suite.Equal(original.ItemCode(), item.ItemCode)
		suite.Equal(original.Description(), item.Description)
		suite.Equal(original.UnitOfMeasure(), item.UnitOfMeasure)
		suite.True(item.TotalQuantity.IsEqual(original.TotalQuantity()))
		suite.True(item.TotalNeeded.IsEqual(original.TotalNeeded()))
		suite.True(item.TotalIssued.IsEqual(original.TotalIssued()))
	}

	// only the first item carries pick state
	suite.Require().NotNil(resp.Items[0].PickedQuantity)
	suite.Equal("2.5", resp.Items[0].PickedQuantity.String())
	suite.Require().NotNil(resp.Items[0].PickedAt)
	suite.True(resp.Items[0].PickedAt.Equal(pickedAt))
	suite.Nil(resp.Items[1].PickedQuantity)
	suite.Nil(resp.Items[1].PickedAt)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderQuery(404)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery constructor")
}

// storeOrder persists a started order with three items, the first of which has
// a recorded pick.
func (suite *GetOrderQueryHandlerTestSuite) storeOrder(id int64, pickedAt time.Time) *order.Order {
	total, err := kernel.ParseQuantity("4")
	suite.Require().NoError(err)
	picked, err := kernel.ParseQuantity("2.5")
	suite.Require().NoError(err)

	items := make([]*order.Item, 0, 3)

	first, err := order.RestoreItem(kernel.NewUUID(), id,
		"A-01-02", "100-200", "hex bolt M8", "pcs", total, total, total, &picked, &pickedAt)
	suite.Require().NoError(err)
	items = append(items, first)

	for _, code := range []string{"100-201", "100-202"} {
		item, itemErr := order.NewItem(kernel.NewUUID(), id,
			"B-03-04", code, "washer M8", "pcs", total, total, total)
		suite.Require().NoError(itemErr)
		items = append(items, item)
	}

	o, err := order.RestoreOrder(id, order.Started, items)
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)
	return o
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
