// Package http exposes the picking API consumed by handheld clients:
// listing open orders, pulling one order in full, and pushing batched pick
// updates back.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/application/usecases/queries"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/order"
	"picking/internal/core/domain/services"
	"picking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handler interfaces consumed by the server. The application layer's concrete
// command and query handlers satisfy these.
type (
	// UpdateOrderHandler processes a pick update batch for one order.
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}

	// GetOpenOrdersHandler lists orders still open for picking.
	GetOpenOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error)
	}

	// GetOrderHandler returns one order with its items.
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	updateOrderHandler UpdateOrderHandler

	getOpenOrdersHandler GetOpenOrdersHandler
	getOrderHandler      GetOrderHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	updateOrderHandler UpdateOrderHandler,
	getOpenOrdersHandler GetOpenOrdersHandler,
	getOrderHandler GetOrderHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		updateOrderHandler:   updateOrderHandler,
		getOpenOrdersHandler: getOpenOrdersHandler,
		getOrderHandler:      getOrderHandler,
		logger:               logger.With("component", "http"),
	}
}

// RegisterRoutes attaches the picking API routes to the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/picking", s.GetOpenOrders)
	e.GET("/api/picking/:id", s.GetOrder)
	e.PUT("/api/picking/:id", s.UpdateOrder)
}

// GetOpenOrders handles GET /api/picking - lists every order still open for
// picking.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.Error("open order listing failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:     o.ID,
			Status: o.Status,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/picking/:id - returns one order with its full
// item list.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := orderIDParam(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		s.logger.Error("order lookup failed", "order_id", id, "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, orderFromQueryResponse(resp))
}

// UpdateOrder handles PUT /api/picking/:id - reconciles a batch of pick
// updates and optionally finishes the order.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	id, err := orderIDParam(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	finishRequest := req.Status != nil && *req.Status == order.Finished.String()
	updates := s.parseUpdates(id, req.OrderItems)

	cmd, err := commands.NewUpdateOrderCommand(id, updates, finishRequest)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid update data: " + err.Error(),
		})
	}

	snapshot, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, order.ErrOrderAlreadyFinished):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Order is already finished",
		})
	case errors.Is(err, order.ErrOrderIncomplete):
		// the pick batch is committed even though the finish was rejected
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Order has items without a picked quantity",
		})
	case err != nil:
		s.logger.Error("order update failed", "order_id", id, "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update order",
		})
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(snapshot))
}

// parseUpdates converts wire records into domain pick updates. A malformed
// record loses only itself: it is logged and dropped so the rest of the batch
// still lands.
func (s *Server) parseUpdates(orderID int64, records []UpdateOrderItemRecord) []services.PickUpdate {
	updates := make([]services.PickUpdate, 0, len(records))
	for _, record := range records {
		itemID, err := kernel.UUIDFromString(record.ID)
		if err != nil {
			s.logger.Warn("dropping update record with bad item id",
				"order_id", orderID, "item_id", record.ID, "error", err)
			continue
		}

		update := services.PickUpdate{ItemID: itemID}

		if record.PickedQuantity != nil {
			qty, qtyErr := kernel.ParseQuantity(*record.PickedQuantity)
			if qtyErr != nil {
				s.logger.Warn("dropping update record with bad picked quantity",
					"order_id", orderID, "item_id", record.ID, "error", qtyErr)
				continue
			}
			update.Quantity = &qty
		}

		if record.PickedAt != nil {
			at, atErr := kernel.ParsePickTime(*record.PickedAt)
			if atErr != nil {
				s.logger.Warn("dropping update record with bad picked_at",
					"order_id", orderID, "item_id", record.ID, "error", atErr)
				continue
			}
			update.PickedAt = &at
		}

		updates = append(updates, update)
	}

	return updates
}

func orderIDParam(ctx echo.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("id"), 10, 64)
}
