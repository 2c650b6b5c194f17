// Package http exposes the order lifecycle operations over HTTP.
//
// Every request is tenant scoped: the owning tenant comes from the
// X-Tenant-ID header and the acting operator from X-Actor. Domain errors
// map onto HTTP statuses through their sentinel classification.
package http

import (
	"errors"
	"net/http"
	"time"

	"cleanmatex/internal/core/application/usecases/commands"
	"cleanmatex/internal/core/application/usecases/queries"
	"cleanmatex/internal/core/domain/model/kernel"
	"cleanmatex/internal/core/domain/model/order"
	"cleanmatex/internal/core/domain/services"
	"cleanmatex/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerTenantID = "X-Tenant-ID"
	headerActor    = "X-Actor"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	changeStatusHandler     commands.ChangeStatusCommandHandler
	bulkChangeStatusHandler commands.BulkChangeStatusCommandHandler
	splitByPiecesHandler    commands.SplitOrderByPiecesCommandHandler
	splitItemsHandler       commands.SplitOrderItemsCommandHandler
	updatePieceHandler      commands.UpdatePieceCommandHandler
	batchUpdateHandler      commands.BatchUpdatePiecesCommandHandler
	deletePieceHandler      commands.DeletePieceCommandHandler
	syncReadyHandler        commands.SyncQuantityReadyCommandHandler
	markItemHandler         commands.MarkItemCompleteCommandHandler
	createIssueHandler      commands.CreateIssueCommandHandler
	resolveIssueHandler     commands.ResolveIssueCommandHandler

	// Query handlers
	getOrderStateHandler    queries.GetOrderStateQueryHandler
	getOverdueOrdersHandler queries.GetOverdueOrdersQueryHandler
}

// ServerParams bundles the handlers the server dispatches to.
type ServerParams struct {
	CreateOrder      commands.CreateOrderCommandHandler
	ChangeStatus     commands.ChangeStatusCommandHandler
	BulkChangeStatus commands.BulkChangeStatusCommandHandler
	SplitByPieces    commands.SplitOrderByPiecesCommandHandler
	SplitItems       commands.SplitOrderItemsCommandHandler
	UpdatePiece      commands.UpdatePieceCommandHandler
	BatchUpdate      commands.BatchUpdatePiecesCommandHandler
	DeletePiece      commands.DeletePieceCommandHandler
	SyncReady        commands.SyncQuantityReadyCommandHandler
	MarkItemComplete commands.MarkItemCompleteCommandHandler
	CreateIssue      commands.CreateIssueCommandHandler
	ResolveIssue     commands.ResolveIssueCommandHandler
	GetOrderState    queries.GetOrderStateQueryHandler
	GetOverdueOrders queries.GetOverdueOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(params ServerParams) *Server {
	return &Server{
		createOrderHandler:      params.CreateOrder,
		changeStatusHandler:     params.ChangeStatus,
		bulkChangeStatusHandler: params.BulkChangeStatus,
		splitByPiecesHandler:    params.SplitByPieces,
		splitItemsHandler:       params.SplitItems,
		updatePieceHandler:      params.UpdatePiece,
		batchUpdateHandler:      params.BatchUpdate,
		deletePieceHandler:      params.DeletePiece,
		syncReadyHandler:        params.SyncReady,
		markItemHandler:         params.MarkItemComplete,
		createIssueHandler:      params.CreateIssue,
		resolveIssueHandler:     params.ResolveIssue,
		getOrderStateHandler:    params.GetOrderState,
		getOverdueOrdersHandler: params.GetOverdueOrders,
	}
}

// RegisterRoutes attaches all handlers under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/overdue", s.GetOverdueOrders)
	v1.GET("/orders/:order_id/state", s.GetOrderState)
	v1.POST("/orders/:order_id/status", s.ChangeStatus)
	v1.POST("/orders/status", s.BulkChangeStatus)
	v1.POST("/orders/:order_id/split/pieces", s.SplitOrderByPieces)
	v1.POST("/orders/:order_id/split/items", s.SplitOrderItems)
	v1.POST("/orders/:order_id/items/:item_id/complete", s.MarkItemComplete)
	v1.POST("/orders/:order_id/items/:item_id/sync-ready", s.SyncQuantityReady)

	v1.PATCH("/pieces/:piece_id", s.UpdatePiece)
	v1.DELETE("/pieces/:piece_id", s.DeletePiece)
	v1.POST("/pieces/batch", s.BatchUpdatePieces)

	v1.POST("/issues", s.CreateIssue)
	v1.POST("/issues/:issue_id/resolve", s.ResolveIssue)
}

type errorResponse struct {
	Code     int      `json:"code"`
	Message  string   `json:"message"`
	Blockers []string `json:"blockers,omitempty"`
}

type pieceAttributesPayload struct {
	Color string `json:"color"`
	Brand string `json:"brand"`
	Note  string `json:"note"`
}

type createOrderItemPayload struct {
	ProductID     string                   `json:"product_id"`
	Quantity      int                      `json:"quantity"`
	Attributes    pieceAttributesPayload   `json:"attributes"`
	PerPieceAttrs []pieceAttributesPayload `json:"per_piece_attributes"`
}

type createOrderRequest struct {
	CustomerID        string                   `json:"customer_id"`
	BranchID          string                   `json:"branch_id"`
	QuickDrop         bool                     `json:"quick_drop"`
	QuickDropQuantity int                      `json:"quick_drop_quantity"`
	Express           bool                     `json:"express"`
	ReadyBy           *time.Time               `json:"ready_by"`
	Items             []createOrderItemPayload `json:"items"`
}

type createOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := parseUUID("customer id", request.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}
	branchID, err := parseUUID("branch id", request.BranchID)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.CreateOrderItem, 0, len(request.Items))
	for _, payload := range request.Items {
		productID, err := parseUUID("product id", payload.ProductID)
		if err != nil {
			return writeError(ctx, err)
		}
		items = append(items, commands.CreateOrderItem{
			ProductID:     productID,
			Quantity:      payload.Quantity,
			BaseAttrs:     attributesFromPayload(payload.Attributes),
			PerPieceAttrs: attributesSliceFromPayload(payload.PerPieceAttrs),
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		tenantID, orderID, customerID, branchID,
		request.QuickDrop, request.QuickDropQuantity, request.Express,
		request.ReadyBy, actorFromRequest(ctx), items,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID.String()})
}

type orderStateResponse struct {
	OrderID     string   `json:"order_id"`
	Number      string   `json:"number"`
	Status      string   `json:"status"`
	Stage       string   `json:"stage"`
	AllowedNext []string `json:"allowed_next"`
	Blockers    []string `json:"blockers"`
	HasIssue    bool     `json:"has_issue"`
}

// GetOrderState handles GET /api/v1/orders/:order_id/state.
func (s *Server) GetOrderState(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	orderID, err := parseUUID("order id", ctx.Param("order_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderStateQuery(tenantID, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	state, err := s.getOrderStateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	allowed := make([]string, 0, len(state.AllowedNext))
	for _, status := range state.AllowedNext {
		allowed = append(allowed, status.String())
	}

	return ctx.JSON(http.StatusOK, orderStateResponse{
		OrderID:     state.OrderID.String(),
		Number:      state.Number,
		Status:      state.Status.String(),
		Stage:       state.Stage.String(),
		AllowedNext: allowed,
		Blockers:    state.Blockers,
		HasIssue:    state.HasIssue,
	})
}

type overdueOrderResponse struct {
	OrderID string    `json:"order_id"`
	Number  string    `json:"number"`
	Status  string    `json:"status"`
	ReadyBy time.Time `json:"ready_by"`
}

// GetOverdueOrders handles GET /api/v1/orders/overdue.
func (s *Server) GetOverdueOrders(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOverdueOrdersQuery(tenantID, time.Now().UTC())
	if err != nil {
		return writeError(ctx, err)
	}

	overdue, err := s.getOverdueOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]overdueOrderResponse, 0, len(overdue))
	for _, entry := range overdue {
		response = append(response, overdueOrderResponse{
			OrderID: entry.OrderID.String(),
			Number:  entry.Number,
			Status:  entry.Status.String(),
			ReadyBy: entry.ReadyBy,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type changeStatusRequest struct {
	TargetStatus string `json:"target_status"`
	Notes        string `json:"notes"`
}

// ChangeStatus handles POST /api/v1/orders/:order_id/status.
func (s *Server) ChangeStatus(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	orderID, err := parseUUID("order id", ctx.Param("order_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request changeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.TargetStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeStatusCommand(
		tenantID, orderID, target, actorFromRequest(ctx), request.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type bulkChangeStatusRequest struct {
	OrderIDs     []string `json:"order_ids"`
	TargetStatus string   `json:"target_status"`
}

type batchFailurePayload struct {
	Ref   string `json:"ref"`
	Error string `json:"error"`
}

type bulkChangeStatusResponse struct {
	Succeeded []string              `json:"succeeded"`
	Failures  []batchFailurePayload `json:"failures,omitempty"`
}

// BulkChangeStatus handles POST /api/v1/orders/status. A mixed outcome is
// reported with 207 and the per-order failure list.
func (s *Server) BulkChangeStatus(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request bulkChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.TargetStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		orderID, err := parseUUID("order id", raw)
		if err != nil {
			return writeError(ctx, err)
		}
		orderIDs = append(orderIDs, orderID)
	}

	cmd, err := commands.NewBulkChangeStatusCommand(tenantID, orderIDs, target, actorFromRequest(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.bulkChangeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil && !errors.Is(err, errs.ErrPartialBatch) {
		return writeError(ctx, err)
	}

	succeeded := make([]string, 0, len(result.Succeeded))
	for _, orderID := range result.Succeeded {
		succeeded = append(succeeded, orderID.String())
	}

	response := bulkChangeStatusResponse{
		Succeeded: succeeded,
		Failures:  failuresPayload(failuresOf(err)),
	}
	if len(response.Failures) > 0 {
		return ctx.JSON(http.StatusMultiStatus, response)
	}
	return ctx.JSON(http.StatusOK, response)
}

type splitByPiecesRequest struct {
	Selection map[string][]int `json:"selection"`
	Reason    string           `json:"reason"`
}

type splitResponse struct {
	ChildNumber string   `json:"child_number"`
	Warnings    []string `json:"warnings,omitempty"`
}

// SplitOrderByPieces handles POST /api/v1/orders/:order_id/split/pieces.
func (s *Server) SplitOrderByPieces(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	orderID, err := parseUUID("order id", ctx.Param("order_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request splitByPiecesRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	selection := make(services.PieceSelection, len(request.Selection))
	for rawItemID, sequences := range request.Selection {
		itemID, err := parseUUID("item id", rawItemID)
		if err != nil {
			return writeError(ctx, err)
		}
		selection[itemID] = sequences
	}

	cmd, err := commands.NewSplitOrderByPiecesCommand(
		tenantID, orderID, kernel.NewUUID(), selection, request.Reason, actorFromRequest(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	report, err := s.splitByPiecesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, splitResponse{
		ChildNumber: report.ChildNumber,
		Warnings:    report.Warnings,
	})
}

type splitItemsRequest struct {
	ItemIDs []string `json:"item_ids"`
	Reason  string   `json:"reason"`
}

// SplitOrderItems handles POST /api/v1/orders/:order_id/split/items.
func (s *Server) SplitOrderItems(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	orderID, err := parseUUID("order id", ctx.Param("order_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request splitItemsRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	itemIDs := make([]kernel.UUID, 0, len(request.ItemIDs))
	for _, raw := range request.ItemIDs {
		itemID, err := parseUUID("item id", raw)
		if err != nil {
			return writeError(ctx, err)
		}
		itemIDs = append(itemIDs, itemID)
	}

	cmd, err := commands.NewSplitOrderItemsCommand(
		tenantID, orderID, kernel.NewUUID(), itemIDs, request.Reason, actorFromRequest(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	report, err := s.splitItemsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, splitResponse{
		ChildNumber: report.ChildNumber,
		Warnings:    report.Warnings,
	})
}

type piecePatchRequest struct {
	Status       *string                 `json:"status"`
	Scanned      *bool                   `json:"scanned"`
	Rejected     *bool                   `json:"rejected"`
	RackLocation *string                 `json:"rack_location"`
	Attributes   *pieceAttributesPayload `json:"attributes"`
	LastStep     *string                 `json:"last_step"`
}

// UpdatePiece handles PATCH /api/v1/pieces/:piece_id.
func (s *Server) UpdatePiece(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	pieceID, err := parseUUID("piece id", ctx.Param("piece_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request piecePatchRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patch, err := patchFromRequest(request)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdatePieceCommand(tenantID, pieceID, patch, actorFromRequest(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updatePieceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeletePiece handles DELETE /api/v1/pieces/:piece_id.
func (s *Server) DeletePiece(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	pieceID, err := parseUUID("piece id", ctx.Param("piece_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeletePieceCommand(tenantID, pieceID, actorFromRequest(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deletePieceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type batchUpdatePiecesRequest struct {
	Updates []struct {
		PieceID string `json:"piece_id"`
		piecePatchRequest
	} `json:"updates"`
}

type batchUpdatePiecesResponse struct {
	UpdatedCount int                   `json:"updated_count"`
	Failures     []batchFailurePayload `json:"failures,omitempty"`
}

// BatchUpdatePieces handles POST /api/v1/pieces/batch. A mixed outcome is
// reported with 207 and the per-piece failure list.
func (s *Server) BatchUpdatePieces(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request batchUpdatePiecesRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	updates := make([]commands.PieceUpdate, 0, len(request.Updates))
	for _, entry := range request.Updates {
		pieceID, err := parseUUID("piece id", entry.PieceID)
		if err != nil {
			return writeError(ctx, err)
		}
		patch, err := patchFromRequest(entry.piecePatchRequest)
		if err != nil {
			return writeError(ctx, err)
		}
		updates = append(updates, commands.PieceUpdate{PieceID: pieceID, Patch: patch})
	}

	cmd, err := commands.NewBatchUpdatePiecesCommand(tenantID, updates, actorFromRequest(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.batchUpdateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil && !errors.Is(err, errs.ErrPartialBatch) {
		return writeError(ctx, err)
	}

	response := batchUpdatePiecesResponse{
		UpdatedCount: result.UpdatedCount,
		Failures:     failuresPayload(failuresOf(err)),
	}
	if len(response.Failures) > 0 {
		return ctx.JSON(http.StatusMultiStatus, response)
	}
	return ctx.JSON(http.StatusOK, response)
}

// SyncQuantityReady handles POST /api/v1/orders/:order_id/items/:item_id/sync-ready.
func (s *Server) SyncQuantityReady(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	orderID, err := parseUUID("order id", ctx.Param("order_id"))
	if err != nil {
		return writeError(ctx, err)
	}
	itemID, err := parseUUID("item id", ctx.Param("item_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSyncQuantityReadyCommand(tenantID, orderID, itemID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.syncReadyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkItemComplete handles POST /api/v1/orders/:order_id/items/:item_id/complete.
func (s *Server) MarkItemComplete(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	orderID, err := parseUUID("order id", ctx.Param("order_id"))
	if err != nil {
		return writeError(ctx, err)
	}
	itemID, err := parseUUID("item id", ctx.Param("item_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkItemCompleteCommand(tenantID, orderID, itemID, actorFromRequest(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.markItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type createIssueRequest struct {
	OrderID string  `json:"order_id"`
	ItemID  *string `json:"item_id"`
	Code    string  `json:"code"`
	Text    string  `json:"text"`
}

type createIssueResponse struct {
	IssueID string `json:"issue_id"`
}

// CreateIssue handles POST /api/v1/issues.
func (s *Server) CreateIssue(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request createIssueRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := parseUUID("order id", request.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	var itemID *kernel.UUID
	if request.ItemID != nil {
		parsed, err := parseUUID("item id", *request.ItemID)
		if err != nil {
			return writeError(ctx, err)
		}
		itemID = &parsed
	}

	issueID := kernel.NewUUID()
	cmd, err := commands.NewCreateIssueCommand(
		tenantID, issueID, orderID, itemID, request.Code, request.Text, actorFromRequest(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createIssueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createIssueResponse{IssueID: issueID.String()})
}

type resolveIssueRequest struct {
	Notes string `json:"notes"`
}

// ResolveIssue handles POST /api/v1/issues/:issue_id/resolve.
func (s *Server) ResolveIssue(ctx echo.Context) error {
	tenantID, err := tenantFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	issueID, err := parseUUID("issue id", ctx.Param("issue_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request resolveIssueRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewResolveIssueCommand(tenantID, issueID, request.Notes, actorFromRequest(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.resolveIssueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func tenantFromRequest(ctx echo.Context) (kernel.TenantID, error) {
	tenantID, err := kernel.TenantIDFromString(ctx.Request().Header.Get(headerTenantID))
	if err != nil {
		return kernel.TenantID{}, errs.NewValueIsInvalidErrorWithCause("tenant id", err)
	}
	return tenantID, nil
}

func parseUUID(name, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func actorFromRequest(ctx echo.Context) string {
	return ctx.Request().Header.Get(headerActor)
}

func attributesFromPayload(payload pieceAttributesPayload) order.PieceAttributes {
	return order.PieceAttributes{
		Color: payload.Color,
		Brand: payload.Brand,
		Note:  payload.Note,
	}
}

func attributesSliceFromPayload(payloads []pieceAttributesPayload) []order.PieceAttributes {
	if len(payloads) == 0 {
		return nil
	}
	attrs := make([]order.PieceAttributes, 0, len(payloads))
	for _, payload := range payloads {
		attrs = append(attrs, attributesFromPayload(payload))
	}
	return attrs
}

func patchFromRequest(request piecePatchRequest) (order.PiecePatch, error) {
	patch := order.PiecePatch{
		Scanned:  request.Scanned,
		Rejected: request.Rejected,
		LastStep: request.LastStep,
	}

	if request.Status != nil {
		status, err := order.PieceStatusFromString(*request.Status)
		if err != nil {
			return order.PiecePatch{}, err
		}
		patch.Status = &status
	}
	if request.RackLocation != nil {
		location, err := kernel.NewRackLocation(*request.RackLocation)
		if err != nil {
			return order.PiecePatch{}, err
		}
		patch.RackLocation = &location
	}
	if request.Attributes != nil {
		attrs := attributesFromPayload(*request.Attributes)
		patch.Attributes = &attrs
	}
	return patch, nil
}

func failuresOf(err error) []errs.BatchMemberFailure {
	var partial *errs.PartialBatchError
	if errors.As(err, &partial) {
		return partial.Failures
	}
	return nil
}

func failuresPayload(failures []errs.BatchMemberFailure) []batchFailurePayload {
	if len(failures) == 0 {
		return nil
	}
	payload := make([]batchFailurePayload, 0, len(failures))
	for _, failure := range failures {
		payload = append(payload, batchFailurePayload{
			Ref:   failure.Ref,
			Error: failure.Err.Error(),
		})
	}
	return payload
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps a domain error onto the HTTP status that describes it.
func writeError(ctx echo.Context, err error) error {
	var conflict *errs.StateConflictError
	if errors.As(err, &conflict) {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:     http.StatusConflict,
			Message:  conflict.Error(),
			Blockers: conflict.Blockers,
		})
	}

	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrStateConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrDependencyFailed):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}
