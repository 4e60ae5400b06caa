// Package http is the inbound REST adapter. It binds requests, runs the
// application's command and query handlers, and shapes responses; no
// business rules live here.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	tokens auth.TokenService

	// Command handlers
	registerPartnerHandler   commands.RegisterPartnerCommandHandler
	joinAsPartnerHandler     commands.JoinAsPartnerCommandHandler
	reviewApplicationHandler commands.ReviewPartnerApplicationCommandHandler
	updatePartnerHandler     commands.UpdatePartnerCommandHandler
	deletePartnerHandler     commands.DeletePartnerCommandHandler
	computeDashboardHandler  commands.ComputePartnerDashboardCommandHandler
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	assignOrderHandler       commands.AssignOrderCommandHandler
	evaluateMetricsHandler   commands.EvaluateMetricsCommandHandler

	// Query handlers
	getAllOrdersHandler          queries.GetAllOrdersQueryHandler
	getPartnerOrdersHandler      queries.GetPartnerOrdersQueryHandler
	getAllPartnersHandler        queries.GetAllPartnersQueryHandler
	getAssignmentsHandler        queries.GetAssignmentsQueryHandler
	getAssignmentMetricsHandler  queries.GetAssignmentMetricsQueryHandler
	getDashboardSummaryHandler   queries.GetDashboardSummaryQueryHandler
	getPartnerCredentialsHandler queries.GetPartnerCredentialsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	tokens auth.TokenService,
	registerPartnerHandler commands.RegisterPartnerCommandHandler,
	joinAsPartnerHandler commands.JoinAsPartnerCommandHandler,
	reviewApplicationHandler commands.ReviewPartnerApplicationCommandHandler,
	updatePartnerHandler commands.UpdatePartnerCommandHandler,
	deletePartnerHandler commands.DeletePartnerCommandHandler,
	computeDashboardHandler commands.ComputePartnerDashboardCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	evaluateMetricsHandler commands.EvaluateMetricsCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getPartnerOrdersHandler queries.GetPartnerOrdersQueryHandler,
	getAllPartnersHandler queries.GetAllPartnersQueryHandler,
	getAssignmentsHandler queries.GetAssignmentsQueryHandler,
	getAssignmentMetricsHandler queries.GetAssignmentMetricsQueryHandler,
	getDashboardSummaryHandler queries.GetDashboardSummaryQueryHandler,
	getPartnerCredentialsHandler queries.GetPartnerCredentialsQueryHandler,
) *Server {
	return &Server{
		tokens:                       tokens,
		registerPartnerHandler:       registerPartnerHandler,
		joinAsPartnerHandler:         joinAsPartnerHandler,
		reviewApplicationHandler:     reviewApplicationHandler,
		updatePartnerHandler:         updatePartnerHandler,
		deletePartnerHandler:         deletePartnerHandler,
		computeDashboardHandler:      computeDashboardHandler,
		createOrderHandler:           createOrderHandler,
		updateOrderStatusHandler:     updateOrderStatusHandler,
		assignOrderHandler:           assignOrderHandler,
		evaluateMetricsHandler:       evaluateMetricsHandler,
		getAllOrdersHandler:          getAllOrdersHandler,
		getPartnerOrdersHandler:      getPartnerOrdersHandler,
		getAllPartnersHandler:        getAllPartnersHandler,
		getAssignmentsHandler:        getAssignmentsHandler,
		getAssignmentMetricsHandler:  getAssignmentMetricsHandler,
		getDashboardSummaryHandler:   getDashboardSummaryHandler,
		getPartnerCredentialsHandler: getPartnerCredentialsHandler,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo, authMW AuthMiddleware) {
	api := e.Group("/api")

	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.GET("/auth/verify", s.Verify, authMW.Authenticate)

	partners := api.Group("/partners", authMW.Authenticate)
	partners.POST("/join", s.JoinAsPartner)
	partners.GET("", s.GetPartners, authMW.RequireAdmin)
	partners.GET("/pending", s.GetPendingPartners, authMW.RequireAdmin)
	partners.POST("/:id/review", s.ReviewApplication, authMW.RequireAdmin)
	partners.PUT("/:id", s.UpdatePartner)
	partners.DELETE("/:id", s.DeletePartner, authMW.RequireAdmin)
	partners.GET("/:id/dashboard", s.GetPartnerDashboard)
	partners.GET("/:id/orders", s.GetPartnerOrders)

	orders := api.Group("/orders", authMW.Authenticate, authMW.RequireAdmin)
	orders.POST("", s.CreateOrder)
	orders.GET("", s.GetOrders)
	orders.POST("/:id/assign", s.AssignOrder)
	orders.PATCH("/:id/status", s.UpdateOrderStatus)

	assignments := api.Group("/assignments", authMW.Authenticate, authMW.RequireAdmin)
	assignments.GET("", s.GetAssignments)
	assignments.GET("/metrics", s.GetMetrics)
	assignments.POST("/metrics/evaluate", s.EvaluateMetrics)

	api.GET("/dashboard/summary", s.GetDashboardSummary, authMW.Authenticate, authMW.RequireAdmin)
}

// Register handles POST /api/auth/register - creates a partner account and
// signs it in.
func (s *Server) Register(ctx echo.Context) error {
	var request RegisterRequest
	if err := ctx.Bind(&request); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRegisterPartnerCommand(
		kernel.NewUUID(),
		request.Name,
		request.Email,
		request.Password,
		partner.RolePartner,
		request.Phone,
		request.Areas,
		request.ShiftSlot,
	)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid registration data: "+err.Error())
	}

	registered, err := s.registerPartnerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrEmailAlreadyRegistered) {
			return jsonError(ctx, http.StatusConflict, "Email already registered")
		}
		return jsonError(ctx, http.StatusInternalServerError, "Failed to register partner")
	}

	token, err := s.tokens.CreateToken(registered.ID().String(), string(registered.Role()))
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to issue token")
	}

	return ctx.JSON(http.StatusCreated, AuthResponse{
		Token:   token,
		Partner: partnerToResponse(registered),
	})
}

// Login handles POST /api/auth/login - verifies credentials and issues a token.
func (s *Server) Login(ctx echo.Context) error {
	var request LoginRequest
	if err := ctx.Bind(&request); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	query, err := queries.NewGetPartnerCredentialsQuery(request.Email)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Email is required")
	}

	credentials, err := s.getPartnerCredentialsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return jsonError(ctx, http.StatusUnauthorized, "Invalid email or password")
		}
		return jsonError(ctx, http.StatusInternalServerError, "Failed to sign in")
	}

	if !auth.CheckPasswordHash(request.Password, credentials.PasswordHash) {
		return jsonError(ctx, http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := s.tokens.CreateToken(credentials.ID.String(), credentials.Role)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to issue token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		PartnerID: credentials.ID.String(),
		Name:      credentials.Name,
		Role:      credentials.Role,
		Status:    credentials.Status,
	})
}

// Verify handles GET /api/auth/verify - confirms the presented token is valid.
func (s *Server) Verify(ctx echo.Context) error {
	claims, ok := claimsFrom(ctx)
	if !ok {
		return jsonError(ctx, http.StatusUnauthorized, "Missing bearer token")
	}

	return ctx.JSON(http.StatusOK, VerifyResponse{
		PartnerID: claims.PartnerID,
		Role:      claims.Role,
	})
}

// JoinAsPartner handles POST /api/partners/join - submits the authenticated
// account's onboarding application.
func (s *Server) JoinAsPartner(ctx echo.Context) error {
	claims, ok := claimsFrom(ctx)
	if !ok {
		return jsonError(ctx, http.StatusUnauthorized, "Missing bearer token")
	}

	var request JoinRequest
	if err := ctx.Bind(&request); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	partnerID, err := kernel.UUIDFromString(claims.PartnerID)
	if err != nil {
		return jsonError(ctx, http.StatusUnauthorized, "Invalid token subject")
	}

	cmd, err := commands.NewJoinAsPartnerCommand(partnerID, request.Areas, request.ShiftSlot)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid application data: "+err.Error())
	}

	applicant, err := s.joinAsPartnerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to submit application")
	}

	return ctx.JSON(http.StatusOK, partnerToResponse(applicant))
}

// GetPartners handles GET /api/partners - lists all partners.
func (s *Server) GetPartners(ctx echo.Context) error {
	query := queries.NewGetAllPartnersQuery()

	partners, err := s.getAllPartnersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve partners")
	}

	return ctx.JSON(http.StatusOK, partnerListToResponse(partners))
}

// GetPendingPartners handles GET /api/partners/pending - lists applications
// awaiting review.
func (s *Server) GetPendingPartners(ctx echo.Context) error {
	query := queries.NewGetPendingPartnersQuery()

	partners, err := s.getAllPartnersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve applications")
	}

	return ctx.JSON(http.StatusOK, partnerListToResponse(partners))
}

// ReviewApplication handles POST /api/partners/:id/review - approves or
// rejects a pending application.
func (s *Server) ReviewApplication(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid partner ID")
	}

	var request ReviewRequest
	if err = ctx.Bind(&request); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewReviewPartnerApplicationCommand(partnerID, request.Approve)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid review data: "+err.Error())
	}

	reviewed, err := s.reviewApplicationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to review application")
	}

	return ctx.JSON(http.StatusOK, partnerToResponse(reviewed))
}

// UpdatePartner handles PUT /api/partners/:id - updates areas and shift.
// Partners may update only themselves; admins may update anyone.
func (s *Server) UpdatePartner(ctx echo.Context) error {
	if !canActFor(ctx, ctx.Param("id")) {
		return jsonError(ctx, http.StatusForbidden, "Cannot modify another partner")
	}

	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid partner ID")
	}

	var request UpdatePartnerRequest
	if err = ctx.Bind(&request); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdatePartnerCommand(partnerID, request.Areas, request.ShiftSlot)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid profile data: "+err.Error())
	}

	updated, err := s.updatePartnerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to update partner")
	}

	return ctx.JSON(http.StatusOK, partnerToResponse(updated))
}

// DeletePartner handles DELETE /api/partners/:id.
func (s *Server) DeletePartner(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid partner ID")
	}

	cmd, err := commands.NewDeletePartnerCommand(partnerID)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid partner ID")
	}

	if err = s.deletePartnerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err, "Failed to delete partner")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPartnerDashboard handles GET /api/partners/:id/dashboard - refreshes
// and returns the partner's dashboard. Partners see only their own.
func (s *Server) GetPartnerDashboard(ctx echo.Context) error {
	if !canActFor(ctx, ctx.Param("id")) {
		return jsonError(ctx, http.StatusForbidden, "Cannot view another partner's dashboard")
	}

	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid partner ID")
	}

	cmd, err := commands.NewComputePartnerDashboardCommand(partnerID)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid partner ID")
	}

	dashboard, err := s.computeDashboardHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to compute dashboard")
	}

	return ctx.JSON(http.StatusOK, dashboardToResponse(dashboard))
}

// GetPartnerOrders handles GET /api/partners/:id/orders - lists orders
// assigned to the partner. Partners see only their own.
func (s *Server) GetPartnerOrders(ctx echo.Context) error {
	if !canActFor(ctx, ctx.Param("id")) {
		return jsonError(ctx, http.StatusForbidden, "Cannot view another partner's orders")
	}

	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid partner ID")
	}

	query, err := queries.NewGetPartnerOrdersQuery(partnerID)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid partner ID")
	}

	orders, err := s.getPartnerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orderListToResponse(orders))
}

// CreateOrder handles POST /api/orders - registers a new customer order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, order.Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		order.Customer{
			Name:    request.CustomerName,
			Phone:   request.CustomerPhone,
			Address: request.CustomerAddress,
		},
		request.Area,
		items,
		request.ScheduledFor,
	)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrders handles GET /api/orders - lists all orders, newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orderListToResponse(orders))
}

// AssignOrder handles POST /api/orders/:id/assign - picks the best eligible
// partner for the order. Every attempt, successful or not, is recorded and
// returned; a failed attempt answers 409 with the recorded entry.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order ID")
	}

	cmd, err := commands.NewAssignOrderCommand(orderID)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order ID")
	}

	entry, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrPartnerNotAvailable) {
			return ctx.JSON(http.StatusConflict, entryToResponse(entry))
		}
		return s.domainError(ctx, err, "Failed to assign order")
	}

	return ctx.JSON(http.StatusOK, entryToResponse(entry))
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order ID")
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	status, err := order.StatusFromString(request.Status)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Unknown order status: "+request.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid status data: "+err.Error())
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.domainError(ctx, err, "Failed to update order status")
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// GetAssignments handles GET /api/assignments - lists recent ledger entries.
func (s *Server) GetAssignments(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return jsonError(ctx, http.StatusBadRequest, "Invalid limit")
		}
		limit = parsed
	}

	query := queries.NewGetAssignmentsQuery(limit)

	assignments, err := s.getAssignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve assignments")
	}

	return ctx.JSON(http.StatusOK, assignmentListToResponse(assignments))
}

// GetMetrics handles GET /api/assignments/metrics - returns the latest
// evaluated metrics document with partner availability counts.
func (s *Server) GetMetrics(ctx echo.Context) error {
	query := queries.NewGetAssignmentMetricsQuery()

	metrics, err := s.getAssignmentMetricsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve metrics")
	}

	return ctx.JSON(http.StatusOK, metricsToResponse(metrics))
}

// EvaluateMetrics handles POST /api/assignments/metrics/evaluate - recomputes
// the global metrics from the full ledger on demand.
func (s *Server) EvaluateMetrics(ctx echo.Context) error {
	cmd := commands.NewEvaluateMetricsCommand()

	metrics, err := s.evaluateMetricsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to evaluate metrics")
	}

	reasons := make([]FailureReasonItem, 0, len(metrics.FailureReasons))
	for _, reason := range metrics.FailureReasons {
		reasons = append(reasons, FailureReasonItem{Reason: reason.Reason, Count: reason.Count})
	}

	return ctx.JSON(http.StatusOK, MetricsResponse{
		TotalAssigned:      metrics.TotalAssigned,
		SuccessRate:        metrics.SuccessRate,
		AverageTimeSeconds: metrics.AverageTimeSeconds,
		FailureReasons:     reasons,
	})
}

// GetDashboardSummary handles GET /api/dashboard/summary - the admin
// operations overview.
func (s *Server) GetDashboardSummary(ctx echo.Context) error {
	query := queries.NewGetDashboardSummaryQuery()

	summary, err := s.getDashboardSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve summary")
	}

	return ctx.JSON(http.StatusOK, summaryToResponse(summary))
}

// domainError maps application-layer errors onto HTTP status codes, falling
// back to 500 with the given message.
func (s *Server) domainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	default:
		return jsonError(ctx, http.StatusInternalServerError, fallback)
	}
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
