package http

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
)

// Error is the uniform error payload for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /api/auth/register. Accounts created
// through the public endpoint always get the partner role; admin accounts
// are provisioned out of band.
type RegisterRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Phone     string   `json:"phone"`
	Areas     []string `json:"areas"`
	ShiftSlot string   `json:"shift_slot"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a fresh token together with the account it belongs to.
type AuthResponse struct {
	Token   string          `json:"token"`
	Partner PartnerResponse `json:"partner"`
}

// LoginResponse carries a fresh token and the identity it was minted for.
type LoginResponse struct {
	Token     string `json:"token"`
	PartnerID string `json:"partner_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// VerifyResponse echoes the identity baked into a valid token.
type VerifyResponse struct {
	PartnerID string `json:"partner_id"`
	Role      string `json:"role"`
}

// JoinRequest is the body of POST /api/partners/join.
type JoinRequest struct {
	Areas     []string `json:"areas"`
	ShiftSlot string   `json:"shift_slot"`
}

// ReviewRequest is the body of POST /api/partners/:id/review.
type ReviewRequest struct {
	Approve bool `json:"approve"`
}

// UpdatePartnerRequest is the body of PUT /api/partners/:id.
type UpdatePartnerRequest struct {
	Areas     []string `json:"areas"`
	ShiftSlot string   `json:"shift_slot"`
}

// PartnerResponse is the partner shape returned by write endpoints.
// Credentials never appear in responses.
type PartnerResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Role        string   `json:"role"`
	Status      string   `json:"status"`
	CurrentLoad int      `json:"current_load"`
	Areas       []string `json:"areas"`
	ShiftStart  string   `json:"shift_start"`
	ShiftEnd    string   `json:"shift_end"`
	Rating      float64  `json:"rating"`
}

func partnerToResponse(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		ID:          p.ID().String(),
		Name:        p.Name(),
		Email:       p.Email(),
		Phone:       p.Phone(),
		Role:        string(p.Role()),
		Status:      p.Status().String(),
		CurrentLoad: p.CurrentLoad(),
		Areas:       p.Areas(),
		ShiftStart:  p.Shift().Start().String(),
		ShiftEnd:    p.Shift().End().String(),
		Rating:      p.PartnerMetrics().Rating,
	}
}

// PartnerDashboardResponse is the refreshed dashboard for one partner.
type PartnerDashboardResponse struct {
	PartnerID          string  `json:"partner_id"`
	Name               string  `json:"name"`
	Status             string  `json:"status"`
	Rating             float64 `json:"rating"`
	CurrentArea        string  `json:"current_area"`
	ActiveOrders       int     `json:"active_orders"`
	CompletedToday     int     `json:"completed_today"`
	CompletedOrders    int     `json:"completed_orders"`
	CancelledOrders    int     `json:"cancelled_orders"`
	AverageTimeMinutes int     `json:"average_time_minutes"`
}

func dashboardToResponse(d commands.PartnerDashboard) PartnerDashboardResponse {
	return PartnerDashboardResponse{
		PartnerID:          d.PartnerID,
		Name:               d.Name,
		Status:             d.Status,
		Rating:             d.Rating,
		CurrentArea:        d.CurrentArea,
		ActiveOrders:       d.ActiveOrders,
		CompletedToday:     d.CompletedToday,
		CompletedOrders:    d.CompletedOrders,
		CancelledOrders:    d.CancelledOrders,
		AverageTimeMinutes: d.AverageTimeMinutes,
	}
}

// OrderItemRequest is one order line in CreateOrderRequest.
type OrderItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CreateOrderRequest is the body of POST /api/orders. The total amount is
// computed server-side from the item lines.
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	Area            string             `json:"area"`
	Items           []OrderItemRequest `json:"items"`
	ScheduledFor    time.Time          `json:"scheduled_for"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the order shape returned by write endpoints.
type OrderResponse struct {
	ID           string             `json:"id"`
	OrderNumber  int64              `json:"order_number"`
	CustomerName string             `json:"customer_name"`
	Area         string             `json:"area"`
	Items        []OrderItemRequest `json:"items"`
	TotalAmount  float64            `json:"total_amount"`
	Status       string             `json:"status"`
	ScheduledFor time.Time          `json:"scheduled_for"`
	AssignedTo   *string            `json:"assigned_to,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func orderToResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemRequest, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemRequest{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	response := OrderResponse{
		ID:           o.ID().String(),
		OrderNumber:  o.OrderNumber(),
		CustomerName: o.Customer().Name,
		Area:         o.Area(),
		Items:        items,
		TotalAmount:  o.TotalAmount(),
		Status:       o.Status().String(),
		ScheduledFor: o.ScheduledFor(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
	if o.AssignedTo() != nil {
		assignedTo := o.AssignedTo().String()
		response.AssignedTo = &assignedTo
	}

	return response
}

// AssignmentResultResponse reports the outcome of an assignment attempt.
type AssignmentResultResponse struct {
	AssignmentID string    `json:"assignment_id"`
	OrderID      string    `json:"order_id"`
	PartnerID    *string   `json:"partner_id,omitempty"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func entryToResponse(entry *assignment.Assignment) AssignmentResultResponse {
	response := AssignmentResultResponse{
		AssignmentID: entry.ID().String(),
		OrderID:      entry.OrderID().String(),
		Status:       entry.Status().String(),
		Reason:       entry.Reason(),
		Timestamp:    entry.Timestamp(),
	}
	if entry.PartnerID() != nil {
		partnerID := entry.PartnerID().String()
		response.PartnerID = &partnerID
	}

	return response
}

// OrderListItem is one row of the order listing endpoints.
type OrderListItem struct {
	ID              string    `json:"id"`
	OrderNumber     int64     `json:"order_number"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerAddress string    `json:"customer_address"`
	Area            string    `json:"area"`
	Status          string    `json:"status"`
	TotalAmount     float64   `json:"total_amount"`
	ScheduledFor    time.Time `json:"scheduled_for"`
	AssignedTo      *string   `json:"assigned_to,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func orderListToResponse(rows []queries.OrderResponse) []OrderListItem {
	items := make([]OrderListItem, 0, len(rows))
	for _, row := range rows {
		item := OrderListItem{
			ID:              row.ID.String(),
			OrderNumber:     row.OrderNumber,
			CustomerName:    row.CustomerName,
			CustomerPhone:   row.CustomerPhone,
			CustomerAddress: row.CustomerAddress,
			Area:            row.Area,
			Status:          row.Status,
			TotalAmount:     row.TotalAmount,
			ScheduledFor:    row.ScheduledFor,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		}
		if row.AssignedTo != nil {
			assignedTo := row.AssignedTo.String()
			item.AssignedTo = &assignedTo
		}
		items = append(items, item)
	}

	return items
}

// PartnerListItem is one row of the partner listing endpoints.
type PartnerListItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Status          string   `json:"status"`
	CurrentLoad     int      `json:"current_load"`
	Areas           []string `json:"areas"`
	ShiftStart      string   `json:"shift_start"`
	ShiftEnd        string   `json:"shift_end"`
	Rating          float64  `json:"rating"`
	CompletedOrders int      `json:"completed_orders"`
	CancelledOrders int      `json:"cancelled_orders"`
}

func partnerListToResponse(rows []queries.PartnerResponse) []PartnerListItem {
	items := make([]PartnerListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, PartnerListItem{
			ID:              row.ID.String(),
			Name:            row.Name,
			Email:           row.Email,
			Phone:           row.Phone,
			Status:          row.Status,
			CurrentLoad:     row.CurrentLoad,
			Areas:           row.Areas,
			ShiftStart:      row.ShiftStart,
			ShiftEnd:        row.ShiftEnd,
			Rating:          row.Rating,
			CompletedOrders: row.CompletedOrders,
			CancelledOrders: row.CancelledOrders,
		})
	}

	return items
}

// AssignmentListItem is one row of GET /api/assignments.
type AssignmentListItem struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	PartnerID *string   `json:"partner_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
}

func assignmentListToResponse(rows []queries.AssignmentResponse) []AssignmentListItem {
	items := make([]AssignmentListItem, 0, len(rows))
	for _, row := range rows {
		item := AssignmentListItem{
			ID:        row.ID.String(),
			OrderID:   row.OrderID.String(),
			Timestamp: row.Timestamp,
			Status:    row.Status,
			Reason:    row.Reason,
		}
		if row.PartnerID != nil {
			partnerID := row.PartnerID.String()
			item.PartnerID = &partnerID
		}
		items = append(items, item)
	}

	return items
}

// FailureReasonItem is one failure bucket of the metrics response.
type FailureReasonItem struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// MetricsResponse is the body of GET /api/assignments/metrics.
type MetricsResponse struct {
	TotalAssigned      int                        `json:"total_assigned"`
	SuccessRate        float64                    `json:"success_rate"`
	AverageTimeSeconds float64                    `json:"average_time_seconds"`
	FailureReasons     []FailureReasonItem        `json:"failure_reasons"`
	EvaluatedAt        time.Time                  `json:"evaluated_at"`
	ActiveAssignments  []AssignmentResultResponse `json:"active_assignments"`
	ActivePartners     int                        `json:"active_partners"`
	AvailablePartners  int                        `json:"available_partners"`
	BusyPartners       int                        `json:"busy_partners"`
	OfflinePartners    int                        `json:"offline_partners"`
}

func metricsToResponse(m queries.AssignmentMetricsResponse) MetricsResponse {
	reasons := make([]FailureReasonItem, 0, len(m.Metrics.FailureReasons))
	for _, reason := range m.Metrics.FailureReasons {
		reasons = append(reasons, FailureReasonItem{
			Reason: reason.Reason,
			Count:  reason.Count,
		})
	}

	active := make([]AssignmentResultResponse, 0, len(m.ActiveAssignments))
	for _, entry := range m.ActiveAssignments {
		active = append(active, entryToResponse(entry))
	}

	return MetricsResponse{
		TotalAssigned:      m.Metrics.TotalAssigned,
		SuccessRate:        m.Metrics.SuccessRate,
		AverageTimeSeconds: m.Metrics.AverageTimeSeconds,
		FailureReasons:     reasons,
		EvaluatedAt:        m.EvaluatedAt,
		ActiveAssignments:  active,
		ActivePartners:     m.ActivePartners,
		AvailablePartners:  m.AvailablePartners,
		BusyPartners:       m.BusyPartners,
		OfflinePartners:    m.OfflinePartners,
	}
}

// AreaCountItem is one entry of the summary's busiest-areas ranking.
type AreaCountItem struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// SummaryResponse is the body of GET /api/dashboard/summary.
type SummaryResponse struct {
	TotalOrders       int             `json:"total_orders"`
	OpenOrders        int             `json:"open_orders"`
	DeliveredOrders   int             `json:"delivered_orders"`
	AvailablePartners int             `json:"available_partners"`
	PendingPartners   int             `json:"pending_partners"`
	Assignments24h    int             `json:"assignments_24h"`
	TopAreas          []AreaCountItem `json:"top_areas"`
}

func summaryToResponse(s queries.DashboardSummaryResponse) SummaryResponse {
	topAreas := make([]AreaCountItem, 0, len(s.TopAreas))
	for _, area := range s.TopAreas {
		topAreas = append(topAreas, AreaCountItem{Area: area.Area, Count: area.Count})
	}

	return SummaryResponse{
		TotalOrders:       s.TotalOrders,
		OpenOrders:        s.OpenOrders,
		DeliveredOrders:   s.DeliveredOrders,
		AvailablePartners: s.AvailablePartners,
		PendingPartners:   s.PendingPartners,
		Assignments24h:    s.Assignments24h,
		TopAreas:          topAreas,
	}
}
