package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// CheckinDispatcher is the interface the handler uses to enqueue scans.
type CheckinDispatcher interface {
	Enqueue(in ports.CheckinInput)
}

// CheckinHandler handles QR ticket scan ingestion and the scan history view.
// Both routes accept staff and admin.
type CheckinHandler struct {
	dispatcher CheckinDispatcher
	service    ports.CheckinService
}

func NewCheckinHandler(dispatcher CheckinDispatcher, service ports.CheckinService) *CheckinHandler {
	return &CheckinHandler{dispatcher: dispatcher, service: service}
}

type checkinRequest struct {
	TicketCode string    `json:"ticket_code" validate:"required"`
	EventID    string    `json:"event_id"    validate:"required"`
	ScannedAt  time.Time `json:"scanned_at"`
}

type checkinAcceptedResponse struct {
	Message string `json:"message"`
}

type checkinView struct {
	ID         string    `json:"id"`
	TicketCode string    `json:"ticket_code"`
	EventID    string    `json:"event_id"`
	ScannedBy  string    `json:"scanned_by"`
	ScannedAt  time.Time `json:"scanned_at"`
	Duplicate  bool      `json:"duplicate"`
}

type listCheckinsQuery struct {
	EventID string `query:"event_id"`
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
}

type listCheckinsResponse struct {
	Items []checkinView `json:"items"`
	Total int64         `json:"total"`
}

// Receive handles POST /api/checkins — enqueues a single scan, returns 202.
//
// @Summary      Record a ticket scan
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkinRequest  true  "Ticket scan"
// @Success      202   {object}  checkinAcceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/checkins [post]
func (h *CheckinHandler) Receive(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}

	var req checkinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.dispatcher.Enqueue(ports.CheckinInput{
		TicketCode: req.TicketCode,
		EventID:    req.EventID,
		ScannedBy:  profile.ID,
		ScannedAt:  req.ScannedAt,
	})
	return c.JSON(http.StatusAccepted, checkinAcceptedResponse{Message: "scan accepted"})
}

// History handles GET /api/checkins — lists recorded scans.
//
// @Summary      List recorded ticket scans
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Param        event_id  query  string  false  "Filter by event"
// @Param        page      query  int     false  "Page (1-based)"
// @Param        limit     query  int     false  "Page size (max 100)"
// @Success      200  {object}  listCheckinsResponse
// @Router       /api/checkins [get]
func (h *CheckinHandler) History(c echo.Context) error {
	var q listCheckinsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	items, total, err := h.service.History(c.Request().Context(), ports.ListCheckinsFilter{
		EventID: q.EventID,
		Page:    q.Page,
		Limit:   q.Limit,
	})
	if err != nil {
		return err
	}

	views := make([]checkinView, 0, len(items))
	for _, ci := range items {
		views = append(views, toCheckinView(ci))
	}
	return c.JSON(http.StatusOK, listCheckinsResponse{Items: views, Total: total})
}

func toCheckinView(ci *domain.CheckIn) checkinView {
	return checkinView{
		ID:         ci.ID,
		TicketCode: ci.TicketCode,
		EventID:    ci.EventID,
		ScannedBy:  ci.ScannedBy,
		ScannedAt:  ci.ScannedAt,
		Duplicate:  ci.Duplicate,
	}
}
