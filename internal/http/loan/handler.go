package loan

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
	"github.com/MrJamesThe3rd/toolrent/internal/http/respond"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
)

type Handler struct {
	svc *loan.Service
}

func NewHandler(svc *loan.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(authn.RequireRole(authn.Staff...))

	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/reports/active", h.active)
	r.Get("/reports/ranking", h.ranking)
	r.Get("/reports/repair-queue", h.repairQueue)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.processReturn)
}

type createLoanRequest struct {
	CustomerID  uuid.UUID  `json:"customer_id"`
	ToolGroupID uuid.UUID  `json:"tool_group_id"`
	ToolID      *uuid.UUID `json:"tool_id,omitempty"`
	ReturnDate  string     `json:"return_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	returnDate, err := clock.ParseDate(req.ReturnDate)
	if err != nil {
		respond.Error(w, apperr.Validation("return_date", "expected YYYY-MM-DD"))
		return
	}

	l, err := h.svc.Create(r.Context(), loan.CreateParams{
		CustomerID:  req.CustomerID,
		ToolGroupID: req.ToolGroupID,
		ToolID:      req.ToolID,
		ReturnDate:  returnDate,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(l, h.svc.Today()))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	loans, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(loans, h.svc.Today()))
}

func parseFilter(r *http.Request) (loan.ListFilter, error) {
	var (
		filter loan.ListFilter
		err    error
	)

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(loan.Status(s))
	}

	filter.RUT = respond.StringQuery(r, "rut")

	if filter.CustomerID, err = respond.UUIDQuery(r, "customer_id"); err != nil {
		return filter, err
	}

	if filter.GroupID, err = respond.UUIDQuery(r, "group_id"); err != nil {
		return filter, err
	}

	if filter.StartDate, err = respond.DateQuery(r, "start_date"); err != nil {
		return filter, err
	}

	if filter.EndDate, err = respond.DateQuery(r, "end_date"); err != nil {
		return filter, err
	}

	return filter, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(l, h.svc.Today()))
}

type returnRequest struct {
	Condition inventory.Condition `json:"condition"`
}

func (h *Handler) processReturn(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req returnRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	l, err := h.svc.ProcessReturn(r.Context(), id, req.Condition)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(l, h.svc.Today()))
}

func (h *Handler) active(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	loans, err := h.svc.ActiveLoans(r.Context(), from, to)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(loans, h.svc.Today()))
}

func (h *Handler) ranking(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	limit, err := respond.IntQuery(r, "limit")
	if err != nil {
		respond.Error(w, err)
		return
	}

	entries, err := h.svc.Ranking(r.Context(), from, to, limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]rankingResponse, len(entries))
	for i, e := range entries {
		resp[i] = rankingResponse{GroupID: e.GroupID, Name: e.Name, Category: e.Category, Loans: e.Loans}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) repairQueue(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.RepairQueue(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]repairResponse, len(items))
	for i, it := range items {
		resp[i] = repairResponse{
			ToolID:       it.ToolID,
			GroupID:      it.GroupID,
			ToolName:     it.ToolName,
			LoanID:       it.LoanID,
			CustomerName: it.CustomerName,
			ReturnedAt:   it.ReturnedAt,
			LoanStatus:   it.LoanStatus,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func dateRange(r *http.Request) (*time.Time, *time.Time, error) {
	from, err := respond.DateQuery(r, "start_date")
	if err != nil {
		return nil, nil, err
	}

	to, err := respond.DateQuery(r, "end_date")
	if err != nil {
		return nil, nil, err
	}

	return from, to, nil
}
