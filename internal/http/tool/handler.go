package tool

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
	"github.com/MrJamesThe3rd/toolrent/internal/http/respond"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireRole(authn.Staff...))
		r.Get("/", h.listTools)
		r.Get("/groups", h.listGroups)
		r.Get("/groups/{id}", h.getGroup)
		r.Get("/{id}", h.getTool)
	})

	r.Group(func(r chi.Router) {
		r.Use(authn.RequireRole(auth.RoleAdmin))
		r.Post("/", h.intake)
		r.Post("/existing", h.intakeExisting)
		r.Put("/repairedTool/{id}", h.completeRepair)
		r.Put("/groups/{id}/replacementValue", h.updateReplacementValue)
		r.Put("/groups/{id}/dailyRentalRate", h.updateDailyRentalRate)
	})
}

type intakeRequest struct {
	Name             string    `json:"name"`
	CategoryID       uuid.UUID `json:"category_id"`
	Quantity         int       `json:"quantity"`
	ReplacementValue *int64    `json:"replacement_value"`
	DailyRentalRate  *int64    `json:"daily_rental_rate"`
}

func (h *Handler) intake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	g, err := h.svc.Intake(r.Context(), inventory.IntakeParams{
		Name:             req.Name,
		CategoryID:       req.CategoryID,
		Quantity:         req.Quantity,
		ReplacementValue: req.ReplacementValue,
		DailyRentalRate:  req.DailyRentalRate,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toGroupResponse(g))
}

type intakeExistingRequest struct {
	GroupID  uuid.UUID `json:"group_id"`
	Quantity int       `json:"quantity"`
}

func (h *Handler) intakeExisting(w http.ResponseWriter, r *http.Request) {
	var req intakeExistingRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	g, err := h.svc.IntakeExisting(r.Context(), req.GroupID, req.Quantity)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toGroupResponse(g))
}

func (h *Handler) completeRepair(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	t, err := h.svc.CompleteRepair(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toToolResponse(t))
}

type valueRequest struct {
	Value *int64 `json:"value"`
}

func (h *Handler) updateReplacementValue(w http.ResponseWriter, r *http.Request) {
	id, req, err := groupValue(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if req.Value == nil {
		respond.Status(w, http.StatusBadRequest, "value is required")
		return
	}

	g, err := h.svc.UpdateReplacementValue(r.Context(), id, *req.Value)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toGroupResponse(g))
}

// updateDailyRentalRate accepts a null value, which falls back to the global rate.
func (h *Handler) updateDailyRentalRate(w http.ResponseWriter, r *http.Request) {
	id, req, err := groupValue(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	g, err := h.svc.UpdateDailyRentalRate(r.Context(), id, req.Value)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toGroupResponse(g))
}

func groupValue(r *http.Request) (uuid.UUID, valueRequest, error) {
	var req valueRequest

	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		return uuid.Nil, req, err
	}

	if err := respond.Decode(r, &req); err != nil {
		return uuid.Nil, req, err
	}

	return id, req, nil
}

func (h *Handler) listTools(w http.ResponseWriter, r *http.Request) {
	var (
		filter inventory.ToolFilter
		err    error
	)

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(inventory.ToolStatus(s))
	}

	if filter.CategoryID, err = respond.UUIDQuery(r, "category_id"); err != nil {
		respond.Error(w, err)
		return
	}

	if filter.GroupID, err = respond.UUIDQuery(r, "group_id"); err != nil {
		respond.Error(w, err)
		return
	}

	tools, err := h.svc.ListTools(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]toolResponse, len(tools))
	for i, t := range tools {
		resp[i] = toToolResponse(t)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getTool(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	t, err := h.svc.GetTool(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toToolResponse(t))
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	var (
		filter inventory.GroupFilter
		err    error
	)

	filter.Name = respond.StringQuery(r, "name")

	if filter.CategoryID, err = respond.UUIDQuery(r, "category_id"); err != nil {
		respond.Error(w, err)
		return
	}

	groups, err := h.svc.ListGroups(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToGroupResponseList(groups))
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	g, err := h.svc.GetGroup(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toGroupResponse(g))
}
