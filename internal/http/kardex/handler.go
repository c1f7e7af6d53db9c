package kardex

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

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
	r.Use(authn.RequireRole(authn.Staff...))
	r.Get("/", h.list)
	r.Get("/balance/{groupId}", h.balance)
}

type movementResponse struct {
	ID              uuid.UUID              `json:"id"`
	Type            inventory.MovementType `json:"type"`
	Date            time.Time              `json:"date"`
	ResponsibleUser string                 `json:"responsible_user"`
	ToolID          uuid.UUID              `json:"tool_id"`
	GroupID         uuid.UUID              `json:"tool_group_id"`
	ToolName        string                 `json:"tool_name"`
	AffectedAmount  int                    `json:"affected_amount"`
}

type balanceResponse struct {
	GroupID uuid.UUID `json:"tool_group_id"`
	Balance int       `json:"balance"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		filter inventory.MovementFilter
		err    error
	)

	if filter.ToolID, err = respond.UUIDQuery(r, "tool_id"); err != nil {
		respond.Error(w, err)
		return
	}

	if filter.GroupID, err = respond.UUIDQuery(r, "group_id"); err != nil {
		respond.Error(w, err)
		return
	}

	if filter.StartDate, err = respond.DateQuery(r, "start_date"); err != nil {
		respond.Error(w, err)
		return
	}

	if filter.EndDate, err = respond.DateQuery(r, "end_date"); err != nil {
		respond.Error(w, err)
		return
	}

	movements, err := h.svc.ListMovements(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]movementResponse, len(movements))
	for i, m := range movements {
		resp[i] = movementResponse{
			ID:              m.ID,
			Type:            m.Type,
			Date:            m.Date,
			ResponsibleUser: m.ResponsibleUser,
			ToolID:          m.ToolID,
			GroupID:         m.GroupID,
			ToolName:        m.ToolName,
			AffectedAmount:  m.AffectedAmount,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	groupID, err := respond.UUIDParam(r, "groupId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if _, err := h.svc.GetGroup(r.Context(), groupID); err != nil {
		respond.Error(w, err)
		return
	}

	balance, err := h.svc.MovementBalance(r.Context(), groupID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, balanceResponse{GroupID: groupID, Balance: balance})
}
