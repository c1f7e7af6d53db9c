package rate

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
	"github.com/MrJamesThe3rd/toolrent/internal/http/respond"
	"github.com/MrJamesThe3rd/toolrent/internal/rate"
)

type Handler struct {
	svc *rate.Service
}

func NewHandler(svc *rate.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireRole(authn.Staff...))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})

	r.Group(func(r chi.Router) {
		r.Use(authn.RequireRole(auth.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
	})
}

type rateRequest struct {
	Name           string `json:"name"`
	DailyRateValue int64  `json:"daily_rate_value"`
}

type rateResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	DailyRateValue int64      `json:"daily_rate_value"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func toResponse(g *rate.GlobalRate) rateResponse {
	return rateResponse{
		ID:             g.ID,
		Name:           g.Name,
		DailyRateValue: g.DailyRateValue,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	g, err := h.svc.Create(r.Context(), rate.CreateParams{Name: req.Name, Value: req.DailyRateValue})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(g))
}

// update changes the value only. Rate names are fixed once created.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req rateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	g, err := h.svc.Update(r.Context(), id, req.DailyRateValue)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]rateResponse, len(rates))
	for i, g := range rates {
		resp[i] = toResponse(g)
	}

	respond.JSON(w, http.StatusOK, resp)
}
