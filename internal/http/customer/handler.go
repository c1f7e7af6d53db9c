package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/customer"
	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
	"github.com/MrJamesThe3rd/toolrent/internal/http/respond"
)

type Handler struct {
	svc     *customer.Service
	tracker *customer.Tracker
}

func NewHandler(svc *customer.Service, tracker *customer.Tracker) *Handler {
	return &Handler{svc: svc, tracker: tracker}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireRole(authn.Staff...))
		r.Get("/", h.list)
		r.Get("/rut/{rut}", h.getByRUT)
		r.Get("/{id}", h.get)
		r.Get("/{id}/standing", h.standing)
	})

	r.Group(func(r chi.Router) {
		r.Use(authn.RequireRole(auth.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req customer.CreateParams
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req customer.UpdateParams
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := customer.ListFilter{Name: respond.StringQuery(r, "name")}

	if s := r.URL.Query().Get("status"); s != "" {
		status := customer.Status(s)
		if status != customer.StatusActive && status != customer.StatusRestricted {
			respond.Error(w, apperr.Validation("status", "must be 'activo' or 'restringido'"))
			return
		}

		filter.Status = &status
	}

	customers, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) getByRUT(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetByRUT(r.Context(), chi.URLParam(r, "rut"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

// standing re-evaluates the customer, so the answer reflects loans that
// crossed their due date since the last sweep.
func (h *Handler) standing(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	s, err := h.tracker.Evaluate(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, standingResponse{
		CustomerID:   s.CustomerID,
		Status:       s.Status,
		UnpaidFines:  s.UnpaidFines,
		OverdueLoans: s.OverdueLoans,
	})
}
