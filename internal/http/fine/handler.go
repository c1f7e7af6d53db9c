package fine

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
	"github.com/MrJamesThe3rd/toolrent/internal/http/respond"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
)

type Handler struct {
	fines *fine.Service
	loans *loan.Service
}

func NewHandler(fines *fine.Service, loans *loan.Service) *Handler {
	return &Handler{fines: fines, loans: loans}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireRole(authn.Staff...))
		r.Get("/", h.list)
		r.Get("/reports/delinquent", h.delinquent)
		r.Get("/{id}", h.get)
	})

	r.Group(func(r chi.Router) {
		r.Use(authn.RequireRole(auth.RoleAdmin))
		r.Post("/minorDamage/{loanId}", h.minorDamage)
		r.Post("/{loanId}", h.irreparableDamage)
		r.Put("/", h.pay)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		filter fine.ListFilter
		err    error
	)

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(fine.Status(s))
	}

	if s := r.URL.Query().Get("type"); s != "" {
		filter.Type = new(fine.Type(s))
	}

	filter.RUT = respond.StringQuery(r, "rut")

	if filter.CustomerID, err = respond.UUIDQuery(r, "customer_id"); err != nil {
		respond.Error(w, err)
		return
	}

	if filter.LoanID, err = respond.UUIDQuery(r, "loan_id"); err != nil {
		respond.Error(w, err)
		return
	}

	fines, err := h.fines.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(fines))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	f, err := h.fines.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(f))
}

func (h *Handler) delinquent(w http.ResponseWriter, r *http.Request) {
	customers, err := h.fines.DelinquentCustomers(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]delinquentResponse, len(customers))
	for i, c := range customers {
		resp[i] = delinquentResponse{
			CustomerID:  c.CustomerID,
			Name:        c.Name,
			RUT:         c.RUT,
			UnpaidFines: c.UnpaidFines,
			UnpaidTotal: c.UnpaidTotal,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type minorDamageRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) minorDamage(w http.ResponseWriter, r *http.Request) {
	loanID, err := respond.UUIDParam(r, "loanId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req minorDamageRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	f, l, err := h.loans.AssessMinorDamage(r.Context(), loanID, req.Amount)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toAssessmentResponse(f, l))
}

func (h *Handler) irreparableDamage(w http.ResponseWriter, r *http.Request) {
	loanID, err := respond.UUIDParam(r, "loanId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	f, l, err := h.loans.AssessIrreparableDamage(r.Context(), loanID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toAssessmentResponse(f, l))
}

type payRequest struct {
	FineID uuid.UUID `json:"fine_id"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	if req.FineID == uuid.Nil {
		respond.Error(w, apperr.Validation("fine_id", "is required"))
		return
	}

	f, err := h.fines.Pay(r.Context(), req.FineID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(f))
}
