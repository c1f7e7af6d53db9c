package export

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
	"github.com/MrJamesThe3rd/toolrent/internal/http/respond"
	"github.com/MrJamesThe3rd/toolrent/internal/report"
)

type Handler struct {
	svc   *report.Service
	loans report.Loans
}

func NewHandler(svc *report.Service, loans report.Loans) *Handler {
	return &Handler{svc: svc, loans: loans}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(authn.RequireRole(authn.Staff...))
	r.Get("/{name}.xlsx", h.download)
}

// download renders into memory first so a failing report still gets a JSON error.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	name := report.Name(chi.URLParam(r, "name"))

	p, err := parseParams(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Write(r.Context(), name, p, &buf); err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+report.Filename(name, h.loans.Today()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write report", "report", name, "error", err)
	}
}

func parseParams(r *http.Request) (report.Params, error) {
	var (
		p   report.Params
		err error
	)

	if p.From, err = respond.DateQuery(r, "start_date"); err != nil {
		return p, err
	}

	if p.To, err = respond.DateQuery(r, "end_date"); err != nil {
		return p, err
	}

	if p.Limit, err = respond.IntQuery(r, "limit"); err != nil {
		return p, err
	}

	if p.ToolID, err = respond.UUIDQuery(r, "tool_id"); err != nil {
		return p, err
	}

	if p.GroupID, err = respond.UUIDQuery(r, "group_id"); err != nil {
		return p, err
	}

	return p, nil
}
