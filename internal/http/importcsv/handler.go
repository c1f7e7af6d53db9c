package importcsv

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/http/respond"
	"github.com/MrJamesThe3rd/toolrent/internal/http/tool"
	"github.com/MrJamesThe3rd/toolrent/internal/importer"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

// Routes expects to be mounted inside an admin-only group.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.importCSV)
	r.Post("/import/preview", h.preview)
}

type rowDTO struct {
	Line             int    `json:"line"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Quantity         int    `json:"quantity"`
	ReplacementValue *int64 `json:"replacement_value"`
	DailyRentalRate  *int64 `json:"daily_rental_rate"`
}

type importSuccessResponse struct {
	Imported int                  `json:"imported"`
	Groups   []tool.GroupResponse `json:"groups"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	format, file, err := upload(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	defer file.Close()

	groups, err := h.importSvc.Import(r.Context(), format, file)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importSuccessResponse{
		Imported: len(groups),
		Groups:   tool.ToGroupResponseList(groups),
	})
}

// preview parses the upload without touching the inventory.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	format, file, err := upload(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(format, file)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toRowDTOs(rows))
}

func upload(r *http.Request) (importer.Format, multipart.File, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", nil, apperr.Validation("file", "failed to parse form: "+err.Error())
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return "", nil, apperr.Validation("file", "file field is required")
	}

	return format, file, nil
}

func toRowDTOs(rows []inventory.ImportRow) []rowDTO {
	resp := make([]rowDTO, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, rowDTO{
			Line:             row.Line,
			Name:             row.Name,
			Category:         row.Category,
			Quantity:         row.Quantity,
			ReplacementValue: row.ReplacementValue,
			DailyRentalRate:  row.DailyRentalRate,
		})
	}

	return resp
}
