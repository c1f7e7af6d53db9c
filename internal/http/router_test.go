package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/app"
	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	toolrentHttp "github.com/MrJamesThe3rd/toolrent/internal/http"
	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
	"github.com/MrJamesThe3rd/toolrent/internal/memstore"
	"github.com/MrJamesThe3rd/toolrent/internal/rate"
	"github.com/MrJamesThe3rd/toolrent/internal/report"
)

var names = rate.Names{
	DailyRental:      "tarifa diaria de arriendo",
	ReplacementValue: "valor de reposición",
	LateFee:          "tarifa diaria de multa",
}

type api struct {
	t       *testing.T
	now     time.Time
	handler http.Handler
	token   string
}

func newAPI(t *testing.T, verifier authn.Verifier) *api {
	t.Helper()

	a := &api{t: t, now: time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)}
	clk := clock.Clock(func() time.Time { return a.now })

	store := memstore.New(names.LateFee, 2000, memstore.WithClock(clk))
	svcs := app.NewServices(app.Memory(store), app.Options{Names: names, Clock: clk})
	a.handler = toolrentHttp.New(toolrentHttp.NewHandlers(svcs), verifier, []string{"http://localhost:5173"})

	return a
}

func (a *api) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func (a *api) mustDo(method, path string, body any, wantStatus int) map[string]any {
	a.t.Helper()

	rec := a.do(method, path, body)
	require.Equal(a.t, wantStatus, rec.Code, rec.Body.String())

	return decode[map[string]any](a.t, rec)
}

func (a *api) categoryID(name string) string {
	a.t.Helper()

	rec := a.do(http.MethodGet, "/api/v1/categories", nil)
	require.Equal(a.t, http.StatusOK, rec.Code)

	for _, c := range decode[[]map[string]any](a.t, rec) {
		if c["name"] == name {
			return c["id"].(string)
		}
	}

	a.t.Fatalf("category %q not seeded", name)

	return ""
}

func (a *api) day(offset int) string {
	return a.now.AddDate(0, 0, offset).Format(time.DateOnly)
}

func TestAPI_LateReturnLifecycle(t *testing.T) {
	a := newAPI(t, nil)

	c := a.mustDo(http.MethodPost, "/api/v1/customers", map[string]any{
		"name":  "Ana Rojas",
		"rut":   "12345678-5",
		"email": "Ana@Example.cl",
		"phone": "912345678",
	}, http.StatusCreated)
	assert.Equal(t, "12.345.678-5", c["rut"])
	assert.Equal(t, "+56 9 1234 5678", c["phone"])
	assert.Equal(t, "activo", c["status"])

	g := a.mustDo(http.MethodPost, "/api/v1/tools", map[string]any{
		"name":              "Taladro percutor",
		"category_id":       a.categoryID("Herramientas eléctricas"),
		"quantity":          2,
		"replacement_value": 90000,
		"daily_rental_rate": 3000,
	}, http.StatusCreated)
	assert.EqualValues(t, 2, g["current_stock"])

	l := a.mustDo(http.MethodPost, "/api/v1/loans", map[string]any{
		"customer_id":   c["id"],
		"tool_group_id": g["id"],
		"return_date":   a.day(3),
	}, http.StatusCreated)
	assert.EqualValues(t, 9000, l["loan_value"])
	assert.Equal(t, "activo", l["status"])

	loanPath := "/api/v1/loans/" + l["id"].(string)

	a.now = a.now.AddDate(0, 0, 4)

	rec := a.do(http.MethodGet, "/api/v1/loans?status=vencido", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	overdue := decode[[]map[string]any](t, rec)
	require.Len(t, overdue, 1)
	assert.Equal(t, "vencido", overdue[0]["status"])

	returned := a.mustDo(http.MethodPut, loanPath, map[string]any{"condition": "buen estado"}, http.StatusOK)
	assert.Equal(t, "multa pendiente", returned["status"])

	rec = a.do(http.MethodGet, "/api/v1/fines?loan_id="+l["id"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fines := decode[[]map[string]any](t, rec)
	require.Len(t, fines, 1)
	assert.Equal(t, "atraso", fines[0]["type"])
	assert.EqualValues(t, 2000, fines[0]["value"])

	blocked := a.mustDo(http.MethodPost, "/api/v1/loans", map[string]any{
		"customer_id":   c["id"],
		"tool_group_id": g["id"],
		"return_date":   a.day(2),
	}, http.StatusUnprocessableEntity)
	assert.EqualValues(t, 1, blocked["unpaid_fines"])
	assert.EqualValues(t, 0, blocked["overdue_loans"])

	paid := a.mustDo(http.MethodPut, "/api/v1/fines", map[string]any{"fine_id": fines[0]["id"]}, http.StatusOK)
	assert.Equal(t, "pagada", paid["status"])

	a.mustDo(http.MethodPut, "/api/v1/fines", map[string]any{"fine_id": fines[0]["id"]}, http.StatusConflict)

	closed := a.mustDo(http.MethodGet, loanPath, nil, http.StatusOK)
	assert.Equal(t, "finalizado con multa", closed["status"])

	standing := a.mustDo(http.MethodGet, "/api/v1/customers/"+c["id"].(string)+"/standing", nil, http.StatusOK)
	assert.Equal(t, "activo", standing["status"])

	kardex := a.do(http.MethodGet, "/api/v1/kardex?group_id="+g["id"].(string), nil)
	require.Equal(t, http.StatusOK, kardex.Code)
	assert.Len(t, decode[[]map[string]any](t, kardex), 3)

	balance := a.mustDo(http.MethodGet, "/api/v1/kardex/balance/"+g["id"].(string), nil, http.StatusOK)
	assert.EqualValues(t, 2, balance["balance"])
}

func TestAPI_DamageAssessment(t *testing.T) {
	a := newAPI(t, nil)

	c := a.mustDo(http.MethodPost, "/api/v1/customers", map[string]any{
		"name": "Luis Soto", "rut": "9.876.543-3", "email": "luis@example.cl", "phone": "+56987654321",
	}, http.StatusCreated)

	g := a.mustDo(http.MethodPost, "/api/v1/tools", map[string]any{
		"name": "Sierra circular", "category_id": a.categoryID("Herramientas eléctricas"),
		"quantity": 1, "replacement_value": 120000, "daily_rental_rate": 5000,
	}, http.StatusCreated)

	l := a.mustDo(http.MethodPost, "/api/v1/loans", map[string]any{
		"customer_id": c["id"], "tool_group_id": g["id"], "return_date": a.day(2),
	}, http.StatusCreated)
	loanID := l["id"].(string)

	pending := a.mustDo(http.MethodPut, "/api/v1/loans/"+loanID, map[string]any{"condition": "dañada"}, http.StatusOK)
	assert.Equal(t, "evaluación pendiente", pending["status"])

	rec := a.do(http.MethodGet, "/api/v1/loans/reports/repair-queue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	assessed := a.mustDo(http.MethodPost, "/api/v1/fines/"+loanID, nil, http.StatusCreated)
	assert.Equal(t, "multa pendiente", assessed["loan_status"])

	fine := assessed["fine"].(map[string]any)
	assert.Equal(t, "daño irreparable", fine["type"])
	assert.EqualValues(t, 120000, fine["value"])

	group := a.mustDo(http.MethodGet, "/api/v1/tools/groups/"+g["id"].(string), nil, http.StatusOK)
	assert.EqualValues(t, 0, group["total_tools"])
	assert.EqualValues(t, 0, group["current_stock"])

	a.mustDo(http.MethodPost, "/api/v1/fines/minorDamage/"+loanID, map[string]any{"amount": 5000}, http.StatusConflict)
}

func TestAPI_Errors(t *testing.T) {
	a := newAPI(t, nil)

	type testCase struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantField  string
	}

	tests := []testCase{
		{
			name:       "bad return date",
			method:     http.MethodPost,
			path:       "/api/v1/loans",
			body:       map[string]any{"return_date": "10/05/2025"},
			wantStatus: http.StatusBadRequest,
			wantField:  "return_date",
		},
		{
			name:       "invalid rut",
			method:     http.MethodPost,
			path:       "/api/v1/customers",
			body:       map[string]any{"name": "X", "rut": "12.345.678-9", "email": "x@example.cl", "phone": "912345678"},
			wantStatus: http.StatusBadRequest,
			wantField:  "rut",
		},
		{
			name:       "rate out of range",
			method:     http.MethodPost,
			path:       "/api/v1/rates",
			body:       map[string]any{"name": "tarifa diaria de arriendo", "daily_rate_value": 100},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown loan",
			method:     http.MethodGet,
			path:       "/api/v1/loans/6f1c2d4e-0000-4000-8000-000000000000",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed id",
			method:     http.MethodGet,
			path:       "/api/v1/fines/not-a-uuid",
			wantStatus: http.StatusBadRequest,
			wantField:  "id",
		},
		{
			name:       "unknown report",
			method:     http.MethodGet,
			path:       "/api/v1/reports/payroll.xlsx",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "duplicate category",
			method:     http.MethodPost,
			path:       "/api/v1/categories",
			body:       map[string]any{"name": "Jardinería"},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			body := decode[map[string]any](t, rec)
			assert.NotEmpty(t, body["error"])

			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, body["field"])
			}
		})
	}
}

func TestAPI_ReportDownload(t *testing.T) {
	a := newAPI(t, nil)

	rec := a.do(http.MethodGet, "/api/v1/reports/ranking.xlsx?start_date=2025-05-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=ranking_20250505.xlsx", rec.Header().Get("Content-Disposition"))
	assert.NotZero(t, rec.Body.Len())
}

func TestAPI_ImportCSV(t *testing.T) {
	a := newAPI(t, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "inventario.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Nombre;Categoría;Cantidad;Valor de reposición\nCarretilla;Construcción;3;45.000\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, resp["imported"])

	rec = a.do(http.MethodGet, "/api/v1/tools/groups?name=Carretilla", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	groups := decode[[]map[string]any](t, rec)
	require.Len(t, groups, 1)
	assert.EqualValues(t, 3, groups[0]["current_stock"])
}

func TestAPI_Roles(t *testing.T) {
	const secret = "router-secret"

	v, err := auth.NewVerifier(secret, "", "")
	require.NoError(t, err)

	a := newAPI(t, v)

	sign := func(roles ...string) string {
		c := auth.Claims{PreferredUsername: "leo"}
		c.RealmAccess.Roles = roles
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))

		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)

		return s
	}

	type testCase struct {
		name       string
		token      string
		method     string
		path       string
		body       any
		wantStatus int
	}

	tests := []testCase{
		{name: "anonymous", method: http.MethodGet, path: "/api/v1/tools", wantStatus: http.StatusUnauthorized},
		{name: "employee reads tools", token: sign("EMPLOYEE"), method: http.MethodGet, path: "/api/v1/tools", wantStatus: http.StatusOK},
		{
			name: "employee cannot intake", token: sign("EMPLOYEE"), method: http.MethodPost, path: "/api/v1/tools",
			body: map[string]any{"name": "Pala"}, wantStatus: http.StatusForbidden,
		},
		{
			name: "employee cannot pay fines", token: sign("EMPLOYEE"), method: http.MethodPut, path: "/api/v1/fines",
			body: map[string]any{"fine_id": "6f1c2d4e-0000-4000-8000-000000000000"}, wantStatus: http.StatusForbidden,
		},
		{
			name: "employee creates loans", token: sign("EMPLOYEE"), method: http.MethodPost, path: "/api/v1/loans",
			body: map[string]any{"return_date": "2025-05-10"}, wantStatus: http.StatusBadRequest,
		},
		{
			name: "admin pays fines", token: sign("ADMIN"), method: http.MethodPut, path: "/api/v1/fines",
			body: map[string]any{"fine_id": "6f1c2d4e-0000-4000-8000-000000000000"}, wantStatus: http.StatusNotFound,
		},
		{name: "employee exports", token: sign("EMPLOYEE"), method: http.MethodGet, path: "/api/v1/reports/delinquent.xlsx", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.token = tt.token
			rec := a.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
