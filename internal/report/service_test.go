package report_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
	"github.com/MrJamesThe3rd/toolrent/internal/report"
)

var today = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

type mocks struct {
	loans  *report.MockLoans
	fines  *report.MockFines
	kardex *report.MockMovements
}

func newService(t *testing.T) (*report.Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		loans:  report.NewMockLoans(ctrl),
		fines:  report.NewMockFines(ctrl),
		kardex: report.NewMockMovements(ctrl),
	}

	return report.NewService(m.loans, m.fines, m.kardex), m
}

func rows(t *testing.T, svc *report.Service, name report.Name, p report.Params, sheet string) [][]string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, svc.Write(context.Background(), name, p, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(sheet)
	require.NoError(t, err)

	return got
}

func TestService_Write(t *testing.T) {
	type testCase struct {
		name      string
		report    report.Name
		params    report.Params
		sheet     string
		setupMock func(m mocks)
		want      [][]string
	}

	from := today.AddDate(0, 0, -30)
	toolID := uuid.New()

	tests := []testCase{
		{
			name:   "active loans label overdue rows",
			report: report.ActiveLoans,
			params: report.Params{From: &from},
			sheet:  "Préstamos activos",
			setupMock: func(m mocks) {
				id := uuid.MustParse("7d0f1a0e-5b7f-4c38-9a57-bb6c2f1d0a01")
				m.loans.EXPECT().ActiveLoans(gomock.Any(), &from, (*time.Time)(nil)).Return([]*loan.Loan{
					{
						ID:           id,
						CustomerName: "Ana Rojas",
						CustomerRUT:  "12.345.678-5",
						ToolName:     "Taladro",
						Category:     "Herramientas eléctricas",
						LoanDate:     today.AddDate(0, 0, -5),
						ReturnDate:   today.AddDate(0, 0, -1),
						Status:       loan.StatusActive,
						LoanValue:    12000,
					},
				}, nil)
				m.loans.EXPECT().Today().Return(today)
			},
			want: [][]string{
				{"ID", "Cliente", "RUT", "Herramienta", "Categoría", "Fecha préstamo", "Fecha devolución", "Estado", "Valor"},
				{"7d0f1a0e-5b7f-4c38-9a57-bb6c2f1d0a01", "Ana Rojas", "12.345.678-5", "Taladro", "Herramientas eléctricas", "05-06-2025", "09-06-2025", "vencido", "12000"},
			},
		},
		{
			name:   "ranking is numbered",
			report: report.Ranking,
			sheet:  "Ranking",
			setupMock: func(m mocks) {
				m.loans.EXPECT().Ranking(gomock.Any(), nil, nil, 0).Return([]*loan.RankingEntry{
					{Name: "Taladro", Category: "Herramientas eléctricas", Loans: 7},
					{Name: "Pala", Category: "Jardinería", Loans: 3},
				}, nil)
			},
			want: [][]string{
				{"#", "Herramienta", "Categoría", "Préstamos"},
				{"1", "Taladro", "Herramientas eléctricas", "7"},
				{"2", "Pala", "Jardinería", "3"},
			},
		},
		{
			name:   "delinquent customers",
			report: report.Delinquent,
			sheet:  "Clientes con atrasos",
			setupMock: func(m mocks) {
				m.fines.EXPECT().DelinquentCustomers(gomock.Any()).Return([]*fine.DelinquentCustomer{
					{Name: "Luis Soto", RUT: "9.876.543-3", UnpaidFines: 2, UnpaidTotal: 6000},
				}, nil)
			},
			want: [][]string{
				{"Cliente", "RUT", "Multas impagas", "Total adeudado"},
				{"Luis Soto", "9.876.543-3", "2", "6000"},
			},
		},
		{
			name:   "kardex filtered by tool",
			report: report.Kardex,
			params: report.Params{ToolID: &toolID},
			sheet:  "Kardex",
			setupMock: func(m mocks) {
				m.kardex.EXPECT().ListMovements(gomock.Any(), inventory.MovementFilter{ToolID: &toolID}).Return([]*inventory.Movement{
					{Type: inventory.MovementLoan, Date: today.Add(10 * time.Hour), ToolID: toolID, ToolName: "Taladro", ResponsibleUser: "ana", AffectedAmount: -1},
				}, nil)
			},
			want: [][]string{
				{"Fecha", "Tipo", "Herramienta", "Unidad", "Usuario", "Cantidad"},
				{"10-06-2025 10:00", "préstamo", "Taladro", toolID.String(), "ana", "-1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			assert.Equal(t, tt.want, rows(t, svc, tt.report, tt.params, tt.sheet))
		})
	}
}

func TestService_Build_Errors(t *testing.T) {
	svc, m := newService(t)

	_, err := svc.Build(context.Background(), "payroll", report.Params{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	m.loans.EXPECT().RepairQueue(gomock.Any()).Return(nil, errors.New("db down"))

	_, err = svc.Build(context.Background(), report.RepairQueue, report.Params{})
	assert.EqualError(t, err, "loading repair-queue: db down")
}

func TestService_Export(t *testing.T) {
	svc, m := newService(t)
	dir := filepath.Join(t.TempDir(), "out")

	m.loans.EXPECT().Today().Return(today)
	m.loans.EXPECT().RepairQueue(gomock.Any()).Return([]*loan.RepairItem{}, nil)
	m.fines.EXPECT().DelinquentCustomers(gomock.Any()).Return(nil, nil)

	paths, err := svc.Export(context.Background(), []report.Name{report.RepairQueue, report.Delinquent}, report.Params{}, dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "repair-queue_20250610.xlsx"),
		filepath.Join(dir, "delinquent_20250610.xlsx"),
	}, paths)

	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}
