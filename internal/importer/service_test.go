package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/importer"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/memstore"
)

func TestService_Import(t *testing.T) {
	store := memstore.New("", 0)
	inv := inventory.NewService(store, store)
	svc := importer.NewService(inv)
	ctx := context.Background()

	csv := "Nombre;Categoría;Cantidad;Valor de reposición\n" +
		"Sierra circular;Herramientas eléctricas;2;120.000\n" +
		"Nivel láser;Medición;1;60.000\n"

	groups, err := svc.Import(ctx, importer.FormatCSV, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Sierra circular", groups[0].Name)
	assert.Equal(t, 2, groups[0].CurrentStock)

	tools, err := inv.ListTools(ctx, inventory.ToolFilter{GroupID: &groups[1].ID})
	require.NoError(t, err)
	assert.Len(t, tools, 1)
}

func TestService_Import_Errors(t *testing.T) {
	type args struct {
		format importer.Format
		csv    string
	}

	type testCase struct {
		name string
		args args
	}

	tests := []testCase{
		{
			name: "unknown format",
			args: args{format: "xlsx", csv: "Nombre;Categoría;Cantidad;Valor de reposición\n"},
		},
		{
			name: "header only",
			args: args{format: importer.FormatCSV, csv: "Nombre;Categoría;Cantidad;Valor de reposición\n"},
		},
		{
			name: "unknown category rolls back",
			args: args{format: importer.FormatCSV, csv: "Nombre;Categoría;Cantidad;Valor de reposición\nPala;Jardinería;1;20.000\nRadio;Audio;1;20.000\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New("", 0)
			inv := inventory.NewService(store, store)

			_, err := importer.NewService(inv).Import(context.Background(), tt.args.format, strings.NewReader(tt.args.csv))
			assert.ErrorIs(t, err, apperr.ErrValidation)

			groups, err := inv.ListGroups(context.Background(), inventory.GroupFilter{})
			require.NoError(t, err)
			assert.Empty(t, groups)
		})
	}
}
