package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/toolrent/internal/encoding"
)

const header = "Nombre;Categoría;Cantidad;Valor de reposición\n"

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader(t *testing.T) {
	type testCase struct {
		name  string
		input func(t *testing.T) []byte
		want  string
	}

	tests := []testCase{
		{
			name:  "utf-8 passthrough",
			input: func(*testing.T) []byte { return []byte(header + "Pala jardinera;Jardinería;2;15.000\n") },
			want:  header + "Pala jardinera;Jardinería;2;15.000\n",
		},
		{
			name: "utf-8 bom stripped",
			input: func(*testing.T) []byte {
				return append([]byte{0xEF, 0xBB, 0xBF}, header...)
			},
			want: header,
		},
		{
			name: "windows-1252",
			input: func(t *testing.T) []byte {
				b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(header))
				require.NoError(t, err)

				return b
			},
			want: header,
		},
		{
			name: "utf-16 le with bom",
			input: func(t *testing.T) []byte {
				b, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
				require.NoError(t, err)

				return b
			},
			want: header,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readAll(t, tt.input(t)))
		})
	}
}

func TestNewUTF8Reader_RuneSplitAtSniffBoundary(t *testing.T) {
	// "í" is two bytes; place it across the 4096-byte peek window.
	input := strings.Repeat("a", 4095) + "í" + "\n"

	assert.Equal(t, input, readAll(t, []byte(input)))
}
