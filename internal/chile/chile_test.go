package chile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/toolrent/internal/chile"
)

func TestValidRUT(t *testing.T) {
	tests := []struct {
		rut  string
		want bool
	}{
		{rut: "24.027.977-0", want: true},
		{rut: "19.285.394-k", want: true},
		{rut: "12345678-5", want: true},
		{rut: "7.654.321-6", want: true},
		{rut: "12.345.678-9", want: false},
		{rut: "123-4", want: false},
		{rut: "12.ABC.678-5", want: false},
		{rut: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.rut, func(t *testing.T) {
			assert.Equal(t, tt.want, chile.ValidRUT(tt.rut))
		})
	}
}

func TestFormatRUT(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "123456785", want: "12.345.678-5"},
		{in: "12.345.678-5", want: "12.345.678-5"},
		{in: "11111111-k", want: "11.111.111-K"},
		{in: "76543216", want: "7.654.321-6"},
		{in: "1-4", want: "14"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, chile.FormatRUT(tt.in))
		})
	}
}

func TestMobile(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{in: "+56912345678", valid: true, want: "+56 9 1234 5678"},
		{in: "56912345678", valid: true, want: "+56 9 1234 5678"},
		{in: "912345678", valid: true, want: "+56 9 1234 5678"},
		{in: "12345678", valid: true, want: "+56 9 1234 5678"},
		{in: "9-1234-5678", valid: true, want: "+56 9 1234 5678"},
		{in: "+56 9 1234 5678", valid: true, want: "+56 9 1234 5678"},
		{in: "12345", valid: false, want: "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.valid, chile.ValidMobile(tt.in))
			assert.Equal(t, tt.want, chile.FormatMobile(tt.in))
		})
	}
}
