package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/toolrent/cmd/tui/internal/view"
)

func TestFormatPesos(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{amount: 0, want: "$0"},
		{amount: 950, want: "$950"},
		{amount: 12345, want: "$12.345"},
		{amount: 1234567, want: "$1.234.567"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, view.FormatPesos(tt.amount))
		})
	}
}
