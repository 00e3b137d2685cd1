package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Kemeja Kasual Premium", "kemeja-kasual-premium"},
		{"ALL UPPER CASE", "all-upper-case"},
		{"Sepatu Café Crème", "sepatu-cafe-creme"},
		{"Tas  Kulit (Asli)!", "tas-kulit-asli"},
		{"  --Jam Tangan--  ", "jam-tangan"},
		{"Celana 2-in-1", "celana-2-in-1"},
		{"Jaket Denim Très Chic", "jaket-denim-tres-chic"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}
