package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCedula(t *testing.T) {
	tests := []struct {
		name   string
		cedula string
		want   bool
	}{
		{"cedula valida", "1710034065", true},
		{"digito verificador incorrecto", "1710034064", false},
		{"provincia inexistente", "9910034065", false},
		{"tercer digito invalido", "1780034065", false},
		{"muy corta", "171003406", false},
		{"con letras", "17100340a5", false},
		{"vacia", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCedula(tt.cedula))
		})
	}
}
