package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name   string
		inicio time.Time
		fin    time.Time
		want   int
	}{
		{"nueve dias completos", date(1), date(10), 9},
		{"dia parcial redondea hacia arriba", date(1), date(1).Add(30 * time.Hour), 2},
		{"menos de un dia cobra uno", date(1), date(1).Add(3 * time.Hour), 1},
		{"exactamente un dia", date(1), date(2), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rentalDays(tt.inicio, tt.fin))
		})
	}
}

func TestComputeDeposit(t *testing.T) {
	assert.Equal(t, 270.0, computeDeposit(900))
	assert.Equal(t, 30.0, computeDeposit(100))
	assert.Equal(t, 0.3, computeDeposit(1))
}

func TestDamagePenalty(t *testing.T) {
	valor := 20000.0
	assert.Equal(t, 1200.0, damagePenaltyFor("Parabrisas", valor))
	assert.Equal(t, 1000.0, damagePenaltyFor("Puerta", valor))
	assert.Equal(t, 400.0, damagePenaltyFor("Faro", valor))
	// Unknown parts never charge.
	assert.Equal(t, 0.0, damagePenaltyFor("Antena", valor))
}

func TestLatePenalty(t *testing.T) {
	valor := 20000.0
	fin := date(10)

	t.Run("devolucion puntual", func(t *testing.T) {
		extra, amount := latePenalty(valor, fin, fin)
		assert.Equal(t, 0, extra)
		assert.Equal(t, 0.0, amount)
	})

	t.Run("devolucion anticipada", func(t *testing.T) {
		extra, amount := latePenalty(valor, fin, date(8))
		assert.Equal(t, 0, extra)
		assert.Equal(t, 0.0, amount)
	})

	t.Run("tres dias de atraso", func(t *testing.T) {
		extra, amount := latePenalty(valor, fin, date(13))
		assert.Equal(t, 3, extra)
		assert.Equal(t, 3000.0, amount)
	})

	t.Run("atraso parcial cuenta dia completo", func(t *testing.T) {
		extra, amount := latePenalty(valor, fin, fin.Add(2*time.Hour))
		assert.Equal(t, 1, extra)
		assert.Equal(t, 1000.0, amount)
	})
}

// Caso completo: auto de 20000, tarifa 100/día, del 1 al 10 de enero,
// devuelto tres días tarde con una puerta dañada.
func TestFullPricingExample(t *testing.T) {
	valor := 20000.0
	tarifa := 100.0
	inicio, fin := date(1), date(10)
	devolucion := date(13)

	days := rentalDays(inicio, fin)
	assert.Equal(t, 9, days)

	subtotal := computeSubtotal(tarifa, days)
	assert.Equal(t, 900.0, subtotal)

	deposito := computeDeposit(subtotal)
	assert.Equal(t, 270.0, deposito)

	danios := damagePenaltyFor("Puerta", valor)
	assert.Equal(t, 1000.0, danios)

	_, dias := latePenalty(valor, fin, devolucion)
	assert.Equal(t, 3000.0, dias)

	total := round2(subtotal + danios + dias)
	assert.Equal(t, 4900.0, total)
	assert.Equal(t, 4630.0, round2(total-deposito))
}
