package service

import (
	"math"
	"time"
)

const (
	// Porcentaje del subtotal cobrado como depósito al crear el alquiler.
	depositRate = 0.30
	// Porcentaje del valor del vehículo cobrado por cada día de atraso.
	lateDailyRate = 0.05
)

// partPenaltyPct maps inspected part names to the percentage of the
// vehicle's value charged when that part comes back damaged. Unknown
// parts charge nothing.
var partPenaltyPct = map[string]float64{
	"Parabrisas":  6,
	"Puerta":      5,
	"Capo":        5,
	"Parachoques": 4,
	"Pintura":     4,
	"Llanta":      3,
	"Asiento":     3,
	"Espejo":      2,
	"Faro":        2,
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// rentalDays counts whole days between the two dates, rounding any partial
// day up. A rental never lasts less than one day.
func rentalDays(inicio, fin time.Time) int {
	days := int(math.Ceil(fin.Sub(inicio).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func computeSubtotal(tarifa float64, days int) float64 {
	return round2(tarifa * float64(days))
}

func computeDeposit(subtotal float64) float64 {
	return round2(subtotal * depositRate)
}

func damagePenaltyFor(parte string, valor float64) float64 {
	pct, ok := partPenaltyPct[parte]
	if !ok {
		return 0
	}
	return round2(valor * pct / 100)
}

// latePenalty charges lateDailyRate of the vehicle's value per started day
// past the agreed end date. Returns zero when the return is on time.
func latePenalty(valor float64, fechaFin, now time.Time) (int, float64) {
	if !now.After(fechaFin) {
		return 0, 0
	}
	extraDays := int(math.Ceil(now.Sub(fechaFin).Hours() / 24))
	if extraDays <= 0 {
		return 0, 0
	}
	return extraDays, round2(float64(extraDays) * valor * lateDailyRate)
}
