package utils

import "math"

// RoundTo arredonda f para a quantidade de casas decimais informada.
// NaN e infinitos são devolvidos sem alteração.
func RoundTo(f float64, places int) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}

	pow := math.Pow10(places)
	return math.Round(f*pow) / pow
}

// RoundRevenue arredonda valores em USD para centavos
func RoundRevenue(f float64) float64 {
	return RoundTo(f, 2)
}
