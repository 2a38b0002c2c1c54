package importing

import (
	"fmt"
	"os"

	"github.com/vfg2006/dsp-analytics-api/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultRate é a tarifa por stream (USD) das DSPs fora da tabela
const DefaultRate = 0.003

// RateTable é a tabela de tarifas médias por stream, em USD
type RateTable struct {
	Default float64            `yaml:"default"`
	Rates   map[string]float64 `yaml:"rates"`
}

// DefaultRateTable são as estimativas de mercado usadas quando nenhum arquivo é configurado
func DefaultRateTable() RateTable {
	return RateTable{
		Default: DefaultRate,
		Rates: map[string]float64{
			"Spotify":       0.003,
			"Apple Music":   0.007,
			"YouTube Music": 0.002,
			"YouTube":       0.001,
			"Amazon Music":  0.004,
			"Deezer":        0.006,
			"Tidal":         0.012,
			"SoundCloud":    0.003,
			"Pandora":       0.002,
			"Facebook":      0.004,
			"Instagram":     0.003,
			"TikTok":        0.003,
			"Snapchat":      0.002,
		},
	}
}

// LoadRateTable lê um YAML de tarifas e sobrepõe os valores à tabela base.
//
//	default: 0.003
//	rates:
//	  Spotify: 0.0035
func LoadRateTable(path string, base RateTable) (RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("erro ao ler tabela de tarifas: %w", err)
	}

	var file RateTable
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("erro ao interpretar tabela de tarifas: %w", err)
	}

	merged := RateTable{
		Default: base.Default,
		Rates:   make(map[string]float64, len(base.Rates)+len(file.Rates)),
	}
	for dsp, rate := range base.Rates {
		merged.Rates[dsp] = rate
	}
	for dsp, rate := range file.Rates {
		if rate < 0 {
			return base, fmt.Errorf("tarifa negativa para %s", dsp)
		}
		merged.Rates[dsp] = rate
	}
	if file.Default > 0 {
		merged.Default = file.Default
	}

	return merged, nil
}

// RevenueEstimator calcula a receita estimada de uma contagem de streams
type RevenueEstimator struct {
	table RateTable
}

func NewRevenueEstimator(table RateTable) *RevenueEstimator {
	return &RevenueEstimator{table: table}
}

// Rate devolve a tarifa da DSP ou a tarifa padrão
func (e *RevenueEstimator) Rate(dsp string) float64 {
	if rate, ok := e.table.Rates[dsp]; ok {
		return rate
	}
	return e.table.Default
}

// Estimate devolve streams × tarifa arredondado em duas casas
func (e *RevenueEstimator) Estimate(dsp string, streams int64) float64 {
	return utils.RoundRevenue(float64(streams) * e.Rate(dsp))
}
