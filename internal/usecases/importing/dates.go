package importing

import (
	"strconv"
	"strings"
	"time"
)

// MonthTable mapeia a abreviação do mês, em minúsculas, para o mês
type MonthTable map[string]time.Month

// PortugueseMonths é a tabela usada pelos relatórios das distribuidoras ("8 set")
func PortugueseMonths() MonthTable {
	return MonthTable{
		"jan": time.January,
		"fev": time.February,
		"mar": time.March,
		"abr": time.April,
		"mai": time.May,
		"jun": time.June,
		"jul": time.July,
		"ago": time.August,
		"set": time.September,
		"out": time.October,
		"nov": time.November,
		"dez": time.December,
	}
}

// UnknownMonthPolicy define o tratamento de abreviações fora da tabela
type UnknownMonthPolicy string

const (
	// MonthFallback usa o mês de fallback (comportamento histórico: setembro)
	MonthFallback UnknownMonthPolicy = "fallback"
	// MonthStrict rejeita o token como DateParseError
	MonthStrict UnknownMonthPolicy = "strict"
)

// DateDecoder converte tokens "<dia> <mês>" em datas de um ano informado
type DateDecoder struct {
	months   MonthTable
	policy   UnknownMonthPolicy
	fallback time.Month
}

func NewDateDecoder(months MonthTable, policy UnknownMonthPolicy, fallback time.Month) *DateDecoder {
	if policy == "" {
		policy = MonthFallback
	}
	if fallback < time.January || fallback > time.December {
		fallback = time.September
	}

	return &DateDecoder{
		months:   months,
		policy:   policy,
		fallback: fallback,
	}
}

// Decode converte o token usando o ano do chamador; o ano nunca vem do arquivo
func (d *DateDecoder) Decode(token string, year int) (time.Time, error) {
	parts := strings.Fields(token)
	if len(parts) == 0 {
		return time.Time{}, &DateParseError{Token: token, Reason: "token vazio"}
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, &DateParseError{Token: token, Reason: "dia não é um número inteiro"}
	}

	month := d.fallback
	if len(parts) > 1 {
		abbrev := strings.TrimSuffix(strings.ToLower(parts[1]), ".")
		known, ok := d.months[abbrev]
		switch {
		case ok:
			month = known
		case d.policy == MonthStrict:
			return time.Time{}, &DateParseError{Token: token, Reason: "mês desconhecido"}
		}
	} else if d.policy == MonthStrict {
		return time.Time{}, &DateParseError{Token: token, Reason: "mês ausente"}
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, &DateParseError{Token: token, Reason: "dia inexistente no mês"}
	}

	return date, nil
}
