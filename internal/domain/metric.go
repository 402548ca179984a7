package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueType define o tipo de valor armazenado para uma métrica
type ValueType string

const (
	ValueTypeInteger    ValueType = "integer"
	ValueTypeCurrency   ValueType = "currency"
	ValueTypePercentage ValueType = "percentage"
	ValueTypeRatio      ValueType = "ratio"
	ValueTypeString     ValueType = "string"
	ValueTypeDate       ValueType = "date"
)

// MetricDefinition é a definição de catálogo de uma métrica: nome, tipo de
// valor e a qual tipo de entidade/produto de anúncio ela se aplica.
// Imutável após a criação, exceto correção administrativa.
type MetricDefinition struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	EntityType EntityType `json:"entity_type"`
	AdTypeID   AdTypeID   `json:"ad_type_id"`
	ValueType  ValueType  `json:"value_type"`
}

// MetricValue é a união etiquetada de valores de métrica: exatamente uma
// variante (numérica, texto ou data) é válida, selecionada por Type.
// Substitui as três tabelas físicas de valores por um conjunto de colunas
// tipadas com discriminador.
type MetricValue struct {
	Type     ValueType  `json:"type"`
	Numeric  float64    `json:"numeric,omitempty"`
	Currency string     `json:"currency,omitempty"`
	Text     string     `json:"text,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// NumericValue cria um valor numérico com o tipo de formatação informado
func NumericValue(t ValueType, v float64, currency string) MetricValue {
	return MetricValue{Type: t, Numeric: v, Currency: currency}
}

// TextValue cria um valor de texto
func TextValue(v string) MetricValue {
	return MetricValue{Type: ValueTypeString, Text: v}
}

// DateValue cria um valor de data
func DateValue(v time.Time) MetricValue {
	return MetricValue{Type: ValueTypeDate, Date: &v}
}

// Format renderiza o valor para exibição conforme o tipo da métrica:
// moeda com duas casas e o código da moeda, percentual multiplicado por 100,
// ratio com sufixo "x", inteiro com separador de milhar e o padrão numérico
// com quatro casas decimais.
func (v MetricValue) Format() string {
	switch v.Type {
	case ValueTypeCurrency:
		if v.Currency == "" {
			return fmt.Sprintf("%.2f", v.Numeric)
		}
		return fmt.Sprintf("%.2f %s", v.Numeric, v.Currency)
	case ValueTypePercentage:
		return fmt.Sprintf("%.2f%%", v.Numeric*100)
	case ValueTypeRatio:
		return fmt.Sprintf("%.2fx", v.Numeric)
	case ValueTypeInteger:
		return groupThousands(int64(v.Numeric))
	case ValueTypeString:
		return v.Text
	case ValueTypeDate:
		if v.Date == nil {
			return ""
		}
		return v.Date.Format(time.DateOnly)
	default:
		return fmt.Sprintf("%.4f", v.Numeric)
	}
}

// groupThousands formata um inteiro com separador de milhar
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(digit)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
