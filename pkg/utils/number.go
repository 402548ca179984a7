package utils

import (
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// CleanNumeric remove símbolos de moeda, separadores de milhar e espaços
// de uma célula numérica vinda de relatório antes da conversão
func CleanNumeric(raw string) string {
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "").Replace(raw)
	return strings.TrimSpace(cleaned)
}

// ParseNumeric converte uma célula de relatório em float64 após a limpeza
func ParseNumeric(raw string) (float64, error) {
	return strconv.ParseFloat(CleanNumeric(raw), 64)
}

// ParsePercentage converte uma célula percentual em fração: "12.5%" vira
// 0.125. O valor é armazenado como fração e multiplicado por 100 de volta
// na formatação de exibição.
func ParsePercentage(raw string) (float64, error) {
	v, err := ParseNumeric(raw)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}
