package domain

import (
	"errors"
	"fmt"
)

// UnknownMetricError indica que o catálogo não conhece a métrica para o tipo
// de entidade informado. Fatal para a gravação individual, nunca para o lote.
type UnknownMetricError struct {
	Metric     string
	EntityType EntityType
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("métrica desconhecida %q para o tipo de entidade %q", e.Metric, e.EntityType)
}

// IsUnknownMetric verifica se o erro é um UnknownMetricError
func IsUnknownMetric(err error) bool {
	var target *UnknownMetricError
	return errors.As(err, &target)
}

// ExternalSyncError indica falha de transporte ou HTTP em uma chamada à API
// externa. É registrado e devolvido ao chamador, mas nunca reverte o estado
// local: a mutação local é a fonte de verdade.
type ExternalSyncError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ExternalSyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("falha de sincronização externa: %v", e.Err)
	}
	return fmt.Sprintf("falha de sincronização externa: status %d, corpo: %s", e.StatusCode, e.Body)
}

func (e *ExternalSyncError) Unwrap() error {
	return e.Err
}

// IsExternalSync verifica se o erro é um ExternalSyncError
func IsExternalSync(err error) bool {
	var target *ExternalSyncError
	return errors.As(err, &target)
}

// ReportGenerationError indica que as tentativas de geração do relatório se
// esgotaram ou que o resultado não pôde ser interpretado.
type ReportGenerationError struct {
	ReportType string
	Attempts   int
	Err        error
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("falha ao gerar relatório %q após %d tentativas: %v", e.ReportType, e.Attempts, e.Err)
}

func (e *ReportGenerationError) Unwrap() error {
	return e.Err
}

// ValidationError indica entrada de filtro/ordenação malformada, rejeitada
// antes de qualquer consulta ser executada.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entrada inválida em %q: %s", e.Field, e.Message)
}

// IsValidation verifica se o erro é um ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
