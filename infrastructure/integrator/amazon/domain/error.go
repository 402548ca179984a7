package amazondomain

import "regexp"

// ErrorResponse representa a estrutura de erro da Amazon Ads API
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text retorna o texto mais descritivo disponível no erro
func (e *ErrorResponse) Text() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Message
}

// A API de relatórios responde 425 quando já existe um relatório idêntico em
// andamento, com o ID do duplicado embutido no texto do erro
var duplicateReportPattern = regexp.MustCompile(`duplicate of : ([0-9a-fA-F-]+)`)

// DuplicateReportID extrai o ID do relatório duplicado do texto de erro de
// uma resposta 425. Retorna vazio quando o padrão não está presente.
func DuplicateReportID(errorText string) string {
	matches := duplicateReportPattern.FindStringSubmatch(errorText)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}
