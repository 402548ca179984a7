package reporting

import (
	"fmt"

	"github.com/vfg2006/ads-performance-api/internal/domain"
)

// reportDateColumn é a coluna de data presente em todos os relatórios diários
const reportDateColumn = "date"

// reportDefinition é a configuração estática de um tipo de relatório: como
// pedi-lo à API externa e como mapear suas colunas de volta para o catálogo
// de métricas.
type reportDefinition struct {
	TypeSuffix     string
	EntityType     domain.EntityType
	GroupBy        []string
	EntityIDColumn string
	MetricColumns  map[string]string
}

// reportDefinitions é a tabela estática dos relatórios suportados. A chave é
// o nome lógico usado pelos chamadores; o reportTypeId externo é derivado do
// produto de anúncio do job.
var reportDefinitions = map[string]reportDefinition{
	"campaigns": {
		TypeSuffix:     "Campaigns",
		EntityType:     domain.EntityTypeCampaign,
		GroupBy:        []string{"campaign"},
		EntityIDColumn: "campaignId",
		MetricColumns: map[string]string{
			"impressions":      "impressions",
			"clicks":           "clicks",
			"cost":             "cost",
			"purchases7d":      "purchases7d",
			"sales7d":          "sales7d",
			"clickThroughRate": "clickThroughRate",
			"costPerClick":     "costPerClick",
		},
	},
	"adGroups": {
		TypeSuffix:     "Campaigns",
		EntityType:     domain.EntityTypeAdGroup,
		GroupBy:        []string{"adGroup"},
		EntityIDColumn: "adGroupId",
		MetricColumns: map[string]string{
			"impressions": "impressions",
			"clicks":      "clicks",
			"cost":        "cost",
			"purchases7d": "purchases7d",
			"sales7d":     "sales7d",
		},
	},
	"targeting": {
		TypeSuffix:     "Targeting",
		EntityType:     domain.EntityTypeTarget,
		GroupBy:        []string{"targeting"},
		EntityIDColumn: "targetId",
		MetricColumns: map[string]string{
			"impressions": "impressions",
			"clicks":      "clicks",
			"cost":        "cost",
			"purchases7d": "purchases7d",
			"sales7d":     "sales7d",
		},
	},
	"productAds": {
		TypeSuffix:     "AdvertisedProduct",
		EntityType:     domain.EntityTypeProductAd,
		GroupBy:        []string{"advertiser"},
		EntityIDColumn: "adId",
		MetricColumns: map[string]string{
			"impressions": "impressions",
			"clicks":      "clicks",
			"cost":        "cost",
			"purchases7d": "purchases7d",
			"sales7d":     "sales7d",
		},
	},
}

// reportColumns monta a lista de colunas pedida: identificação, data e as
// colunas de métrica mapeadas.
func (d reportDefinition) reportColumns() []string {
	columns := []string{d.EntityIDColumn, reportDateColumn}
	for column := range d.MetricColumns {
		columns = append(columns, column)
	}
	return columns
}

// externalTypeID deriva o reportTypeId externo do produto de anúncio
func (d reportDefinition) externalTypeID(adTypeID domain.AdTypeID) string {
	switch adTypeID {
	case domain.AdTypeSponsoredBrands:
		return "sb" + d.TypeSuffix
	case domain.AdTypeSponsoredDisplay:
		return "sd" + d.TypeSuffix
	default:
		return "sp" + d.TypeSuffix
	}
}

// definitionFor resolve a definição de um tipo lógico de relatório
func definitionFor(reportType string) (reportDefinition, error) {
	def, ok := reportDefinitions[reportType]
	if !ok {
		return reportDefinition{}, &domain.ValidationError{
			Field:   "report_type",
			Message: fmt.Sprintf("tipo de relatório desconhecido: %q", reportType),
		}
	}
	return def, nil
}
