package domain

// EntityType identifica o tipo de entidade de anúncio espelhada localmente
type EntityType string

const (
	EntityTypeCampaign        EntityType = "campaign"
	EntityTypeAdGroup         EntityType = "adGroup"
	EntityTypeKeyword         EntityType = "keyword"
	EntityTypeNegativeKeyword EntityType = "negativeKeyword"
	EntityTypeProductAd       EntityType = "productAd"
	EntityTypeTarget          EntityType = "target"
	EntityTypeNegativeTarget  EntityType = "negativeTarget"
)

// AdTypeID identifica o produto de anúncio da Amazon Ads
type AdTypeID int

const (
	AdTypeSponsoredProducts AdTypeID = 1
	AdTypeSponsoredBrands   AdTypeID = 2
	AdTypeSponsoredDisplay  AdTypeID = 3
)

// AdProduct retorna o código do produto de anúncio usado pela API externa
func (a AdTypeID) AdProduct() string {
	switch a {
	case AdTypeSponsoredBrands:
		return "SPONSORED_BRANDS"
	case AdTypeSponsoredDisplay:
		return "SPONSORED_DISPLAY"
	default:
		return "SPONSORED_PRODUCTS"
	}
}

// ValidEntityType verifica se o tipo informado é um tipo de entidade conhecido
func ValidEntityType(t string) bool {
	switch EntityType(t) {
	case EntityTypeCampaign, EntityTypeAdGroup, EntityTypeKeyword,
		EntityTypeNegativeKeyword, EntityTypeProductAd,
		EntityTypeTarget, EntityTypeNegativeTarget:
		return true
	}
	return false
}

// SyncEntity é a visão mínima de uma linha local participante de uma
// chamada de sincronização com a API externa
type SyncEntity struct {
	LocalID    string
	EntityType EntityType
	ExternalID *string
}

// CompanyPolicy carrega o escopo de empresa resolvido na borda da requisição.
// É resolvido uma única vez a partir das claims e repassado adiante, nunca
// rederivado no meio do pipeline.
type CompanyPolicy struct {
	CompanyID int64
}
