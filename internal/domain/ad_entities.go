package domain

import "time"

// As entidades abaixo são a visão mínima das linhas locais usada pelos
// adaptadores de sincronização para montar payloads e gravar de volta os
// IDs externos. O CRUD completo dessas tabelas vive fora deste núcleo.

// Campaign é uma campanha local espelhada na Amazon Ads
type Campaign struct {
	ID            string     `json:"id"`
	CompanyID     int64      `json:"company_id"`
	ExternalID    *string    `json:"external_id"`
	AdTypeID      AdTypeID   `json:"ad_type_id"`
	Name          string     `json:"name"`
	State         string     `json:"state"`
	TargetingType string     `json:"targeting_type"`
	DailyBudget   float64    `json:"daily_budget"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
}

// AdGroup é um grupo de anúncios pertencente a uma campanha
type AdGroup struct {
	ID         string  `json:"id"`
	CompanyID  int64   `json:"company_id"`
	ExternalID *string `json:"external_id"`
	CampaignID string  `json:"campaign_id"`
	Name       string  `json:"name"`
	State      string  `json:"state"`
	DefaultBid float64 `json:"default_bid"`
}

// Keyword é uma palavra-chave positiva de um grupo de anúncios
type Keyword struct {
	ID          string  `json:"id"`
	CompanyID   int64   `json:"company_id"`
	ExternalID  *string `json:"external_id"`
	CampaignID  string  `json:"campaign_id"`
	AdGroupID   string  `json:"ad_group_id"`
	KeywordText string  `json:"keyword_text"`
	MatchType   string  `json:"match_type"`
	State       string  `json:"state"`
	Bid         float64 `json:"bid"`
}

// NegativeKeyword é uma palavra-chave negativa de um grupo de anúncios
type NegativeKeyword struct {
	ID          string  `json:"id"`
	CompanyID   int64   `json:"company_id"`
	ExternalID  *string `json:"external_id"`
	CampaignID  string  `json:"campaign_id"`
	AdGroupID   string  `json:"ad_group_id"`
	KeywordText string  `json:"keyword_text"`
	MatchType   string  `json:"match_type"`
	State       string  `json:"state"`
}

// ProductAd é um anúncio de produto dentro de um grupo de anúncios
type ProductAd struct {
	ID         string  `json:"id"`
	CompanyID  int64   `json:"company_id"`
	ExternalID *string `json:"external_id"`
	CampaignID string  `json:"campaign_id"`
	AdGroupID  string  `json:"ad_group_id"`
	SKU        string  `json:"sku"`
	ASIN       string  `json:"asin"`
	State      string  `json:"state"`
}

// TargetingClause é uma cláusula de direcionamento de produto
type TargetingClause struct {
	ID             string             `json:"id"`
	CompanyID      int64              `json:"company_id"`
	ExternalID     *string            `json:"external_id"`
	CampaignID     string             `json:"campaign_id"`
	AdGroupID      string             `json:"ad_group_id"`
	ExpressionType string             `json:"expression_type"`
	Expression     []TargetExpression `json:"expression"`
	State          string             `json:"state"`
	Bid            float64            `json:"bid"`
}

// NegativeTargetingClause é uma cláusula de direcionamento negativa
type NegativeTargetingClause struct {
	ID         string             `json:"id"`
	CompanyID  int64              `json:"company_id"`
	ExternalID *string            `json:"external_id"`
	CampaignID string             `json:"campaign_id"`
	AdGroupID  string             `json:"ad_group_id"`
	Expression []TargetExpression `json:"expression"`
	State      string             `json:"state"`
}

// TargetExpression é um predicado de direcionamento (ex.: asinSameAs)
type TargetExpression struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}
