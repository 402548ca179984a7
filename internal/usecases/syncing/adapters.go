package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/ads-performance-api/internal/domain"
)

// adProductPath resolve o prefixo de rota do produto de anúncio
func adProductPath(adTypeID domain.AdTypeID) string {
	switch adTypeID {
	case domain.AdTypeSponsoredBrands:
		return "/sb"
	case domain.AdTypeSponsoredDisplay:
		return "/sd"
	default:
		return "/sp"
	}
}

// Os tipos abaixo são o formato de requisição da API externa. A posição de
// cada elemento no array é a chave de correlação com o campo index dos
// arrays success/error da resposta.

type campaignRequest struct {
	Name          string  `json:"name"`
	State         string  `json:"state"`
	TargetingType string  `json:"targetingType,omitempty"`
	Budget        budget  `json:"budget"`
	StartDate     string  `json:"startDate"`
	EndDate       *string `json:"endDate,omitempty"`
}

type budget struct {
	Budget     float64 `json:"budget"`
	BudgetType string  `json:"budgetType"`
}

type adGroupRequest struct {
	CampaignID string  `json:"campaignId"`
	Name       string  `json:"name"`
	State      string  `json:"state"`
	DefaultBid float64 `json:"defaultBid"`
}

type keywordRequest struct {
	CampaignID  string  `json:"campaignId"`
	AdGroupID   string  `json:"adGroupId"`
	KeywordText string  `json:"keywordText"`
	MatchType   string  `json:"matchType"`
	State       string  `json:"state"`
	Bid         float64 `json:"bid,omitempty"`
}

type negativeKeywordRequest struct {
	CampaignID  string `json:"campaignId"`
	AdGroupID   string `json:"adGroupId"`
	KeywordText string `json:"keywordText"`
	MatchType   string `json:"matchType"`
	State       string `json:"state"`
}

type productAdRequest struct {
	CampaignID string `json:"campaignId"`
	AdGroupID  string `json:"adGroupId"`
	SKU        string `json:"sku,omitempty"`
	ASIN       string `json:"asin,omitempty"`
	State      string `json:"state"`
}

type targetExpressionRequest struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

type targetRequest struct {
	CampaignID     string                    `json:"campaignId"`
	AdGroupID      string                    `json:"adGroupId"`
	ExpressionType string                    `json:"expressionType,omitempty"`
	Expression     []targetExpressionRequest `json:"expression"`
	State          string                    `json:"state"`
	Bid            float64                   `json:"bid,omitempty"`
}

type negativeTargetRequest struct {
	CampaignID string                    `json:"campaignId"`
	AdGroupID  string                    `json:"adGroupId"`
	Expression []targetExpressionRequest `json:"expression"`
	State      string                    `json:"state"`
}

// SyncCampaigns despacha a criação das campanhas informadas
func (s *Service) SyncCampaigns(ctx context.Context, campaigns []*domain.Campaign) (*domain.BatchResult, error) {
	if len(campaigns) == 0 {
		return &domain.BatchResult{}, nil
	}

	requests := make([]campaignRequest, 0, len(campaigns))
	entities := make([]domain.SyncEntity, 0, len(campaigns))
	for _, campaign := range campaigns {
		var endDate *string
		if campaign.EndDate != nil {
			formatted := campaign.EndDate.Format(time.DateOnly)
			endDate = &formatted
		}

		requests = append(requests, campaignRequest{
			Name:          campaign.Name,
			State:         campaign.State,
			TargetingType: campaign.TargetingType,
			Budget:        budget{Budget: campaign.DailyBudget, BudgetType: "DAILY"},
			StartDate:     campaign.StartDate.Format(time.DateOnly),
			EndDate:       endDate,
		})
		entities = append(entities, domain.SyncEntity{
			LocalID:    campaign.ID,
			EntityType: domain.EntityTypeCampaign,
			ExternalID: campaign.ExternalID,
		})
	}

	adTypeID := campaigns[0].AdTypeID
	endpoint := adProductPath(adTypeID) + "/campaigns"
	payload := map[string]any{"campaigns": requests}

	return s.DispatchAndLog(ctx, endpoint, "campaign.sync", payload, entities)
}

// SyncAdGroups despacha a criação dos grupos de anúncios informados
func (s *Service) SyncAdGroups(ctx context.Context, adTypeID domain.AdTypeID, adGroups []*domain.AdGroup) (*domain.BatchResult, error) {
	if len(adGroups) == 0 {
		return &domain.BatchResult{}, nil
	}

	requests := make([]adGroupRequest, 0, len(adGroups))
	entities := make([]domain.SyncEntity, 0, len(adGroups))
	for _, adGroup := range adGroups {
		requests = append(requests, adGroupRequest{
			CampaignID: adGroup.CampaignID,
			Name:       adGroup.Name,
			State:      adGroup.State,
			DefaultBid: adGroup.DefaultBid,
		})
		entities = append(entities, domain.SyncEntity{
			LocalID:    adGroup.ID,
			EntityType: domain.EntityTypeAdGroup,
			ExternalID: adGroup.ExternalID,
		})
	}

	endpoint := adProductPath(adTypeID) + "/adGroups"
	payload := map[string]any{"adGroups": requests}

	return s.DispatchAndLog(ctx, endpoint, "adGroup.sync", payload, entities)
}

// SyncKeywords despacha a criação das palavras-chave informadas
func (s *Service) SyncKeywords(ctx context.Context, adTypeID domain.AdTypeID, keywords []*domain.Keyword) (*domain.BatchResult, error) {
	if len(keywords) == 0 {
		return &domain.BatchResult{}, nil
	}

	requests := make([]keywordRequest, 0, len(keywords))
	entities := make([]domain.SyncEntity, 0, len(keywords))
	for _, keyword := range keywords {
		requests = append(requests, keywordRequest{
			CampaignID:  keyword.CampaignID,
			AdGroupID:   keyword.AdGroupID,
			KeywordText: keyword.KeywordText,
			MatchType:   keyword.MatchType,
			State:       keyword.State,
			Bid:         keyword.Bid,
		})
		entities = append(entities, domain.SyncEntity{
			LocalID:    keyword.ID,
			EntityType: domain.EntityTypeKeyword,
			ExternalID: keyword.ExternalID,
		})
	}

	endpoint := adProductPath(adTypeID) + "/keywords"
	payload := map[string]any{"keywords": requests}

	return s.DispatchAndLog(ctx, endpoint, "keyword.sync", payload, entities)
}

// SyncNegativeKeywords despacha a criação das palavras-chave negativas
func (s *Service) SyncNegativeKeywords(ctx context.Context, adTypeID domain.AdTypeID, keywords []*domain.NegativeKeyword) (*domain.BatchResult, error) {
	if len(keywords) == 0 {
		return &domain.BatchResult{}, nil
	}

	requests := make([]negativeKeywordRequest, 0, len(keywords))
	entities := make([]domain.SyncEntity, 0, len(keywords))
	for _, keyword := range keywords {
		requests = append(requests, negativeKeywordRequest{
			CampaignID:  keyword.CampaignID,
			AdGroupID:   keyword.AdGroupID,
			KeywordText: keyword.KeywordText,
			MatchType:   keyword.MatchType,
			State:       keyword.State,
		})
		entities = append(entities, domain.SyncEntity{
			LocalID:    keyword.ID,
			EntityType: domain.EntityTypeNegativeKeyword,
			ExternalID: keyword.ExternalID,
		})
	}

	endpoint := adProductPath(adTypeID) + "/negativeKeywords"
	payload := map[string]any{"negativeKeywords": requests}

	return s.DispatchAndLog(ctx, endpoint, "negativeKeyword.sync", payload, entities)
}

// SyncProductAds despacha a criação dos anúncios de produto
func (s *Service) SyncProductAds(ctx context.Context, adTypeID domain.AdTypeID, ads []*domain.ProductAd) (*domain.BatchResult, error) {
	if len(ads) == 0 {
		return &domain.BatchResult{}, nil
	}

	requests := make([]productAdRequest, 0, len(ads))
	entities := make([]domain.SyncEntity, 0, len(ads))
	for _, ad := range ads {
		requests = append(requests, productAdRequest{
			CampaignID: ad.CampaignID,
			AdGroupID:  ad.AdGroupID,
			SKU:        ad.SKU,
			ASIN:       ad.ASIN,
			State:      ad.State,
		})
		entities = append(entities, domain.SyncEntity{
			LocalID:    ad.ID,
			EntityType: domain.EntityTypeProductAd,
			ExternalID: ad.ExternalID,
		})
	}

	endpoint := adProductPath(adTypeID) + "/productAds"
	payload := map[string]any{"productAds": requests}

	return s.DispatchAndLog(ctx, endpoint, "productAd.sync", payload, entities)
}

// SyncTargets despacha a criação das cláusulas de direcionamento
func (s *Service) SyncTargets(ctx context.Context, adTypeID domain.AdTypeID, targets []*domain.TargetingClause) (*domain.BatchResult, error) {
	if len(targets) == 0 {
		return &domain.BatchResult{}, nil
	}

	requests := make([]targetRequest, 0, len(targets))
	entities := make([]domain.SyncEntity, 0, len(targets))
	for _, target := range targets {
		requests = append(requests, targetRequest{
			CampaignID:     target.CampaignID,
			AdGroupID:      target.AdGroupID,
			ExpressionType: target.ExpressionType,
			Expression:     toExpressionRequests(target.Expression),
			State:          target.State,
			Bid:            target.Bid,
		})
		entities = append(entities, domain.SyncEntity{
			LocalID:    target.ID,
			EntityType: domain.EntityTypeTarget,
			ExternalID: target.ExternalID,
		})
	}

	endpoint := adProductPath(adTypeID) + "/targets"
	payload := map[string]any{"targetingClauses": requests}

	return s.DispatchAndLog(ctx, endpoint, "target.sync", payload, entities)
}

// SyncNegativeTargets despacha a criação das cláusulas de direcionamento negativas
func (s *Service) SyncNegativeTargets(ctx context.Context, adTypeID domain.AdTypeID, targets []*domain.NegativeTargetingClause) (*domain.BatchResult, error) {
	if len(targets) == 0 {
		return &domain.BatchResult{}, nil
	}

	requests := make([]negativeTargetRequest, 0, len(targets))
	entities := make([]domain.SyncEntity, 0, len(targets))
	for _, target := range targets {
		requests = append(requests, negativeTargetRequest{
			CampaignID: target.CampaignID,
			AdGroupID:  target.AdGroupID,
			Expression: toExpressionRequests(target.Expression),
			State:      target.State,
		})
		entities = append(entities, domain.SyncEntity{
			LocalID:    target.ID,
			EntityType: domain.EntityTypeNegativeTarget,
			ExternalID: target.ExternalID,
		})
	}

	endpoint := adProductPath(adTypeID) + "/negativeTargets"
	payload := map[string]any{"negativeTargetingClauses": requests}

	return s.DispatchAndLog(ctx, endpoint, "negativeTarget.sync", payload, entities)
}

func toExpressionRequests(expressions []domain.TargetExpression) []targetExpressionRequest {
	requests := make([]targetExpressionRequest, 0, len(expressions))
	for _, expression := range expressions {
		requests = append(requests, targetExpressionRequest{
			Type:  expression.Type,
			Value: expression.Value,
		})
	}
	return requests
}
