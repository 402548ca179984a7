package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"github.com/vfg2006/ads-performance-api/pkg/filtering"
)

// EntityTableRef mapeia um tipo de entidade para sua tabela física e a
// coluna que aponta para o pai na hierarquia de anúncios.
type EntityTableRef struct {
	Table        string
	ParentColumn string
}

// entityTables é o mapa estático das tabelas de entidades de anúncio.
var entityTables = map[domain.EntityType]EntityTableRef{
	domain.EntityTypeCampaign:        {Table: "campaigns"},
	domain.EntityTypeAdGroup:         {Table: "ad_groups", ParentColumn: "campaign_id"},
	domain.EntityTypeKeyword:         {Table: "keywords", ParentColumn: "ad_group_id"},
	domain.EntityTypeNegativeKeyword: {Table: "negative_keywords", ParentColumn: "ad_group_id"},
	domain.EntityTypeProductAd:       {Table: "product_ads", ParentColumn: "ad_group_id"},
	domain.EntityTypeTarget:          {Table: "targets", ParentColumn: "ad_group_id"},
	domain.EntityTypeNegativeTarget:  {Table: "negative_targets", ParentColumn: "ad_group_id"},
}

// entityTableFor resolve a tabela física de um tipo de entidade
func entityTableFor(entityType domain.EntityType) (EntityTableRef, bool) {
	ref, ok := entityTables[entityType]
	return ref, ok
}

// campaignFilterMapping expõe os nomes lógicos aceitos nas listagens de
// campanhas. Campos fora do mapa são usados como coluna literal.
var campaignFilterMapping = filtering.FieldMapping{
	Columns: map[string]string{
		"name":           "c.name",
		"state":          "c.state",
		"targeting_type": "c.targeting_type",
		"daily_budget":   "c.daily_budget",
		"start_date":     "c.start_date",
	},
	SearchColumns: []string{"c.name"},
	Sortable: map[string]string{
		"name":         "c.name",
		"state":        "c.state",
		"daily_budget": "c.daily_budget",
		"start_date":   "c.start_date",
	},
}

var adGroupFilterMapping = filtering.FieldMapping{
	Columns: map[string]string{
		"name":        "ag.name",
		"state":       "ag.state",
		"campaign_id": "ag.campaign_id",
		"default_bid": "ag.default_bid",
	},
	SearchColumns: []string{"ag.name"},
	Sortable: map[string]string{
		"name":        "ag.name",
		"state":       "ag.state",
		"default_bid": "ag.default_bid",
	},
}

type EntityRepository interface {
	UpdateExternalID(tx *sql.Tx, entityType domain.EntityType, localID, externalID string) error
	ListCampaigns(companyID int64, adTypeID domain.AdTypeID, spec *domain.FilterSpec) ([]*domain.Campaign, error)
	ListAdGroups(companyID int64, spec *domain.FilterSpec) ([]*domain.AdGroup, error)
}

type entityRepository struct {
	conn            *postgres.Connection
	campaignFilters *filtering.Engine
	adGroupFilters  *filtering.Engine
}

func NewEntityRepository(conn *postgres.Connection) EntityRepository {
	return &entityRepository{
		conn:            conn,
		campaignFilters: filtering.NewEngine(campaignFilterMapping),
		adGroupFilters:  filtering.NewEngine(adGroupFilterMapping),
	}
}

// UpdateExternalID grava o ID externo retornado pela API na linha local.
// Roda dentro da transação que grava o log de resposta correspondente.
func (r *entityRepository) UpdateExternalID(tx *sql.Tx, entityType domain.EntityType, localID, externalID string) error {
	ref, ok := entityTableFor(entityType)
	if !ok {
		return fmt.Errorf("tipo de entidade desconhecido: %s", entityType)
	}

	query, args, err := squirrel.StatementBuilder.
		Update(ref.Table).
		Set("external_id", externalID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": localID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao gravar ID externo em %s: %w", ref.Table, err)
	}

	return nil
}

// ListCampaigns lista as campanhas da empresa aplicando a especificação
// genérica de filtro/ordenação, incluindo filtros por métrica agregada.
func (r *entityRepository) ListCampaigns(companyID int64, adTypeID domain.AdTypeID, spec *domain.FilterSpec) ([]*domain.Campaign, error) {
	builder := squirrel.
		Select(
			"c.id",
			"c.company_id",
			"c.external_id",
			"c.ad_type_id",
			"c.name",
			"c.state",
			"c.targeting_type",
			"c.daily_budget",
			"c.start_date",
			"c.end_date",
		).
		From("campaigns c").
		Where(squirrel.Eq{"c.company_id": companyID}).
		PlaceholderFormat(squirrel.Dollar)

	if adTypeID != 0 {
		builder = builder.Where(squirrel.Eq{"c.ad_type_id": adTypeID})
	}

	builder, err := r.campaignFilters.Apply(builder, spec, filtering.MetricScope{
		CompanyID:    companyID,
		EntityType:   domain.EntityTypeCampaign,
		EntityColumn: "c.id",
	})
	if err != nil {
		return nil, err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query de campanhas: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas: %w", err)
	}
	defer rows.Close()

	var campaigns []*domain.Campaign
	for rows.Next() {
		var campaign domain.Campaign
		if err := rows.Scan(
			&campaign.ID,
			&campaign.CompanyID,
			&campaign.ExternalID,
			&campaign.AdTypeID,
			&campaign.Name,
			&campaign.State,
			&campaign.TargetingType,
			&campaign.DailyBudget,
			&campaign.StartDate,
			&campaign.EndDate,
		); err != nil {
			return nil, err
		}

		campaigns = append(campaigns, &campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return campaigns, nil
}

// ListAdGroups lista os grupos de anúncios da empresa com a mesma
// especificação genérica das campanhas. O pai é filtrado pelo campo lógico
// campaign_id quando presente.
func (r *entityRepository) ListAdGroups(companyID int64, spec *domain.FilterSpec) ([]*domain.AdGroup, error) {
	builder := squirrel.
		Select(
			"ag.id",
			"ag.company_id",
			"ag.external_id",
			"ag.campaign_id",
			"ag.name",
			"ag.state",
			"ag.default_bid",
		).
		From("ad_groups ag").
		Where(squirrel.Eq{"ag.company_id": companyID}).
		PlaceholderFormat(squirrel.Dollar)

	builder, err := r.adGroupFilters.Apply(builder, spec, filtering.MetricScope{
		CompanyID:    companyID,
		EntityType:   domain.EntityTypeAdGroup,
		EntityColumn: "ag.id",
	})
	if err != nil {
		return nil, err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query de grupos de anúncios: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar grupos de anúncios: %w", err)
	}
	defer rows.Close()

	var adGroups []*domain.AdGroup
	for rows.Next() {
		var adGroup domain.AdGroup
		if err := rows.Scan(
			&adGroup.ID,
			&adGroup.CompanyID,
			&adGroup.ExternalID,
			&adGroup.CampaignID,
			&adGroup.Name,
			&adGroup.State,
			&adGroup.DefaultBid,
		); err != nil {
			return nil, err
		}

		adGroups = append(adGroups, &adGroup)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return adGroups, nil
}
