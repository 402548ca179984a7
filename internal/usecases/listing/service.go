package listing

import (
	"github.com/vfg2006/ads-performance-api/infrastructure/repository"
	"github.com/vfg2006/ads-performance-api/internal/domain"
)

// Lister é a fachada de listagem das entidades locais. Toda listagem é
// delimitada pelo CompanyPolicy resolvido na borda da requisição.
type Lister interface {
	ListCampaigns(policy domain.CompanyPolicy, adTypeID domain.AdTypeID, spec *domain.FilterSpec) ([]*domain.Campaign, error)
	ListAdGroups(policy domain.CompanyPolicy, spec *domain.FilterSpec) ([]*domain.AdGroup, error)
}

type Service struct {
	entities repository.EntityRepository
}

func NewService(entities repository.EntityRepository) Lister {
	return &Service{
		entities: entities,
	}
}

func (s *Service) ListCampaigns(policy domain.CompanyPolicy, adTypeID domain.AdTypeID, spec *domain.FilterSpec) ([]*domain.Campaign, error) {
	campaigns, err := s.entities.ListCampaigns(policy.CompanyID, adTypeID, spec)
	if err != nil {
		return nil, err
	}

	if campaigns == nil {
		campaigns = []*domain.Campaign{}
	}

	return campaigns, nil
}

func (s *Service) ListAdGroups(policy domain.CompanyPolicy, spec *domain.FilterSpec) ([]*domain.AdGroup, error) {
	adGroups, err := s.entities.ListAdGroups(policy.CompanyID, spec)
	if err != nil {
		return nil, err
	}

	if adGroups == nil {
		adGroups = []*domain.AdGroup{}
	}

	return adGroups, nil
}
