package listing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-performance-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestListCampaignsScopesByCompany(t *testing.T) {
	ctrl := gomock.NewController(t)
	entities := mocks.NewMockEntityRepository(ctrl)

	spec := &domain.FilterSpec{
		Filters: map[string]domain.Filter{
			"state": {Type: domain.FilterTypeSelect, Value: "ENABLED"},
		},
	}

	entities.EXPECT().
		ListCampaigns(int64(42), domain.AdTypeSponsoredProducts, spec).
		Return([]*domain.Campaign{{ID: "cmp-1", CompanyID: 42, Name: "Marca A"}}, nil)

	service := NewService(entities)

	campaigns, err := service.ListCampaigns(domain.CompanyPolicy{CompanyID: 42}, domain.AdTypeSponsoredProducts, spec)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "cmp-1", campaigns[0].ID)
}

func TestListCampaignsEmptyResultIsNotNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	entities := mocks.NewMockEntityRepository(ctrl)

	entities.EXPECT().
		ListCampaigns(int64(7), domain.AdTypeID(0), nil).
		Return(nil, nil)

	service := NewService(entities)

	campaigns, err := service.ListCampaigns(domain.CompanyPolicy{CompanyID: 7}, 0, nil)
	require.NoError(t, err)
	assert.NotNil(t, campaigns)
	assert.Empty(t, campaigns)
}

func TestListAdGroupsPropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	entities := mocks.NewMockEntityRepository(ctrl)

	entities.EXPECT().
		ListAdGroups(int64(7), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	service := NewService(entities)

	_, err := service.ListAdGroups(domain.CompanyPolicy{CompanyID: 7}, &domain.FilterSpec{})
	assert.Error(t, err)
}
