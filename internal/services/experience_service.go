package services

import (
	"context"
	"errors"
	"fmt"

	"itinera/internal/catalog"
	"itinera/internal/models/response_models"
	"itinera/pkg/utils"
)

type ExperienceServiceInterface interface {
	BrowseExperiences(ctx context.Context, city, search string, page, pageSize int) ([]response_models.ExperienceResponse, error)
}

type ExperienceService struct {
	catalog catalog.Client
}

func NewExperienceService(catalogClient catalog.Client) ExperienceServiceInterface {
	return &ExperienceService{catalog: catalogClient}
}

func (e *ExperienceService) BrowseExperiences(ctx context.Context, city, search string, page, pageSize int) ([]response_models.ExperienceResponse, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be greater than 0", utils.ErrInvalidInput)
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, fmt.Errorf("%w: page size must be between 1 and 100", utils.ErrInvalidInput)
	}

	list, err := e.catalog.BrowseExperiences(ctx, catalog.BrowseQuery{
		City:     city,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		if errors.Is(err, utils.ErrCatalogUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrCatalogUnavailable, err)
	}

	out := make([]response_models.ExperienceResponse, 0, len(list))
	for _, x := range list {
		out = append(out, response_models.ExperienceResponse{
			ID:            x.ID,
			Name:          x.Name,
			Location:      x.Location,
			Price:         x.Price,
			PriceUnit:     x.PriceUnit,
			PriceEstimate: x.PriceEstimateText,
			Images:        x.Images,
		})
	}
	return out, nil
}
