// Package service implements the application services between the HTTP
// boundary and the stores. Services own entity construction (identifiers,
// timestamps) and input validation; stores own nothing but state.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"beacon/internal/logger"
	"beacon/internal/models"
	"beacon/internal/store"
)

// BusinessService coordinates persistence and validation for business
// definitions and their field schemas.
type BusinessService struct {
	store store.BusinessStore
}

func NewBusinessService(s store.BusinessStore) *BusinessService {
	return &BusinessService{store: s}
}

func (s *BusinessService) CreateBusiness(ctx context.Context, input models.BusinessCreate) (models.BusinessDefinition, error) {
	if err := input.Validate(); err != nil {
		return models.BusinessDefinition{}, &models.ValidationError{Message: err.Error()}
	}

	business := models.BusinessDefinition{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.AddBusiness(ctx, business); err != nil {
		return models.BusinessDefinition{}, err
	}

	log := logger.WithComponent("business_service")
	log.Info().
		Str("business_id", business.ID.String()).
		Str("name", business.Name).
		Msg("business created")
	return business, nil
}

func (s *BusinessService) ListBusinesses(ctx context.Context) ([]models.BusinessDefinition, error) {
	return s.store.ListBusinesses(ctx)
}

func (s *BusinessService) GetBusiness(ctx context.Context, id uuid.UUID) (models.BusinessDefinition, error) {
	return s.store.GetBusiness(ctx, id)
}

// UpdateBusiness patches the mutable attributes of a business.
func (s *BusinessService) UpdateBusiness(ctx context.Context, id uuid.UUID, input models.BusinessUpdate) (models.BusinessDefinition, error) {
	if err := input.Validate(); err != nil {
		return models.BusinessDefinition{}, &models.ValidationError{Message: err.Error()}
	}

	business, err := s.store.GetBusiness(ctx, id)
	if err != nil {
		return models.BusinessDefinition{}, err
	}
	if input.Name != nil {
		business.Name = *input.Name
	}
	if input.Description != nil {
		business.Description = *input.Description
	}
	if err := s.store.UpdateBusiness(ctx, business); err != nil {
		return models.BusinessDefinition{}, err
	}
	return business, nil
}

// AddField declares a schema field for a business. Names are unique within
// one business; the store rejects duplicates with a conflict.
func (s *BusinessService) AddField(ctx context.Context, businessID uuid.UUID, input models.FieldCreate) (models.FieldDefinition, error) {
	if err := input.Validate(); err != nil {
		return models.FieldDefinition{}, &models.ValidationError{Message: err.Error()}
	}
	if _, err := s.store.GetBusiness(ctx, businessID); err != nil {
		return models.FieldDefinition{}, err
	}

	field := models.FieldDefinition{
		ID:          uuid.New(),
		BusinessID:  businessID,
		Name:        input.Name,
		DataType:    input.DataType,
		Required:    input.IsRequired(),
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.AddField(ctx, field); err != nil {
		return models.FieldDefinition{}, err
	}

	log := logger.WithComponent("business_service")
	log.Info().
		Str("business_id", businessID.String()).
		Str("field", field.Name).
		Str("data_type", string(field.DataType)).
		Bool("required", field.Required).
		Msg("field declared")
	return field, nil
}

func (s *BusinessService) ListFields(ctx context.Context, businessID uuid.UUID) ([]models.FieldDefinition, error) {
	if _, err := s.store.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return s.store.ListFields(ctx, businessID)
}
