package service

import (
	"context"

	"github.com/rs/zerolog"

	"sweetshop/api/internal/ids"
	"sweetshop/api/internal/models"
)

// ValidationError marks input the caller can fix; handlers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SweetStore is the catalog surface of the sweet repository.
type SweetStore interface {
	Create(ctx context.Context, sweet models.Sweet) (models.Sweet, error)
	GetByID(ctx context.Context, id string) (models.Sweet, error)
	List(ctx context.Context) ([]models.Sweet, error)
	Search(ctx context.Context, filter models.SweetFilter) ([]models.Sweet, error)
	Update(ctx context.Context, id string, patch models.SweetPatch) (models.Sweet, error)
	Delete(ctx context.Context, id string) error
	SetImageURL(ctx context.Context, id string, url string) (models.Sweet, error)
}

type CatalogService struct {
	sweets SweetStore
	log    zerolog.Logger
}

func NewCatalogService(sweets SweetStore, log zerolog.Logger) *CatalogService {
	return &CatalogService{sweets: sweets, log: log}
}

type CreateSweetInput struct {
	Name        string
	Description *string
	Category    string
	Price       float64
	Quantity    int
	ImageURL    *string
}

func (s *CatalogService) Create(ctx context.Context, input CreateSweetInput) (models.Sweet, error) {
	if input.Price < 0 {
		return models.Sweet{}, &ValidationError{Message: "Price must not be negative"}
	}
	if input.Quantity < 0 {
		return models.Sweet{}, &ValidationError{Message: "Quantity must not be negative"}
	}

	return s.sweets.Create(ctx, models.Sweet{
		ID:          ids.New(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ImageURL:    input.ImageURL,
	})
}

func (s *CatalogService) List(ctx context.Context) ([]models.Sweet, error) {
	return s.sweets.List(ctx)
}

func (s *CatalogService) Search(ctx context.Context, filter models.SweetFilter) ([]models.Sweet, error) {
	return s.sweets.Search(ctx, filter)
}

func (s *CatalogService) Get(ctx context.Context, id string) (models.Sweet, error) {
	return s.sweets.GetByID(ctx, id)
}

func (s *CatalogService) Update(ctx context.Context, id string, patch models.SweetPatch) (models.Sweet, error) {
	if patch.Name != nil && *patch.Name == "" {
		return models.Sweet{}, &ValidationError{Message: "Name must not be empty"}
	}
	if patch.Category != nil && *patch.Category == "" {
		return models.Sweet{}, &ValidationError{Message: "Category must not be empty"}
	}
	if patch.Price != nil && *patch.Price < 0 {
		return models.Sweet{}, &ValidationError{Message: "Price must not be negative"}
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return models.Sweet{}, &ValidationError{Message: "Quantity must not be negative"}
	}

	return s.sweets.Update(ctx, id, patch)
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.sweets.Delete(ctx, id)
}
