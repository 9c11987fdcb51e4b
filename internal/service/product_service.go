package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// ErrNotOwner rejects vendors operating on another vendor's product.
var ErrNotOwner = errors.New("product belongs to another vendor")

// ProductService coordinates catalog operations.
type ProductService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, dispatcher: dispatcher}
}

// Create registers a product owned by the calling vendor.
func (s *ProductService) Create(ctx context.Context, vendorID string, product *domain.Product) error {
	product.VendorID = vendorID
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}

	s.publish(ctx, events.EventProductCreated, product)
	return nil
}

// Update modifies a product after checking vendor ownership.
func (s *ProductService) Update(ctx context.Context, vendorID, productID string, update *domain.Product) (*domain.Product, error) {
	existing, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if existing.VendorID != vendorID {
		return nil, apperrors.NewForbidden(ErrNotOwner.Error())
	}

	existing.Name = update.Name
	existing.Description = update.Description
	existing.Category = update.Category
	existing.PriceCents = update.PriceCents
	existing.Stock = update.Stock

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a product after checking vendor ownership.
func (s *ProductService) Delete(ctx context.Context, vendorID, productID string) error {
	existing, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if existing.VendorID != vendorID {
		return apperrors.NewForbidden(ErrNotOwner.Error())
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	s.publish(ctx, events.EventProductDeleted, existing)
	return nil
}

// List returns the full catalog.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// Categories returns the distinct catalog categories.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.products.ListCategories(ctx)
}

func (s *ProductService) publish(ctx context.Context, eventType events.EventType, product *domain.Product) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: product.ID,
		Timestamp: time.Now(),
		Payload: events.ProductPayload{
			ProductID: product.ID,
			VendorID:  product.VendorID,
			Category:  product.Category,
		},
	})
}
