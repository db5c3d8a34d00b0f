package service

import (
	"context"
	"errors"
	"fmt"

	"costume-storefront/internal/cart"
	"costume-storefront/internal/dto"
	"costume-storefront/internal/model"
	"costume-storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBundleNotFound     = errors.New("bundle not found")
	ErrInvalidBundleIndex = errors.New("bundle item index out of range")
)

type BundleService interface {
	ListBundles(ctx context.Context) ([]*model.Bundle, error)
	GetBundle(ctx context.Context, bundleID string) (*model.Bundle, error)
	SearchBundles(ctx context.Context, query string) ([]*model.Bundle, error)
	AddBundleToCart(ctx context.Context, store *cart.Store, bundleID string) error
	AddBundleItemsToCart(ctx context.Context, store *cart.Store, bundleID string, selections []dto.BundleSelection) error
}

type bundleServiceImpl struct {
	bundleRepo repository.BundleRepository
}

func NewBundleService(bundleRepo repository.BundleRepository) BundleService {
	return &bundleServiceImpl{
		bundleRepo: bundleRepo,
	}
}

func (s *bundleServiceImpl) ListBundles(ctx context.Context) ([]*model.Bundle, error) {
	return s.bundleRepo.List(ctx)
}

func (s *bundleServiceImpl) GetBundle(ctx context.Context, bundleID string) (*model.Bundle, error) {
	bundle, err := s.bundleRepo.FindByID(ctx, bundleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBundleNotFound
		}
		return nil, fmt.Errorf("find bundle: %w", err)
	}
	return bundle, nil
}

func (s *bundleServiceImpl) SearchBundles(ctx context.Context, query string) ([]*model.Bundle, error) {
	return s.bundleRepo.SearchByTitle(ctx, query)
}

// AddBundleToCart adds the whole bundle as a single cart line at the bundle
// price. The line id is stable per bundle, so re-adding increments quantity.
func (s *bundleServiceImpl) AddBundleToCart(ctx context.Context, store *cart.Store, bundleID string) error {
	bundle, err := s.GetBundle(ctx, bundleID)
	if err != nil {
		return err
	}

	store.AddItem(cart.Item{
		ID:       "bundle-" + bundle.ID,
		Name:     bundle.Title,
		Price:    bundle.Price,
		Image:    bundle.HeroImage,
		Type:     cart.ItemTypeBundle,
		Quantity: 1,
	})
	return nil
}

// AddBundleItemsToCart adds selected sub-items as individual cart lines.
// Each call synthesizes fresh line ids, so selections never merge with
// earlier ones.
func (s *bundleServiceImpl) AddBundleItemsToCart(ctx context.Context, store *cart.Store, bundleID string, selections []dto.BundleSelection) error {
	bundle, err := s.GetBundle(ctx, bundleID)
	if err != nil {
		return err
	}

	for _, sel := range selections {
		if sel.Index < 0 || sel.Index >= len(bundle.Items) {
			return ErrInvalidBundleIndex
		}
	}

	for _, sel := range selections {
		item := bundle.Items[sel.Index]
		quantity := sel.Quantity
		if quantity < 1 {
			quantity = 1
		}
		store.AddItem(cart.Item{
			ID:       fmt.Sprintf("%s-item-%d-%s", bundle.ID, sel.Index, uuid.NewString()),
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Type:     cart.ItemTypeIndividual,
			Quantity: quantity,
		})
	}
	return nil
}
