package repository

import (
	"context"
	"strings"

	"costume-storefront/internal/model"

	"gorm.io/gorm"
)

type BundleRepository interface {
	Seed(ctx context.Context) error
	List(ctx context.Context) ([]*model.Bundle, error)
	FindByID(ctx context.Context, bundleID string) (*model.Bundle, error)
	SearchByTitle(ctx context.Context, query string) ([]*model.Bundle, error)
}

type bundleRepoImpl struct {
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) BundleRepository {
	return &bundleRepoImpl{
		db: db,
	}
}

// Seed loads the storefront's character bundles on first boot.
func (r *bundleRepoImpl) Seed(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Bundle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	bundles := []model.Bundle{
		{
			ID:            "1",
			Title:         "Blood Spatter Analyst",
			Description:   "Complete forensic investigator costume with authentic details including tactical gear and analysis tools",
			Price:         89.99,
			OriginalPrice: 129.99,
			HeroImage:     "/assets/blood-spatter-tactical.jpg",
			Items: []model.BundleItem{
				{Position: 0, Name: "Tactical Henley", Type: "Clothing", Image: "/api/placeholder/100/100", Price: 24.99},
				{Position: 1, Name: "Cargo Pants", Type: "Clothing", Image: "/api/placeholder/100/100", Price: 32.99},
				{Position: 2, Name: "Tactical Gloves", Type: "Accessory", Image: "/api/placeholder/100/100", Price: 15.99},
				{Position: 3, Name: "Evidence Kit", Type: "Props", Image: "/api/placeholder/100/100", Price: 28.99},
				{Position: 4, Name: "Blood Sample Vials", Type: "Props", Image: "/api/placeholder/100/100", Price: 12.99},
				{Position: 5, Name: "Lab Badge", Type: "Accessory", Image: "/api/placeholder/100/100", Price: 8.99},
			},
		},
		{
			ID:            "2",
			Title:         "Chemistry Teacher (Alter Ego)",
			Description:   "Transform into the iconic educator with this complete professional ensemble and chemistry accessories",
			Price:         109.99,
			OriginalPrice: 149.99,
			HeroImage:     "/assets/chemistry-teacher-alter.jpg",
			Items: []model.BundleItem{
				{Position: 0, Name: "Dark Suit Jacket", Type: "Clothing", Image: "/api/placeholder/100/100", Price: 45.99},
				{Position: 1, Name: "Dress Pants", Type: "Clothing", Image: "/api/placeholder/100/100", Price: 32.99},
				{Position: 2, Name: "Green Striped Shirt", Type: "Clothing", Image: "/api/placeholder/100/100", Price: 22.99},
				{Position: 3, Name: "Fedora Hat", Type: "Accessory", Image: "/api/placeholder/100/100", Price: 28.99},
				{Position: 4, Name: "Glasses", Type: "Accessory", Image: "/api/placeholder/100/100", Price: 18.99},
				{Position: 5, Name: "Leather Belt", Type: "Accessory", Image: "/api/placeholder/100/100", Price: 16.99},
				{Position: 6, Name: "Chemistry Equipment", Type: "Props", Image: "/api/placeholder/100/100", Price: 34.99},
			},
		},
	}

	return r.db.WithContext(ctx).Create(&bundles).Error
}

func (r *bundleRepoImpl) List(ctx context.Context) ([]*model.Bundle, error) {
	var bundles []*model.Bundle
	err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Find(&bundles).
		Error

	if err != nil {
		return nil, err
	}

	return bundles, nil
}

func (r *bundleRepoImpl) FindByID(ctx context.Context, bundleID string) (*model.Bundle, error) {
	var bundle model.Bundle
	err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("id = ?", bundleID).
		First(&bundle).Error

	if err != nil {
		return nil, err
	}

	return &bundle, nil
}

func (r *bundleRepoImpl) SearchByTitle(ctx context.Context, query string) ([]*model.Bundle, error) {
	var bundles []*model.Bundle
	err := r.db.WithContext(ctx).
		Preload("Items", orderByPosition).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(query)+"%").
		Find(&bundles).
		Error

	if err != nil {
		return nil, err
	}

	return bundles, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
