package model

type Bundle struct {
	ID          string `gorm:"primaryKey;size:64;not null"`
	Title       string `gorm:"size:128;not null"`
	Description string `gorm:"size:512"`
	Price       float64
	// OriginalPrice >= Price; the storefront shows the discount off it
	OriginalPrice float64
	HeroImage     string       `gorm:"size:256"`
	Items         []BundleItem `gorm:"foreignKey:BundleID"`
}

type BundleItem struct {
	ID uint `gorm:"primaryKey"`
	// FK -> bundles.id
	BundleID string `gorm:"size:64;index;not null"`
	// Position preserves the bundle's display order
	Position int    `gorm:"not null"`
	Name     string `gorm:"size:128;not null"`
	Type     string `gorm:"size:32"` // Clothing, Accessory, Props
	Image    string `gorm:"size:256"`
	Price    float64
}
