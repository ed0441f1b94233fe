package models

import "gorm.io/gorm"

// TaxRegion groups tax rates under an ISO 3166-1 alpha-2 country code.
type TaxRegion struct {
	gorm.Model
	CountryCode string    `gorm:"uniqueIndex;not null"`
	Rates       []TaxRate `gorm:"foreignKey:TaxRegionID"`
}

// TaxRate is a named percentage rate within a region.
type TaxRate struct {
	gorm.Model
	TaxRegionID uint    `gorm:"index;not null"`
	Name        string  `gorm:"not null"`
	Rate        float64 `gorm:"not null"`
	Code        string  `gorm:"index;not null"`
}
