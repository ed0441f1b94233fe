package models

import "gorm.io/gorm"

// Product is a catalog entry. Prices are stored in minor currency units.
type Product struct {
	gorm.Model
	Title        string `gorm:"not null"`
	Handle       string `gorm:"uniqueIndex;not null"`
	Description  string
	ProductType  string `gorm:"index"`
	UnitPrice    int64
	CurrencyCode string `gorm:"default:'zar'"`
}
