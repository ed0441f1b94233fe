package tax

import (
	"context"
	"fmt"

	"hairven/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// regionRates is the installed base of tax regions and their rates.
var regionRates = map[string][]models.TaxRate{
	"za": {
		{Name: "VAT Standard Rate", Rate: 15, Code: "VAT_ZA"},
		{Name: "VAT Zero Rate", Rate: 0, Code: "VAT_ZA_ZERO"},
	},
	"us": {
		{Name: "Sales Tax", Rate: 8.5, Code: "SALES_US"},
	},
	"gb": {
		{Name: "VAT Standard Rate", Rate: 20, Code: "VAT_GB"},
	},
	"ca": {
		{Name: "GST", Rate: 5, Code: "GST_CA"},
		{Name: "HST", Rate: 13, Code: "HST_CA"},
	},
}

// setupCountries fixes the region creation order.
var setupCountries = []string{"za", "us", "gb", "ca"}

// SetupResult reports what the setup run created or found in place.
type SetupResult struct {
	Regions []models.TaxRegion `json:"regions"`
	Rates   []models.TaxRate   `json:"rates"`
}

// SetupService installs the tax regions and rates the provider draws from.
// The whole run happens inside one transaction so a partial install rolls
// back; re-running is idempotent.
type SetupService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewSetupService(db *gorm.DB, logger *zap.Logger) *SetupService {
	return &SetupService{
		db:     db,
		logger: logger.Sugar(),
	}
}

// Setup creates the tax regions for za, us, gb and ca with their rates.
func (s *SetupService) Setup(ctx context.Context) (*SetupResult, error) {
	result := &SetupResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, countryCode := range setupCountries {
			region := models.TaxRegion{CountryCode: countryCode}
			if err := tx.Where("country_code = ?", countryCode).
				FirstOrCreate(&region).Error; err != nil {
				return fmt.Errorf("create tax region %s: %w", countryCode, err)
			}
			result.Regions = append(result.Regions, region)

			for _, rate := range regionRates[countryCode] {
				taxRate := models.TaxRate{
					TaxRegionID: region.ID,
					Name:        rate.Name,
					Rate:        rate.Rate,
					Code:        rate.Code,
				}
				if err := tx.Where("tax_region_id = ? AND code = ?", region.ID, rate.Code).
					FirstOrCreate(&taxRate).Error; err != nil {
					return fmt.Errorf("create tax rate %s: %w", rate.Code, err)
				}
				result.Rates = append(result.Rates, taxRate)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("tax setup completed",
		"regions", len(result.Regions),
		"rates", len(result.Rates),
	)
	return result, nil
}
