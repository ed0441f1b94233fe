package models

import "gorm.io/gorm"

// PaymentSession is the host-side record of a payment provider session.
// Data holds whatever the provider returned for the last lifecycle call;
// the session service persists it verbatim and hands it back on the next call.
type PaymentSession struct {
	gorm.Model
	SessionID     string `gorm:"uniqueIndex;not null"`
	ProviderID    string `gorm:"index;not null"`
	Amount        int64
	CurrencyCode  string
	CustomerEmail string
	Status        string `gorm:"default:'initiated'"`
	Data          JSON   `gorm:"type:jsonb"`
}
