// Package eft implements the manual EFT payment provider. Customers pay by
// bank transfer using a generated reference; the true payment status is
// resolved out-of-band through bank reconciliation.
package eft

import "time"

// BankDetails are included in the payment instructions email.
type BankDetails struct {
	AccountName   string
	AccountNumber string
	BankName      string
	BranchCode    string
}

// Options configure the EFT provider.
type Options struct {
	BankDetails *BankDetails
}

// PaymentData is the provider-owned session payload. The reference is
// generated once at initiation and never changes across lifecycle calls.
type PaymentData struct {
	Reference     string
	Amount        int64
	CurrencyCode  string
	CustomerEmail string
	Status        string
	CreatedAt     time.Time
}

func (d PaymentData) toMap() map[string]interface{} {
	m := map[string]interface{}{
		"reference":      d.Reference,
		"amount":         d.Amount,
		"currency_code":  d.CurrencyCode,
		"customer_email": d.CustomerEmail,
		"created_at":     d.CreatedAt.Format(time.RFC3339),
	}
	if d.Status != "" {
		m["status"] = d.Status
	}
	return m
}

// paymentDataFromMap rebuilds PaymentData from a stored payload. Missing or
// mistyped fields degrade to zero values; the provider never receives
// adversarial input so no validation is layered on top.
func paymentDataFromMap(m map[string]interface{}) PaymentData {
	return PaymentData{
		Reference:     asString(m["reference"]),
		Amount:        asInt64(m["amount"]),
		CurrencyCode:  asString(m["currency_code"]),
		CustomerEmail: asString(m["customer_email"]),
		Status:        asString(m["status"]),
		CreatedAt:     asTime(m["created_at"]),
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}
