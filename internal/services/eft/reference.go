package eft

import "math/rand"

const referenceChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateReference produces a 4-character alphanumeric payment reference,
// prefixed with "<orderNumber>-" when an order number is supplied. Call sites
// currently never supply one, so references are 4 characters in practice.
func generateReference(orderNumber string) string {
	b := make([]byte, 4)
	for i := range b {
		b[i] = referenceChars[rand.Intn(len(referenceChars))]
	}
	if orderNumber != "" {
		return orderNumber + "-" + string(b)
	}
	return string(b)
}
