package service

import (
	"math"

	"tnb-api/core/constants"
	catalogentity "tnb-api/modules/catalog/entity"
)

// Quote is the computed pricing for a service selection.
type Quote struct {
	Subtotal float64
	Fee      float64
	Total    float64
	Duration int // minutes
}

// QuoteServices sums prices and durations across the matched services and
// applies the platform fee: fee = round(subtotal * 0.15, 2),
// total = subtotal + fee.
func QuoteServices(services []catalogentity.Service) Quote {
	var subtotal float64
	var duration int

	for _, svc := range services {
		subtotal += svc.Price
		duration += svc.Duration
	}

	subtotal = Round2(subtotal)
	fee := Round2(subtotal * constants.ServiceFeePercent)

	return Quote{
		Subtotal: subtotal,
		Fee:      fee,
		Total:    Round2(subtotal + fee),
		Duration: duration,
	}
}

// Round2 rounds to two decimal places (currency units).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Pence converts decimal pounds to integer pence for the processor.
func Pence(x float64) int64 {
	return int64(math.Round(x * 100))
}
