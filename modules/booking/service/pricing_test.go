package service

import (
	"testing"

	catalogentity "tnb-api/modules/catalog/entity"
)

func TestQuoteServices(t *testing.T) {
	tests := []struct {
		name         string
		services     []catalogentity.Service
		wantSubtotal float64
		wantFee      float64
		wantTotal    float64
		wantDuration int
	}{
		{
			name: "two services",
			services: []catalogentity.Service{
				{Name: "Gel Manicure", Price: 30.00, Duration: 60},
				{Name: "Pedicure", Price: 35.00, Duration: 45},
			},
			wantSubtotal: 65.00,
			wantFee:      9.75,
			wantTotal:    74.75,
			wantDuration: 105,
		},
		{
			name: "fee rounds to two decimals",
			services: []catalogentity.Service{
				{Name: "Polish Change", Price: 15.50, Duration: 30},
			},
			wantSubtotal: 15.50,
			wantFee:      2.32, // 15.50 * 0.15 is 2.3249999... in float64
			wantTotal:    17.82,
			wantDuration: 30,
		},
		{
			name:         "no services",
			services:     nil,
			wantSubtotal: 0,
			wantFee:      0,
			wantTotal:    0,
			wantDuration: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuoteServices(tt.services)

			if got.Subtotal != tt.wantSubtotal {
				t.Errorf("Subtotal = %v, want %v", got.Subtotal, tt.wantSubtotal)
			}
			if got.Fee != tt.wantFee {
				t.Errorf("Fee = %v, want %v", got.Fee, tt.wantFee)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
			if got.Duration != tt.wantDuration {
				t.Errorf("Duration = %v, want %v", got.Duration, tt.wantDuration)
			}
		})
	}
}

func TestPence(t *testing.T) {
	tests := []struct {
		pounds float64
		want   int64
	}{
		{0, 0},
		{30.00, 3000},
		{9.75, 975},
		{74.75, 7475},
		{0.1 + 0.2, 30}, // float noise must not leak into pence
	}

	for _, tt := range tests {
		if got := Pence(tt.pounds); got != tt.want {
			t.Errorf("Pence(%v) = %d, want %d", tt.pounds, got, tt.want)
		}
	}
}
