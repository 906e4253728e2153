package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{in: "Café", want: CategoryCoffee, wantOK: true},
		{in: "cafe", want: CategoryCoffee, wantOK: true},
		{in: "Coffee", want: CategoryCoffee, wantOK: true},
		{in: "comida  fuera", want: CategoryEatingOut, wantOK: true},
		{in: "Eating-out", want: CategoryEatingOut, wantOK: true},
		{in: "eating out", want: CategoryEatingOut, wantOK: true},
		{in: "SUPERMERCADO", want: CategoryGroceries, wantOK: true},
		{in: "Otros", want: CategoryOther, wantOK: true},
		{in: "Restaurantes", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAllCategories(t *testing.T) {
	all := AllCategories()
	assert.Len(t, all, 9)
	assert.Equal(t, CategoryCoffee, all[0])
	assert.Equal(t, CategoryOther, all[len(all)-1])

	for _, c := range all {
		assert.True(t, c.IsValid(), c)
		assert.NotEmpty(t, c.English())
	}

	all[0] = CategoryOther
	assert.Equal(t, CategoryCoffee, AllCategories()[0], "callers must not mutate the table")
	assert.False(t, Category("Viajes").IsValid())
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in     string
		want   PaymentMethod
		wantOK bool
	}{
		{in: "tarjeta", want: PaymentCard, wantOK: true},
		{in: "Efectivo", want: PaymentCash, wantOK: true},
		{in: "transferencia", want: PaymentTransfer, wantOK: true},
		{in: "bizum", want: PaymentTransfer, wantOK: true},
		{in: "card", want: PaymentCard, wantOK: true},
		{in: "cheque", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePaymentMethod(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "tarjeta", PaymentCard.Spanish())
	assert.Empty(t, PaymentUnknown.Spanish())
}
