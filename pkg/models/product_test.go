package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyFormatFor(t *testing.T) {
	format, ok := CurrencyFormatFor(CurrencyINR)
	require.True(t, ok)
	assert.Equal(t, "₹", format)

	format, ok = CurrencyFormatFor(CurrencyUSD)
	require.True(t, ok)
	assert.Equal(t, "$", format)

	_, ok = CurrencyFormatFor("EUR")
	assert.False(t, ok)
}

func TestToProductDefaultsCurrency(t *testing.T) {
	req := &CreateProductRequest{
		Title:       "  Blue Denim Shirt ",
		Description: "Classic fit",
	}

	product := req.ToProduct(499.99, []string{"M", "L"})

	assert.Equal(t, "blue denim shirt", product.Title, "title is stored lowercase")
	assert.Equal(t, CurrencyINR, product.CurrencyID)
	assert.Equal(t, CurrencyFormatINR, product.CurrencyFormat)
	assert.InDelta(t, 499.99, product.Price, 1e-9)
	assert.Equal(t, []string{"M", "L"}, product.AvailableSizes)
	assert.False(t, product.IsFreeShipping)
	assert.False(t, product.IsDeleted)
	assert.True(t, product.IsActive())
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
}

func TestToProductKeepsRequestedCurrency(t *testing.T) {
	shipping := true
	installments := 6
	req := &CreateProductRequest{
		Title:          "Hooded Jacket",
		Description:    "Winter wear",
		CurrencyID:     CurrencyUSD,
		CurrencyFormat: CurrencyFormatUSD,
		IsFreeShipping: &shipping,
		Installments:   &installments,
	}

	product := req.ToProduct(89, []string{"XL"})

	assert.Equal(t, CurrencyUSD, product.CurrencyID)
	assert.Equal(t, CurrencyFormatUSD, product.CurrencyFormat)
	assert.True(t, product.IsFreeShipping)
	assert.Equal(t, 6, product.Installments)
}

func TestUpdateProductRequestIsEmpty(t *testing.T) {
	assert.True(t, (&UpdateProductRequest{}).IsEmpty())

	title := "new title"
	assert.False(t, (&UpdateProductRequest{Title: &title}).IsEmpty())
	assert.False(t, (&UpdateProductRequest{AvailableSizes: []string{"S"}}).IsEmpty())
}
