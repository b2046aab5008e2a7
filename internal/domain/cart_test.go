package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartSnapshot_RecomputeTotal(t *testing.T) {
	s := CartSnapshot{
		Items: []CartItem{
			{ProductID: 1, Price: 10, Quantity: 2},
			{ProductID: 2, Price: 5, Quantity: 1},
		},
		Total: 999,
	}

	s.RecomputeTotal()

	assert.InDelta(t, 25.0, s.Total, 1e-9)
}

func TestCartSnapshot_TotalQuantity(t *testing.T) {
	s := CartSnapshot{
		Items: []CartItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
	}

	assert.Equal(t, 5, s.TotalQuantity())
	assert.Equal(t, 0, CartSnapshot{}.TotalQuantity())
}

func TestCartSnapshot_FindItemIndex(t *testing.T) {
	s := CartSnapshot{
		Items: []CartItem{
			{ProductID: 10},
			{ProductID: 20},
		},
	}

	assert.Equal(t, 1, s.FindItemIndex(20))
	assert.Equal(t, -1, s.FindItemIndex(99))
}

func TestCartSnapshot_Clone_Isolated(t *testing.T) {
	s := CartSnapshot{
		Items: []CartItem{{ProductID: 1, Quantity: 1}},
		Total: 10,
	}

	c := s.Clone()
	c.Items[0].Quantity = 99

	assert.Equal(t, 1, s.Items[0].Quantity)
}

func TestShippingQuote_Usable(t *testing.T) {
	assert.True(t, ShippingQuote{CarrierName: "Correios"}.Usable())
	assert.False(t, ShippingQuote{CarrierName: "Jadlog", Error: "range not served"}.Usable())
}
