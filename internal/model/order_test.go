package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	o := &Order{Items: []OrderDetail{
		{Price: decimal.NewFromInt(100), Quantity: 2},
		{Price: decimal.NewFromInt(50), Quantity: 1},
	}}
	assert.Equal(t, "250", o.Total().String())
}

func TestOrderTotal_Empty(t *testing.T) {
	o := &Order{}
	assert.True(t, o.Total().IsZero())
}

func TestOrderTotal_FractionalPrices(t *testing.T) {
	o := &Order{Items: []OrderDetail{
		{Price: decimal.RequireFromString("10.50"), Quantity: 3},
	}}
	assert.Equal(t, "31.50", o.Total().StringFixed(2))
}
