package main

import (
	"flag"
	"testing"

	"github.com/alextreichler/pharmadmin/internal/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersFlagsBuildState(t *testing.T) {
	f := newOrdersFlags(flag.ContinueOnError)
	require.NoError(t, f.Parse([]string{
		"-amount", "15.50",
		"-status", "Shipped",
		"-customer", "alice",
		"-payment-type", "COD",
		"-paid", "false",
		"-from", "2024-05-01",
		"-to", "2024-05-31",
		"-limit", "20",
		"-page", "3",
	}))

	state, err := f.state()
	require.NoError(t, err)
	assert.Equal(t, listing.OrderFilter{
		StartDate:     "2024-05-01",
		EndDate:       "2024-05-31",
		Email:         "alice",
		PaymentType:   "COD",
		Amount:        "15.50",
		Status:        "Shipped",
		PaymentStatus: "false",
	}, state.Filter)
	assert.Equal(t, 20, state.PageSize)
	assert.Equal(t, 3, state.Page)
}

func TestOrdersFlagsRejectPageSize(t *testing.T) {
	f := newOrdersFlags(flag.ContinueOnError)
	require.NoError(t, f.Parse([]string{"-limit", "7"}))

	_, err := f.state()
	assert.ErrorIs(t, err, listing.ErrInvalidPageSize)
}
