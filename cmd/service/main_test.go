package main

import (
	"testing"

	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServicesFor(t *testing.T) {
	all, err := servicesFor("all")
	require.NoError(t, err)
	assert.Equal(t, rpc.Services, all)

	one, err := servicesFor(rpc.ServiceIncomes)
	require.NoError(t, err)
	assert.Equal(t, []string{rpc.ServiceIncomes}, one)

	_, err = servicesFor("payments")
	assert.Error(t, err)
}
