package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/permissions"
)

func TestEmbeddedPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	login := data.FindPermissions("/v1/auth/login", "POST")
	assert.True(t, login.Skip)

	list := data.FindPermissions("/v1/orders/", "GET")
	assert.True(t, list.Skip)

	status := data.FindPermissions("/v1/orders/{id}/status", "patch")
	assert.True(t, status.Allows("cashier"))
	assert.False(t, status.Allows(""))

	cashiers := data.FindPermissions("/v1/cashiers/", "POST")
	assert.True(t, cashiers.Allows("admin"))
	assert.False(t, cashiers.Allows("cashier"))

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/unknown", "GET"))
}

func TestParse(t *testing.T) {
	_, err := permissions.Parse([]byte("{"))
	assert.Error(t, err)

	data, err := permissions.Parse([]byte(`{"skip":true,"endpoints":[]}`))
	require.NoError(t, err)
	assert.True(t, data.Skip)
}
