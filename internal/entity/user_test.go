package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHashPassword(t *testing.T) {
	u := &User{Password: "s3cret"}

	require.NoError(t, u.HashPassword())

	assert.NotEqual(t, "s3cret", u.Password)
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("other"))
}

func TestUserCheckPasswordOnPlainTextFails(t *testing.T) {
	u := &User{Password: "s3cret"}

	assert.False(t, u.CheckPassword("s3cret"))
}
