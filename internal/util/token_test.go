package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAuthToken(t *testing.T) {
	token, err := GenerateAuthToken()
	assert.NoError(t, err)
	assert.Len(t, token, 40)

	other, err := GenerateAuthToken()
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)
}
