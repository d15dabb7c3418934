package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 20, ClampLimit(-3, 20, 100))
	assert.Equal(t, 7, ClampLimit(7, 20, 100))
	assert.Equal(t, 100, ClampLimit(500, 20, 100))
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 15, ParseLimit(" 15 "))
	assert.Equal(t, 0, ParseLimit("abc"))
	assert.Equal(t, 0, ParseLimit(""))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Truck 12", "truck"))
	assert.True(t, ContainsFold("anything", "  "))
	assert.False(t, ContainsFold("Loader", "truck"))
}

func TestGenerateUUID(t *testing.T) {
	a, b := GenerateUUID(), GenerateUUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
