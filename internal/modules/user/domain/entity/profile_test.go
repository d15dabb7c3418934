package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWantsDigestEmail(t *testing.T) {
	off, on := false, true
	assert.True(t, Profile{Email: "a@x.io"}.WantsDigestEmail())
	assert.True(t, Profile{Email: "a@x.io", EmailDigestEnabled: &on}.WantsDigestEmail())
	assert.False(t, Profile{Email: "a@x.io", EmailDigestEnabled: &off}.WantsDigestEmail())
	assert.False(t, Profile{}.WantsDigestEmail())
}

func TestActorRoles(t *testing.T) {
	assert.True(t, Actor{Role: RoleOwner}.CanManageTrendActions())
	assert.True(t, Actor{Role: RoleMechanic}.CanManageTrendActions())
	assert.False(t, Actor{Role: RoleDriver}.CanManageTrendActions())
	assert.True(t, Actor{Role: RoleOwner}.IsOwner())
	assert.False(t, Actor{Role: RoleMechanic}.IsOwner())
}
