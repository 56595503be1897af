package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoles(t *testing.T) {
	got := ParseRoles([]any{" Admin ", "user", "admin", "merchant", 42, nil})

	assert.Equal(t, Roles{RoleAdmin, RoleUser}, got)
	assert.True(t, got.Contains(RoleAdmin))
	assert.Empty(t, ParseRoles(nil))
}
