package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/pet-hostel/internal/model"
)

func TestScopeFor(t *testing.T) {
	cases := []struct {
		role string
		want Scope
	}{
		{model.RoleCustomer, Scope{CustomerID: 42}},
		{model.RoleStaff, Scope{}},
		{model.RoleAdmin, Scope{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScopeFor(tc.role, 42), "role %s", tc.role)
	}
}

func TestScopeRestricted(t *testing.T) {
	assert.True(t, Scope{CustomerID: 1}.restricted())
	assert.False(t, Scope{}.restricted())
}
