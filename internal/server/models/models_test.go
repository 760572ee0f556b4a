package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ospinae/termledger/internal/money"
)

func TestRole_Meets(t *testing.T) {
	tests := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleRoot, RoleCashier, true},
		{RoleRoot, RoleAdmin, true},
		{RoleRoot, RoleRoot, true},
		{RoleAdmin, RoleCashier, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleRoot, false},
		{RoleCashier, RoleCashier, true},
		{RoleCashier, RoleAdmin, false},
		{Role("GUEST"), RoleCashier, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.Meets(tt.min), "%s meets %s", tt.role, tt.min)
	}
}

func TestConcept_ValidValue(t *testing.T) {
	assert.True(t, (&Concept{Kind: ConceptFixed, Value: 0}).ValidValue())
	assert.True(t, (&Concept{Kind: ConceptFixed, Value: money.MaxFixedCommission}).ValidValue())
	assert.False(t, (&Concept{Kind: ConceptFixed, Value: -1}).ValidValue())
	assert.True(t, (&Concept{Kind: ConceptRate, Value: money.RateScale}).ValidValue())
	assert.False(t, (&Concept{Kind: ConceptRate, Value: money.RateScale + 1}).ValidValue())
	assert.False(t, (&Concept{Kind: ConceptKind("PERCENT"), Value: 1}).ValidValue())
}

func TestResolution_Mapping(t *testing.T) {
	assert.Equal(t, RequestApproved, ResolutionApproved.RequestStatus())
	assert.Equal(t, RequestRejected, ResolutionDenied.RequestStatus())
	assert.Equal(t, TransactionReversed, ResolutionApproved.TransactionStatus())
	assert.Equal(t, TransactionRegistered, ResolutionDenied.TransactionStatus())
	assert.True(t, ResolutionApproved.Valid())
	assert.True(t, ResolutionDenied.Valid())
	assert.False(t, Resolution("").Valid())
	assert.False(t, Resolution("MAYBE").Valid())
}
