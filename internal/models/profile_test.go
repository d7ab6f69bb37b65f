package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, MembershipStandard},
		{249, MembershipStandard},
		{250, MembershipSilver},
		{499, MembershipSilver},
		{500, MembershipGold},
		{999, MembershipGold},
		{1000, MembershipPlatinum},
		{5000, MembershipPlatinum},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForPoints(tt.points), "points=%d", tt.points)
	}
}
