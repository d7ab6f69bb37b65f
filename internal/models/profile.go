package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RoleClient = "client"
	RoleVendor = "vendor"

	MembershipStandard = "standard"
	MembershipSilver   = "silver"
	MembershipGold     = "gold"
	MembershipPlatinum = "platinum"

	SilverThreshold   = 250
	GoldThreshold     = 500
	PlatinumThreshold = 1000
)

type Profile struct {
	bun.BaseModel   `bun:"table:profile"`
	ID              string    `bun:"id,pk" json:"id"`
	UserID          string    `bun:"user_id" json:"user_id"`
	Name            string    `bun:"name" json:"name"`
	Role            string    `bun:"role" json:"role"`
	Points          int       `bun:"points" json:"points"`
	MembershipLevel string    `bun:"membership_level" json:"membership_level"`
	CreatedAt       time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time `bun:"updated_at" json:"updated_at"`
}

// TierForPoints derives the membership level from a point balance.
// The stored level must always match this derivation, including after
// deductions drop a balance below a threshold.
func TierForPoints(points int) string {
	switch {
	case points >= PlatinumThreshold:
		return MembershipPlatinum
	case points >= GoldThreshold:
		return MembershipGold
	case points >= SilverThreshold:
		return MembershipSilver
	default:
		return MembershipStandard
	}
}

// AuthUser only use in middleware
type AuthUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
