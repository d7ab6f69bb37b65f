package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserReward links a profile to a reward definition. Once redeemed it is
// terminal; there is no un-redeem.
type UserReward struct {
	bun.BaseModel `bun:"table:user_reward"`
	ID            string     `bun:"id,pk" json:"id"`
	UserID        string     `bun:"user_id" json:"user_id"`
	RewardID      string     `bun:"reward_id" json:"reward_id"`
	ShopID        string     `bun:"shop_id" json:"shop_id"`
	AcquiredDate  time.Time  `bun:"acquired_date" json:"acquired_date"`
	ExpiryDate    time.Time  `bun:"expiry_date" json:"expiry_date"`
	Redeemed      bool       `bun:"redeemed" json:"redeemed"`
	RedeemedDate  *time.Time `bun:"redeemed_date" json:"redeemed_date"`
}

// UserRewardDetail pairs the ownership row with its reward definition for
// listing endpoints.
type UserRewardDetail struct {
	UserReward
	Reward *Reward `json:"reward"`
}
