package models

import "time"

// ScanResult is what the UI layer shows after a scan is processed.
type ScanResult struct {
	Type            string  `json:"type"`
	Message         string  `json:"message"`
	Points          int     `json:"points,omitempty"`
	TotalPoints     int     `json:"total_points,omitempty"`
	MembershipLevel string  `json:"membership_level,omitempty"`
	Reward          *Reward `json:"reward,omitempty"`
}

// ScanActivity is one entry of the device-scoped recent-activity log.
// It lives in redis only, bounded to the most recent entries.
type ScanActivity struct {
	Type      string    `json:"type" msgpack:"type"`
	ShopID    string    `json:"shop_id" msgpack:"shop_id"`
	Points    int       `json:"points" msgpack:"points"`
	Message   string    `json:"message" msgpack:"message"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
}
