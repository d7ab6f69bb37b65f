package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Shop struct {
	bun.BaseModel `bun:"table:shop"`
	ID            string    `bun:"id,pk" json:"id"`
	OwnerID       string    `bun:"owner_id" json:"owner_id"`
	Name          string    `bun:"name" json:"name"`
	Description   string    `bun:"description" json:"description"`
	LogoURL       string    `bun:"logo_url" json:"logo_url"`
	Category      string    `bun:"category" json:"category"`
	Address       string    `bun:"address" json:"address"`
	Lat           float64   `bun:"lat" json:"lat"`
	Lng           float64   `bun:"lng" json:"lng"`
	Rating        float64   `bun:"rating" json:"rating"`
	APIKey        string    `bun:"api_key" json:"-"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
