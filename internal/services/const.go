package services

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotLoggedIn = errors.New("you need to be logged in")
var ErrShopNotFound = errors.New("shop not found")
var ErrRewardNotFound = errors.New("reward not found")
var ErrProfileNotFound = errors.New("user profile not found")
var ErrRewardAlreadyAcquired = errors.New("reward already acquired")
var ErrRedemptionLock = errors.New("another redemption is being processed")
var ErrCodeNotFound = errors.New("qr code not found")
var ErrCodeExpired = errors.New("QR code has expired")

const (
	CONFIG_SERVER_MODE                = "SERVER_MODE"
	CONFIG_SCAN_RATE_LIMIT_PER_MINUTE = "SCAN_RATE_LIMIT_PER_MINUTE"
	CONFIG_QR_RATE_LIMIT_PER_MINUTE   = "QR_RATE_LIMIT_PER_MINUTE"
	CONFIG_ACTIVITY_LOG_LIMIT         = "ACTIVITY_LOG_LIMIT"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_PRODUCTION  = "production"

	SCAN_RATE_LIMIT_PER_MINUTE = 30
	QR_RATE_LIMIT_PER_MINUTE   = 60
	ACTIVITY_LOG_LIMIT         = 20

	TRANSACTION_HISTORY_DEFAULT_LIMIT = 50

	REWARD_FILTER_ACTIVE    = "active"
	REWARD_FILTER_AVAILABLE = "available"
	REWARD_FILTER_EXPIRED   = "expired"

	CACHE_TTL_5_SECONDS = 5 * time.Second
	CACHE_TTL_1_MIN     = 1 * time.Minute
	CACHE_TTL_5_MINS    = 5 * time.Minute
	CACHE_TTL_15_MINS   = 15 * time.Minute
)

func LockKeyUserReward(userID string, rewardID string) string {
	return fmt.Sprintf("lock:user-reward:%s:%s", userID, rewardID)
}

// db
func DBKeyProfile(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func DBKeyShop(shopID string) string {
	return fmt.Sprintf("shop:%s", shopID)
}

func DBKeyShops() string {
	return "shops:all"
}

func DBKeyShopByAPIKey(apiKey string) string {
	return fmt.Sprintf("shop:by_api_key:%s", apiKey)
}

func DBKeyReward(rewardID string) string {
	return fmt.Sprintf("reward:%s", rewardID)
}

func DBKeyUserRewards(userID string) string {
	return fmt.Sprintf("user:%s:rewards", userID)
}

func DBKeyShopStats(shopID string, from time.Time) string {
	return fmt.Sprintf("shop_stats:%s:%s", shopID, from.UTC().Format("2006-01-02"))
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", key)
}

func LimitKeyUserScan(userID string) string {
	return fmt.Sprintf("limit:scan:%s", userID)
}

func LimitKeyShopQR(shopID string) string {
	return fmt.Sprintf("limit:qr:%s", shopID)
}
