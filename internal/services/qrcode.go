package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"loyalt/internal/datastore"
	"loyalt/internal/interfaces"
	"loyalt/internal/models"
	"loyalt/internal/pkg/caching"
	"loyalt/internal/pkg/limiter"
	"loyalt/internal/pkg/qr"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

var ErrInvalidAPIKey = errors.New("invalid api key")
var ErrInvalidPointsValue = errors.New("points value must be positive")
var ErrRewardWrongShop = errors.New("reward belongs to a different shop")

// GeneratedCode bundles a stored code record with the payload the vendor
// prints into the QR image.
type GeneratedCode struct {
	Code    *models.QRCode `json:"code"`
	Payload string         `json:"payload"`
}

// ServiceQRCode is the vendor-facing side: api-key resolution and code
// generation. It talks to postgres directly, there is no offline variant.
type ServiceQRCode struct {
	container *do.Injector
	db        *bun.DB
	cache     caching.Cache
	limiter   interfaces.Limiter
}

func NewServiceQRCode(container *do.Injector) (*ServiceQRCode, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	rate, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	return &ServiceQRCode{container, db, cache, rate}, nil
}

// ValidateAPIKey resolves the shop behind a dashboard api key.
func (service *ServiceQRCode) ValidateAPIKey(ctx context.Context, apiKey string) (*models.Shop, error) {
	if apiKey == "" {
		return nil, errorx.Wrap(ErrInvalidAPIKey, errorx.Authn)
	}

	callback := func() (*models.Shop, error) {
		return datastore.FindShopByAPIKey(ctx, service.db, apiKey)
	}

	shop, err := caching.UseCache(ctx, service.cache, DBKeyShopByAPIKey(apiKey), CACHE_TTL_5_MINS, callback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrInvalidAPIKey, errorx.Authn)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return shop, nil
}

// GeneratePointsCode stores a point-grant code for the shop and returns it
// together with the JSON payload to encode.
func (service *ServiceQRCode) GeneratePointsCode(ctx context.Context, shop *models.Shop, points int, description string, singleUse bool, expiry time.Time) (*GeneratedCode, error) {
	if points <= 0 {
		return nil, errorx.Wrap(ErrInvalidPointsValue, errorx.Validation)
	}

	err := service.limiter.Allow(ctx, LimitKeyShopQR(shop.ID), redis_rate.PerMinute(QR_RATE_LIMIT_PER_MINUTE))
	if errors.Is(err, limiter.ErrRateLimited) {
		return nil, errorx.Wrap(err, errorx.RateLimiting)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()
	code := &models.QRCode{
		ShopID:      shop.ID,
		PointsValue: points,
		Description: description,
		ExpiryDate:  expiry,
		IsSingleUse: singleUse,
		CreatedAt:   now,
	}
	if err := datastore.InsertQRCode(ctx, service.db, code); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	payload, err := qr.EncodeVendorJSON(shop.ID, code.ID, points, description, now)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return &GeneratedCode{Code: code, Payload: payload}, nil
}

// GenerateRewardCode emits the positional payload for one of the shop's
// rewards. Nothing is stored, the reward row is the source of truth.
func (service *ServiceQRCode) GenerateRewardCode(ctx context.Context, shop *models.Shop, rewardID string) (string, error) {
	reward, err := datastore.GetReward(ctx, service.db, rewardID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errorx.Wrap(ErrRewardNotFound, errorx.NotExist)
	}
	if err != nil {
		return "", errorx.Wrap(err, errorx.Service)
	}

	if reward.ShopID != shop.ID {
		return "", errorx.Wrap(ErrRewardWrongShop, errorx.Invalid)
	}

	payload := &qr.Payload{
		Kind:   qr.KindReward,
		ShopID: shop.ID,
		Value:  0,
		ID:     reward.ID,
	}

	encoded, err := payload.Encode()
	if err != nil {
		return "", errorx.Wrap(err, errorx.Service)
	}

	return encoded, nil
}

// ValidateCode returns one of the shop's code records so the dashboard can
// check whether a single-use code has been consumed.
func (service *ServiceQRCode) ValidateCode(ctx context.Context, shop *models.Shop, codeID string) (*models.QRCode, error) {
	code, err := datastore.GetQRCode(ctx, service.db, codeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrCodeNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if code.ShopID != shop.ID {
		return nil, errorx.Wrap(ErrCodeNotFound, errorx.NotExist)
	}

	return code, nil
}

func (service *ServiceQRCode) ListCodes(ctx context.Context, shopID string) ([]models.QRCode, error) {
	codes, err := datastore.ListQRCodesByShop(ctx, service.db, shopID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return codes, nil
}
