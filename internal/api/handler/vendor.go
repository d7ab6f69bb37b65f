package handler

import (
	"errors"
	"time"

	"loyalt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupVendor struct {
	container *do.Injector
}

type generateCodeRequest struct {
	Points      int    `json:"points"`
	Description string `json:"description"`
	SingleUse   bool   `json:"single_use"`
	ExpiresIn   int    `json:"expires_in_days"`
}

func (gr *groupVendor) GenerateCode(c echo.Context) error {
	ctx := c.Request().Context()

	shop, err := ResolveValidShop(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req generateCodeRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid request body"), errorx.Validation))
	}

	expiresIn := req.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 30
	}
	expiry := time.Now().AddDate(0, 0, expiresIn)

	serviceQRCode, err := do.Invoke[*services.ServiceQRCode](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	generated, err := serviceQRCode.GeneratePointsCode(ctx, shop, req.Points, req.Description, req.SingleUse, expiry)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, generated, nil)
}

func (gr *groupVendor) ListCodes(c echo.Context) error {
	ctx := c.Request().Context()

	shop, err := ResolveValidShop(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceQRCode, err := do.Invoke[*services.ServiceQRCode](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	codes, err := serviceQRCode.ListCodes(ctx, shop.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, codes, nil)
}

// ShowCode lets the dashboard check a code record, including whether a
// single-use code has already been consumed.
func (gr *groupVendor) ShowCode(c echo.Context) error {
	ctx := c.Request().Context()

	shop, err := ResolveValidShop(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceQRCode, err := do.Invoke[*services.ServiceQRCode](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	code, err := serviceQRCode.ValidateCode(ctx, shop, c.Param("code"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, code, nil)
}

func (gr *groupVendor) RewardCode(c echo.Context) error {
	ctx := c.Request().Context()

	shop, err := ResolveValidShop(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceQRCode, err := do.Invoke[*services.ServiceQRCode](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	payload, err := serviceQRCode.GenerateRewardCode(ctx, shop, c.Param("reward"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"payload": payload,
	}, nil)
}

func (gr *groupVendor) Rewards(c echo.Context) error {
	ctx := c.Request().Context()

	shop, err := ResolveValidShop(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAnalytics, err := do.Invoke[*services.ServiceAnalytics](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rewards, err := serviceAnalytics.ListShopRewards(ctx, shop.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, rewards, nil)
}

func (gr *groupVendor) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	shop, err := ResolveValidShop(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	from := time.Now().AddDate(0, 0, -30)
	if fromParam := c.QueryParam("from"); fromParam != "" {
		parsed, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid from date"), errorx.Validation))
		}
		from = parsed
	}

	serviceAnalytics, err := do.Invoke[*services.ServiceAnalytics](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	stats, err := serviceAnalytics.GetShopStats(ctx, shop.ID, from)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, stats, nil)
}
