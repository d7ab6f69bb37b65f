package handler

import (
	"loyalt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupReward struct {
	container *do.Injector
}

// List returns catalogue rewards the caller can still claim.
func (gr *groupReward) List(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveAuthUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rewards, err := serviceReward.ListAvailableRewards(ctx, userAuth.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, rewards, nil)
}

// Wallet returns the caller's claimed rewards, optionally filtered with
// ?filter=active|expired.
func (gr *groupReward) Wallet(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveAuthUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	details, err := serviceReward.ListUserRewards(ctx, userAuth.ID, c.QueryParam("filter"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, details, nil)
}

func (gr *groupReward) Claim(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveAuthUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	userReward, err := serviceReward.Claim(ctx, userAuth, c.Param("reward"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, userReward, nil)
}

func (gr *groupReward) Redeem(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveAuthUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceReward.Redeem(ctx, userAuth, c.Param("reward"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}
