package handler

import (
	"errors"

	"loyalt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupScan struct {
	container *do.Injector
}

type scanRequest struct {
	Payload string `json:"payload"`
}

func (gr *groupScan) Scan(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveAuthUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid request body"), errorx.Validation))
	}

	serviceScan, err := do.Invoke[*services.ServiceScan](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceScan.HandleScan(ctx, userAuth, req.Payload)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupScan) Activity(c echo.Context) error {
	ctx := c.Request().Context()

	userAuth, err := ResolveAuthUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceScan, err := do.Invoke[*services.ServiceScan](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	entries, err := serviceScan.RecentActivity(ctx, userAuth)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, entries, nil)
}
