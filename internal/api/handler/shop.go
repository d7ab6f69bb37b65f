package handler

import (
	"loyalt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupShop struct {
	container *do.Injector
}

func (gr *groupShop) List(c echo.Context) error {
	ctx := c.Request().Context()

	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	shops, err := serviceShop.ListShops(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, shops, nil)
}

func (gr *groupShop) Show(c echo.Context) error {
	ctx := c.Request().Context()

	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	shop, err := serviceShop.GetShop(ctx, c.Param("shop"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, shop, nil)
}
