package handler

import (
	"context"
	"errors"
	"strings"

	"loyalt/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
)

type ctxKey string

var ctxKeyAuthUser ctxKey = "AUTH_USER"
var ctxKeyAuthShop ctxKey = "AUTH_SHOP"

// Authn parses the bearer token and attaches the identity to the request
// context. It does NOT terminate unauthenticated requests; handlers decide.
func Authn(verifier interface {
	Validate(token string) (*models.AuthUser, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			user, err := verifier.Validate(token)
			if err != nil {
				// although it's a client error, we don't want to leak details
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthUser, user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveAuthUser(ctx context.Context) (*models.AuthUser, error) {
	userAuth, ok := ctx.Value(ctxKeyAuthUser).(*models.AuthUser)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	return userAuth, nil
}

// AuthnVendor resolves the shop behind the X-Api-Key header and terminates
// the request when the key is missing or unknown.
func AuthnVendor(verifier interface {
	ValidateAPIKey(ctx context.Context, apiKey string) (*models.Shop, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("X-Api-Key")
			if header == "" {
				httpx.Abort(c, errorx.Wrap(errors.New("unauthorized"), errorx.Authn), -1)
				return nil
			}

			shop, err := verifier.ValidateAPIKey(c.Request().Context(), header)
			if err != nil {
				httpx.Abort(c, errorx.Wrap(errors.New("unauthorized"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthShop, shop)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveValidShop(ctx context.Context) (*models.Shop, error) {
	shop, ok := ctx.Value(ctxKeyAuthShop).(*models.Shop)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	return shop, nil
}
