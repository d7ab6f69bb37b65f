package handler

import (
	"net/http"

	"loyalt/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🏪")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		serviceQRCode, err := do.Invoke[*services.ServiceQRCode](cfg.Container)
		if err != nil {
			return nil, err
		}

		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated requests.

		u := groupUser{cfg.Container}
		routesAPIv1.GET("/user/me", u.Me)
		routesAPIv1.GET("/user/transactions", u.Transactions)

		sc := groupScan{cfg.Container}
		routesAPIv1.POST("/scan", sc.Scan)
		routesAPIv1.GET("/scan/activity", sc.Activity)

		rw := groupReward{cfg.Container}
		routesAPIv1.GET("/rewards", rw.List)
		routesAPIv1.GET("/user/rewards", rw.Wallet)
		routesAPIv1.POST("/reward/:reward/claim", rw.Claim)
		routesAPIv1.POST("/reward/:reward/redeem", rw.Redeem)

		sh := groupShop{cfg.Container}
		routesAPIv1.GET("/shops", sh.List)
		routesAPIv1.GET("/shop/:shop", sh.Show)

		routesAPIv1Vendor := routesAPIv1.Group("/vendor")
		routesAPIv1Vendor.Use(AuthnVendor(serviceQRCode))
		{
			v := groupVendor{cfg.Container}
			routesAPIv1Vendor.POST("/qr-codes", v.GenerateCode)
			routesAPIv1Vendor.GET("/qr-codes", v.ListCodes)
			routesAPIv1Vendor.GET("/qr-code/:code", v.ShowCode)
			routesAPIv1Vendor.GET("/rewards", v.Rewards)
			routesAPIv1Vendor.GET("/reward/:reward/qr-code", v.RewardCode)
			routesAPIv1Vendor.GET("/analytics", v.Stats)
		}
	}

	return r, nil
}
