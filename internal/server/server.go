package server

import (
	"pos/internal/config"
	"pos/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Checkout *handler.CheckoutHandler
	Report   *handler.ReportHandler
}

// New はechoを組み立ててルートを登録する
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Report.RegisterRoutes(e, cfg)

	return e
}
