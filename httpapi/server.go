// Package httpapi is sonora's non-realtime control surface: a small
// echo server exposing the plugin registry and track/plugin-instance
// state the controller owns. It never touches the audio thread
// directly; every mutation goes through controller.Controller.
package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/shaban/sonora/controller"
	"github.com/shaban/sonora/registry"
)

// New builds an echo.Echo with sonora's routes, a request-id + access-log
// middleware pair, and the Prometheus scrape endpoint serving the default
// registry (promhttp.Handler).
func New(factory *registry.Factory, ctrl *controller.Controller, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestID())
	e.Use(accessLog(log))

	h := &Handler{Factory: factory, Controller: ctrl}

	e.GET("/plugins", h.listPlugins)
	e.GET("/plugin_instances", h.listPluginInstances)
	e.GET("/plugin_instances/:id", h.getPluginInstance)
	e.PUT("/plugin_instances/:id", h.putPluginInstance)
	e.GET("/tracks", h.listTracks)
	e.GET("/tracks/:id", h.getTrack)
	e.PUT("/tracks/:id", h.putTrack)
	e.DELETE("/tracks/:id", h.deleteTrack)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// requestIDHeader is the header sonora stamps on every response so a
// client can correlate a request with the matching access-log line.
const requestIDHeader = "X-Request-Id"

// requestID assigns a fresh uuid to every request that doesn't already
// carry one, and stores it for accessLog to read back.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set("request_id", id)
			c.Response().Header().Set(requestIDHeader, id)
			return next(c)
		}
	}
}

// accessLog writes one structured line per request through the
// component logger, the way the teacher's ErrorHandler routes every
// engine error through a single choke point.
func accessLog(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if status == 0 {
					status = http.StatusInternalServerError
				}
			}

			log.Info().
				Str("request_id", c.Get("request_id").(string)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Int("status", status).
				Dur("elapsed", time.Since(start)).
				Msg("request")

			return err
		}
	}
}
