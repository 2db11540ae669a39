package httpapi

import (
	"errors"
	"net/http"

	"github.com/shaban/sonora/controller"
)

// statusFor maps a controller error to the status code spec.md §6
// assigns it for read/delete endpoints.
func statusFor(err error) int {
	var cerr *controller.Error
	if !errors.As(err, &cerr) {
		return http.StatusInternalServerError
	}
	switch cerr.Kind {
	case controller.TrackDoesNotExist, controller.PluginInstanceDoesNotExist:
		return http.StatusNotFound
	case controller.TrackUpdateNotImplemented,
		controller.PluginInstanceUpdateNotImplemented,
		controller.MovingPluginInstancesBetweenTracksNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// statusForPut maps a controller error for the PUT endpoints, where a
// resource that already exists means the client tried to update it,
// which is explicitly unsupported (spec.md §6 "501 if already exists").
func statusForPut(err error) int {
	var cerr *controller.Error
	if errors.As(err, &cerr) {
		switch cerr.Kind {
		case controller.TrackAlreadyExists, controller.PluginInstanceAlreadyExists:
			return http.StatusNotImplemented
		}
	}
	return statusFor(err)
}
