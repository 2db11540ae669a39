package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shaban/sonora/controller"
	"github.com/shaban/sonora/registry"
)

// Handler holds the dependencies sonora's control-surface routes need:
// the factory for plugin metadata/creation and the controller for
// track/plugin-instance state.
type Handler struct {
	Factory    *registry.Factory
	Controller *controller.Controller
}

func parseID(c echo.Context) (controller.IntId, error) {
	raw := c.Param("id")
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return controller.IntId(n), nil
}

// listPlugins handles GET /plugins.
func (h *Handler) listPlugins(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Factory.Metadata())
}

// listPluginInstances handles GET /plugin_instances.
func (h *Handler) listPluginInstances(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Controller.PluginInstances())
}

// getPluginInstance handles GET /plugin_instances/{id}.
func (h *Handler) getPluginInstance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	meta, ok := h.Controller.PluginInstanceByID(id)
	if !ok {
		return c.String(http.StatusNotFound, "PluginInstanceDoesNotExist")
	}
	return c.JSON(http.StatusOK, meta)
}

// putPluginInstance handles PUT /plugin_instances/{id}: creation only,
// the id in the path always wins over any id in the body.
func (h *Handler) putPluginInstance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	var meta controller.PluginInstanceMetadata
	if err := c.Bind(&meta); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	meta.ID = id

	if err := h.Controller.CreatePluginInstance(meta); err != nil {
		return c.String(statusForPut(err), err.Error())
	}
	return c.JSON(http.StatusOK, meta)
}

// listTracks handles GET /tracks.
func (h *Handler) listTracks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Controller.Tracks())
}

// getTrack handles GET /tracks/{id}.
func (h *Handler) getTrack(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	t, ok := h.Controller.TrackByID(id)
	if !ok {
		return c.String(http.StatusNotFound, "TrackDoesNotExist")
	}
	return c.JSON(http.StatusOK, t)
}

// putTrack handles PUT /tracks/{id}: creation only, the id in the path
// always wins over any id in the body.
func (h *Handler) putTrack(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	var t controller.Track
	if err := c.Bind(&t); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	t.ID = id

	if err := h.Controller.AddTrack(t); err != nil {
		return c.String(statusForPut(err), err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

// deleteTrack handles DELETE /tracks/{id}.
func (h *Handler) deleteTrack(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	if err := h.Controller.DeleteTrack(id); err != nil {
		return c.String(statusFor(err), err.Error())
	}
	return c.NoContent(http.StatusOK)
}
