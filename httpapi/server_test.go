package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaban/sonora/bootstrap"
	"github.com/shaban/sonora/controller"
	"github.com/shaban/sonora/httpapi"
)

func newTestServer(t *testing.T) (*httptest.Server, *controller.Controller) {
	t.Helper()
	factory, err := bootstrap.NewFactory(44100)
	require.NoError(t, err)

	ctrl, _ := controller.New(factory)
	e := httpapi.New(factory, ctrl, zerolog.Nop())
	return httptest.NewServer(e), ctrl
}

func TestGetTrack_EmptyController_404(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/tracks/999")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPutPluginInstanceThenTrack_SecondPutTrackIsNotImplemented(t *testing.T) {
	srv, ctrl := newTestServer(t)
	defer srv.Close()
	ctrl.SetBufferSize(256)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/plugin_instances/0",
		strings.NewReader(`{"plugin_id":"builtin_silence"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	trackBody := `{"name":"lead","volume":1,"plugin_instances":[0]}`

	req, err = http.NewRequest(http.MethodPut, srv.URL+"/tracks/1", strings.NewReader(trackBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err = http.NewRequest(http.MethodPut, srv.URL+"/tracks/1", strings.NewReader(trackBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestListPlugins_IncludesBuiltins(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/plugins")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "builtin_silence", got[0]["id"])
	assert.Equal(t, "builtin_sine", got[1]["id"])
}

func TestDeleteTrack_UnknownID_404(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/tracks/42", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPutPluginInstance_UnknownPluginID_500(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/plugin_instances/7",
		strings.NewReader(`{"plugin_id":"does_not_exist"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestResponsesCarryRequestID(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/plugins")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
