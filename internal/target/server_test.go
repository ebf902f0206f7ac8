package target

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerEndpoints(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ok")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/broken")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestFlakyReturnsKnownStatuses(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	for i := 0; i < 20; i++ {
		resp, err := http.Get(srv.URL + "/flaky")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Contains(t, []int{
			http.StatusOK,
			http.StatusInternalServerError,
			http.StatusTooManyRequests,
		}, resp.StatusCode)
	}
}
