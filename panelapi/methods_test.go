package panelapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/restaurant-panel/panelapi"
)

func TestIsMutating(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace} {
		require.False(t, panelapi.IsMutating(method), method)
	}
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		require.True(t, panelapi.IsMutating(method), method)
	}
}
