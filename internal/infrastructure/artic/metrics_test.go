package artic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheEntriesGaugeDropsWhenEntryExpires(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"title":"The Old Guitarist"}}`))
	}))
	defer srv.Close()

	cfg := &Config{BaseURL: srv.URL, Timeout: time.Second, CacheTTL: 30 * time.Millisecond, CacheMaxSize: 10}
	client := NewClient(cfg, NewTitleCache(cfg), nil)

	title, err := client.ResolveTitle(context.Background(), "28067")
	require.NoError(t, err)
	require.NotNil(t, title)
	assert.Equal(t, float64(1), testutil.ToFloat64(titleCacheEntries))

	time.Sleep(60 * time.Millisecond)

	_, err = client.ResolveTitle(context.Background(), "28067")
	require.Error(t, err)
	assert.Equal(t, float64(0), testutil.ToFloat64(titleCacheEntries))
}
