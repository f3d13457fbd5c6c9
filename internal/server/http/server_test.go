package http

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/reformguide/internal/logging"
	"github.com/dmitrijs2005/reformguide/internal/server/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup("u1", "p", "Al", nil)

	env.do(http.MethodGet, "/user", nil, nil)
	env.do(http.MethodGet, "/user", nil, accessHeader(pair))
	env.clock.Advance(accessTTL + time.Second)
	env.do(http.MethodGet, "/user", nil, bothHeaders(pair))

	m := env.srv.metrics
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionResolutions.WithLabelValues(outcomeMissingCredentials)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionResolutions.WithLabelValues(outcomeAuthenticated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionResolutions.WithLabelValues(outcomeRefreshed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodPost, "/signin", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/user", "403")))

	rec := env.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reformguide_http_requests_total")
	assert.Contains(t, rec.Body.String(), `reformguide_session_resolutions_total{outcome="refreshed"} 1`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	clock := func() time.Time { return time.Now() }
	issuer := auth.NewIssuer(auth.NewCodec([]byte(testSecret), auth.WithClock(clock)), accessTTL, refreshTTL)
	users := newFakeUsers(issuer)
	logger := logging.NewJSONLogger(io.Discard, slog.LevelError)

	srv := NewHTTPServer("127.0.0.1:0", logger, users, &fakeReforms{}, auth.NewAuthenticator(issuer, users),
		prometheus.NewRegistry(), 1<<20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	env := newTestEnv(t)
	env.srv.address = ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = env.srv.Run(ctx)
	assert.Error(t, err, "address already in use")
}
