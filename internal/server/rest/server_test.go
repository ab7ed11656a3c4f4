package rest

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestServe_GracefulShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewServer(&stubService{err: common.ErrInvalidCredentials}, stubVerifier{},
		auth.NewCookieOptions("authToken", false, time.Hour), logging.Nop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Post("http://"+ln.Addr().String()+"/api/login", "application/json",
		strings.NewReader(`{"email":"a@b.co","password":"password123"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	s := NewServer(&stubService{}, stubVerifier{}, auth.NewCookieOptions("authToken", false, time.Hour), logging.Nop())

	err := s.Run(context.Background(), "256.0.0.1:bad")
	assert.Error(t, err)
}
