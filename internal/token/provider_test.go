package token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qpay-checkout-api/internal/config"
)

func testCfg(url string) config.GatewayCfg {
	return config.GatewayCfg{
		PlatformAppID:  "1111874689",
		PlatformSecret: "secret",
		TokenURL:       url,
		Timeout:        2 * time.Second,
	}
}

func TestAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "client_credential" {
			t.Errorf("missing grant_type, got query %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("appid") != "1111874689" {
			t.Errorf("unexpected appid: %s", r.URL.Query().Get("appid"))
		}
		w.Write([]byte(`{"access_token":"ACCESS_TOKEN_1","expires_in":7200}`))
	}))
	defer srv.Close()

	p := NewPlatformProvider(testCfg(srv.URL), nil)
	tok, err := p.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken failed: %v", err)
	}
	if tok != "ACCESS_TOKEN_1" {
		t.Errorf("token: got %q", tok)
	}
}

func TestAccessTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errcode":40013,"errmsg":"invalid appid"}`))
	}))
	defer srv.Close()

	p := NewPlatformProvider(testCfg(srv.URL), nil)
	if _, err := p.AccessToken(context.Background()); err == nil {
		t.Fatalf("expected error on rejected token")
	}
}

func TestAccessTokenTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewPlatformProvider(testCfg(srv.URL), nil)
	if _, err := p.AccessToken(context.Background()); err == nil {
		t.Fatalf("expected error on 5xx")
	}
}
