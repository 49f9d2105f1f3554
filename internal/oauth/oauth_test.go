package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"jakca/internal/config"
)

func newFakeProvider(t *testing.T, name, profile string) (*Manager, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(profile))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	m := NewManager(config.Config{JWTSecret: "state-secret"})
	m.Register(&Provider{
		Name: name,
		Config: &oauth2.Config{
			ClientID:     "client",
			ClientSecret: "secret",
			Endpoint: oauth2.Endpoint{
				AuthURL:   srv.URL + "/authorize",
				TokenURL:  srv.URL + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			RedirectURL: "http://localhost/auth/" + name + "/callback",
		},
		ProfileURL: srv.URL + "/profile",
	})
	return m, srv
}

func stateFrom(t *testing.T, authURL string) string {
	t.Helper()
	u, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}
	return u.Query().Get("state")
}

func TestKakaoExchangeWithoutEmail(t *testing.T) {
	m, _ := newFakeProvider(t, "kakao", `{"id":123456,"properties":{"nickname":"카페러"}}`)

	authURL, err := m.AuthCodeURL("kakao")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	identity, err := m.Exchange(context.Background(), "kakao", "good-code", stateFrom(t, authURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Provider != "kakao" || identity.Subject != "123456" {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if identity.Email != "" {
		t.Fatalf("expected empty email, got %q", identity.Email)
	}
	if identity.Metadata["nickname"] != "카페러" {
		t.Fatalf("expected nickname from properties, got %+v", identity.Metadata)
	}
}

func TestGoogleExchange(t *testing.T) {
	m, _ := newFakeProvider(t, "google", `{"sub":"g-1","email":"writer@example.com","name":"Writer"}`)

	authURL, _ := m.AuthCodeURL("google")
	identity, err := m.Exchange(context.Background(), "google", "good-code", stateFrom(t, authURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Subject != "g-1" || identity.Email != "writer@example.com" || identity.Metadata["full_name"] != "Writer" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestExchangeRejectsBadState(t *testing.T) {
	m, _ := newFakeProvider(t, "google", `{"sub":"g-1"}`)

	if _, err := m.Exchange(context.Background(), "google", "good-code", "forged"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	kakaoState, err := m.signState("kakao")
	if err != nil {
		t.Fatalf("sign state: %v", err)
	}
	if _, err := m.Exchange(context.Background(), "google", "good-code", kakaoState); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("state for another provider must be rejected, got %v", err)
	}

	authURL, _ := m.AuthCodeURL("google")
	m.now = func() time.Time { return time.Now().Add(time.Hour) }
	if _, err := m.Exchange(context.Background(), "google", "good-code", stateFrom(t, authURL)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expired state must be rejected, got %v", err)
	}
}

func TestExchangeBadCode(t *testing.T) {
	m, _ := newFakeProvider(t, "google", `{"sub":"g-1"}`)
	authURL, _ := m.AuthCodeURL("google")

	if _, err := m.Exchange(context.Background(), "google", "bad-code", stateFrom(t, authURL)); err == nil {
		t.Fatalf("expected exchange error")
	}
}

func TestUnknownProvider(t *testing.T) {
	m := NewManager(config.Config{JWTSecret: "s"})
	if _, err := m.AuthCodeURL("github"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestNewManagerRegistersConfiguredProviders(t *testing.T) {
	m := NewManager(config.Config{
		JWTSecret:            "s",
		GoogleClientID:       "gid",
		GoogleClientSecret:   "gsecret",
		OAuthRedirectBaseURL: "https://api.example.com/",
	})
	if _, ok := m.providers["google"]; !ok {
		t.Fatalf("expected google provider")
	}
	if _, ok := m.providers["kakao"]; ok {
		t.Fatalf("kakao has no credentials and must not be registered")
	}
	if got := m.providers["google"].Config.RedirectURL; got != "https://api.example.com/auth/google/callback" {
		t.Fatalf("unexpected redirect url %q", got)
	}
}
