// Package oauth signs users in through Google and Kakao.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"jakca/internal/config"
	"jakca/internal/service"
)

var (
	ErrUnknownProvider = errors.New("unknown identity provider")
	ErrInvalidState    = errors.New("invalid oauth state")
)

const stateTTL = 10 * time.Minute

var kakaoEndpoint = oauth2.Endpoint{
	AuthURL:   "https://kauth.kakao.com/oauth/authorize",
	TokenURL:  "https://kauth.kakao.com/oauth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// Provider is one configured identity provider.
type Provider struct {
	Name       string
	Config     *oauth2.Config
	ProfileURL string
	parse      func(body []byte) (service.ProviderIdentity, error)
}

// Manager builds authorization URLs and resolves callbacks into identities.
type Manager struct {
	providers map[string]*Provider
	secret    []byte
	now       func() time.Time
}

// NewManager registers every provider that has credentials in cfg.
func NewManager(cfg config.Config) *Manager {
	m := &Manager{
		providers: map[string]*Provider{},
		secret:    []byte(cfg.JWTSecret),
		now:       time.Now,
	}
	base := strings.TrimRight(cfg.OAuthRedirectBaseURL, "/")

	if cfg.OAuthEnabled("google") {
		m.Register(&Provider{
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     endpoints.Google,
				RedirectURL:  base + "/auth/google/callback",
				Scopes:       []string{"openid", "email", "profile"},
			},
			ProfileURL: "https://openidconnect.googleapis.com/v1/userinfo",
			parse:      parseGoogleProfile,
		})
	}
	if cfg.OAuthEnabled("kakao") {
		m.Register(&Provider{
			Name: "kakao",
			Config: &oauth2.Config{
				ClientID:     cfg.KakaoClientID,
				ClientSecret: cfg.KakaoClientSecret,
				Endpoint:     kakaoEndpoint,
				RedirectURL:  base + "/auth/kakao/callback",
				Scopes:       []string{"profile_nickname", "account_email"},
			},
			ProfileURL: "https://kapi.kakao.com/v2/user/me",
			parse:      parseKakaoProfile,
		})
	}
	return m
}

func (m *Manager) Register(p *Provider) {
	if p.parse == nil {
		p.parse = parserFor(p.Name)
	}
	m.providers[p.Name] = p
}

// AuthCodeURL returns the provider's consent page URL with a signed state.
func (m *Manager) AuthCodeURL(provider string) (string, error) {
	p, ok := m.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}
	state, err := m.signState(provider)
	if err != nil {
		return "", err
	}
	return p.Config.AuthCodeURL(state), nil
}

// Exchange verifies state, trades code for a token and fetches the profile.
func (m *Manager) Exchange(ctx context.Context, provider, code, state string) (service.ProviderIdentity, error) {
	p, ok := m.providers[provider]
	if !ok {
		return service.ProviderIdentity{}, ErrUnknownProvider
	}
	if err := m.verifyState(provider, state); err != nil {
		return service.ProviderIdentity{}, err
	}
	if strings.TrimSpace(code) == "" {
		return service.ProviderIdentity{}, fmt.Errorf("authorization code is required")
	}

	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return service.ProviderIdentity{}, fmt.Errorf("exchange %s code: %w", provider, err)
	}

	resp, err := p.Config.Client(ctx, token).Get(p.ProfileURL)
	if err != nil {
		return service.ProviderIdentity{}, fmt.Errorf("fetch %s profile: %w", provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return service.ProviderIdentity{}, fmt.Errorf("read %s profile: %w", provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return service.ProviderIdentity{}, fmt.Errorf("%s profile returned %d", provider, resp.StatusCode)
	}

	identity, err := p.parse(body)
	if err != nil {
		return service.ProviderIdentity{}, err
	}
	identity.Provider = provider
	return identity, nil
}

func (m *Manager) signState(provider string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"provider": provider,
		"iat":      now.Unix(),
		"exp":      now.Add(stateTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) verifyState(provider, state string) error {
	token, err := jwt.Parse(state, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return ErrInvalidState
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["provider"] != provider {
		return ErrInvalidState
	}
	return nil
}

func parserFor(name string) func([]byte) (service.ProviderIdentity, error) {
	if name == "kakao" {
		return parseKakaoProfile
	}
	return parseGoogleProfile
}

type googleProfile struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func parseGoogleProfile(body []byte) (service.ProviderIdentity, error) {
	var p googleProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return service.ProviderIdentity{}, fmt.Errorf("decode google profile: %w", err)
	}
	if p.Sub == "" {
		return service.ProviderIdentity{}, fmt.Errorf("google profile has no subject")
	}
	return service.ProviderIdentity{
		Subject:  p.Sub,
		Email:    p.Email,
		Metadata: map[string]string{"full_name": p.Name},
	}, nil
}

type kakaoProfile struct {
	ID         int64 `json:"id"`
	Properties struct {
		Nickname string `json:"nickname"`
	} `json:"properties"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// Kakao may omit the email entirely when the user declined to share it.
func parseKakaoProfile(body []byte) (service.ProviderIdentity, error) {
	var p kakaoProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return service.ProviderIdentity{}, fmt.Errorf("decode kakao profile: %w", err)
	}
	if p.ID == 0 {
		return service.ProviderIdentity{}, fmt.Errorf("kakao profile has no id")
	}
	nickname := p.KakaoAccount.Profile.Nickname
	if nickname == "" {
		nickname = p.Properties.Nickname
	}
	return service.ProviderIdentity{
		Subject:  strconv.FormatInt(p.ID, 10),
		Email:    p.KakaoAccount.Email,
		Metadata: map[string]string{"nickname": nickname},
	}, nil
}
