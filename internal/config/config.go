package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI        string
	DBName          string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Port            string

	KakaoRESTAPIKey string
	KakaoAPIBaseURL string
	LiveSearchTTL   time.Duration
	UpstreamTimeout time.Duration

	GoogleClientID       string
	GoogleClientSecret   string
	KakaoClientID        string
	KakaoClientSecret    string
	OAuthRedirectBaseURL string
	FrontendURL          string

	AllowPasswordSignup bool

	BannerConfig   string
	BannerProvider string

	DefaultLat float64
	DefaultLng float64
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] [WARN] .env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// LoadFile reads the given dotenv file before building AppEnv.
func LoadFile(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("[CONFIG] [WARN] %s not loaded: %v", path, err)
	}
	AppEnv = FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() Config {
	return Config{
		MongoURI:        getEnvOrDefault("MONGO_URI", ""),
		DBName:          getEnvOrDefault("DB_NAME", "jakca"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		RefreshTokenTTL: getDurationEnv("REFRESH_TOKEN_TTL", 7, 24*time.Hour),
		Port:            getEnvOrDefault("PORT", "8080"),

		KakaoRESTAPIKey: getEnvOrDefault("KAKAO_REST_API_KEY", ""),
		KakaoAPIBaseURL: getEnvOrDefault("KAKAO_API_BASE_URL", "https://dapi.kakao.com"),
		LiveSearchTTL:   getDurationEnv("LIVE_SEARCH_TTL", 5, time.Minute),
		UpstreamTimeout: getDurationEnv("UPSTREAM_TIMEOUT", 5, time.Second),

		GoogleClientID:       getEnvOrDefault("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnvOrDefault("GOOGLE_CLIENT_SECRET", ""),
		KakaoClientID:        getEnvOrDefault("KAKAO_CLIENT_ID", ""),
		KakaoClientSecret:    getEnvOrDefault("KAKAO_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnvOrDefault("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),

		AllowPasswordSignup: getBoolEnv("ALLOW_PASSWORD_SIGNUP", false),

		BannerConfig:   getEnvOrDefault("BANNER_CONFIG", ""),
		BannerProvider: getEnvOrDefault("BANNER_PROVIDER", "static"),

		DefaultLat: getFloatEnv("DEFAULT_LAT", 37.5017),
		DefaultLng: getFloatEnv("DEFAULT_LNG", 127.0269),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
