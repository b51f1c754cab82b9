// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSecretKey はSECRET_KEY未設定時に使用するプレースホルダー。
// 本番環境では必ず上書きすること。起動時に警告ログを出す。
const DefaultSecretKey = "taskman-dev-secret"

// DefaultServerPort はSERVER_PORT未設定時のリッスンポート。
const DefaultServerPort = "8080"

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Storage
	DataDir string

	// Auth
	SecretKey  string
	TokenTTL   time.Duration
	BcryptCost int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string

	// Debug
	// trueの場合のみ /debug/* の全件ダンプエンドポイントを公開する。
	// 開発環境専用。
	DebugEndpoints bool
}

// Load は環境変数からConfigを読み込む。
// カレントディレクトリに.envがあれば先に読み込む（無くてもエラーにしない）。
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:           getEnvString("DATA_DIR", "./data"),
		SecretKey:         getEnvString("SECRET_KEY", DefaultSecretKey),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 12*time.Hour),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
		ServerPort:        getEnvString("SERVER_PORT", DefaultServerPort),
		CORSAllowedOrigin: getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		DebugEndpoints:    getEnvBool("DEBUG_ENDPOINTS", false),
	}

	return cfg, nil
}

// UsingDefaultSecret はSECRET_KEYがプレースホルダーのままかどうかを返す。
func (c *Config) UsingDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// ServerPort はフル設定を読み込まずにリッスンポートだけを解決する。
// healthcheckサブコマンドのような軽量パス用。.envがあれば先に読み込む。
func ServerPort() string {
	_ = godotenv.Load()
	return getEnvString("SERVER_PORT", DefaultServerPort)
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
