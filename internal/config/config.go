package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string // sqlite|postgres
	DBDSN    string

	BlobDriver   string // fs|mock
	BlobBasePath string // for fs
	AssetBaseURL string // prefix for uploaded asset references

	CORSOrigins []string

	LogLevel      slog.Level
	SeedTemplates bool
}

func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		BlobDriver:    strings.ToLower(envOr("BLOB_DRIVER", "fs")),
		BlobBasePath:  envOr("BLOB_BASE_PATH", "./data"),
		AssetBaseURL:  os.Getenv("ASSET_BASE_URL"),
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		LogLevel:      levelOr("LOG_LEVEL", slog.LevelInfo),
		SeedTemplates: envBool("SEED_TEMPLATES", true),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// levelOr accepts debug, info, warn or error; anything else yields def.
func levelOr(k string, def slog.Level) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(os.Getenv(k)))); err != nil {
		return def
	}
	return l
}
