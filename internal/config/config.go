package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the gateway's environment-derived settings (spec §6 "Environment
// inputs").
type Config struct {
	Namespace    string
	SeaclawImage string
	MaxInstances int
	DataDir      string
	LogLevel     string
	Addr         string
	PersonaDir   string
	AgentPort    int
	GatewayPort  int
	GatewayURL   string
	CORSOrigin   string
}

// Load reads the environment into a Config, applying the documented defaults.
// It never fails: every field has a usable default, matching the teacher's
// env()-with-default idiom (ReleaseParty/backend/internal/config).
func Load() Config {
	cfg := Config{
		Namespace:    env("NAMESPACE", "seaclaw-platform"),
		SeaclawImage: env("SEACLAW_IMAGE", "seaclaw-instance:latest"),
		DataDir:      env("DATA_DIR", "/data/platform"),
		LogLevel:     env("LOG_LEVEL", "INFO"),
		Addr:         env("GATEWAY_ADDR", ":8090"),
		PersonaDir:   env("PERSONA_DIR", "/data/platform/personas"),
		AgentPort:    8899,
		GatewayPort:  8090,
		CORSOrigin:   env("CORS_ORIGIN", "*"),
	}
	cfg.MaxInstances = envInt("MAX_INSTANCES", 5)
	cfg.GatewayURL = env("GATEWAY_URL", "http://seaclaw-platform-gateway."+cfg.Namespace+".svc.cluster.local:"+strconv.Itoa(cfg.GatewayPort))
	return cfg
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
