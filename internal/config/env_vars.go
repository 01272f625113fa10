package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	appNameVar       = "APP_NAME"
	envVar           = "ENV"
	logLevelVar      = "LOG_LEVEL"
	externalURLVar   = "EXTERNAL_URL"
	servicePrefixVar = "JUPYTERHUB_SERVICE_PREFIX"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ ProxyConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "HyP3 Catalog")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(envVar)
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

// GetProxy returns the notebook proxy settings. The service prefix is assigned by
// the hub for each user server.
func (EnvVars) GetProxy() Proxy {
	return Proxy{
		BaseURL:       GetEnv(externalURLVar, "https://opensarlab.asf.alaska.edu/"),
		ServicePrefix: GetEnv(servicePrefixVar, ""),
	}
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt parses envVar as an int, returning defaultValue when unset or invalid.
func GetEnvInt(envVar string, defaultValue int) int {
	v, err := strconv.Atoi(GetEnv(envVar, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// GetEnvFloat parses envVar as a float, returning defaultValue when unset or invalid.
func GetEnvFloat(envVar string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(GetEnv(envVar, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}
