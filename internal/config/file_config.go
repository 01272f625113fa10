package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jrsteele09/hyp3-catalog/internal/utils"
	"github.com/pkg/errors"
)

// File holds values read from a TOML config file. Unset fields fall back to the
// environment.
type File struct {
	AppName  *string `toml:"app_name"`
	LogLevel *string `toml:"log_level"`

	Hyp3 struct {
		URL             *string `toml:"url"`
		ProductsURL     *string `toml:"products_url"`
		MaxKeyRotations *int    `toml:"max_key_rotations"`
	} `toml:"hyp3"`

	Vertex struct {
		URL               *string  `toml:"url"`
		RequestsPerSecond *float64 `toml:"requests_per_second"`
	} `toml:"vertex"`

	Proxy struct {
		BaseURL       *string `toml:"base_url"`
		ServicePrefix *string `toml:"service_prefix"`
	} `toml:"proxy"`
}

type fileConfig struct {
	Config
	file File
}

var _ Config = fileConfig{}

// Load reads a TOML file and layers it over the environment configuration.
func Load(path string) (Config, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrapf(err, "[config Load] failed to decode %s", path)
	}
	return fileConfig{Config: New(), file: f}, nil
}

func (c fileConfig) GetAppName() string {
	return utils.ValueOr(c.file.AppName, c.Config.GetAppName())
}

func (c fileConfig) GetLogLevel() string {
	return strings.ToLower(utils.ValueOr(c.file.LogLevel, c.Config.GetLogLevel()))
}

func (c fileConfig) GetHyp3URL() string {
	return utils.ValueOr(c.file.Hyp3.URL, c.Config.GetHyp3URL())
}

func (c fileConfig) GetProductsURL() string {
	return utils.ValueOr(c.file.Hyp3.ProductsURL, c.Config.GetProductsURL())
}

func (c fileConfig) GetMaxKeyRotations() int {
	return utils.ValueOr(c.file.Hyp3.MaxKeyRotations, c.Config.GetMaxKeyRotations())
}

func (c fileConfig) GetVertexURL() string {
	return utils.ValueOr(c.file.Vertex.URL, c.Config.GetVertexURL())
}

func (c fileConfig) GetVertexRequestsPerSecond() float64 {
	return utils.ValueOr(c.file.Vertex.RequestsPerSecond, c.Config.GetVertexRequestsPerSecond())
}

func (c fileConfig) GetProxy() Proxy {
	p := c.Config.GetProxy()
	p.BaseURL = utils.ValueOr(c.file.Proxy.BaseURL, p.BaseURL)
	p.ServicePrefix = utils.ValueOr(c.file.Proxy.ServicePrefix, p.ServicePrefix)
	return p
}
