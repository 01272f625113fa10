package config

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"
)

// Proxy describes how a notebook server exposes local ports through the hub.
type Proxy struct {
	BaseURL       string `toml:"base_url"`
	ServicePrefix string `toml:"service_prefix"`
}

// Host returns the public host of the hub, used as the origin of proxied pages.
func (p Proxy) Host() (string, error) {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return "", errors.Wrap(err, "[Proxy Host] invalid base url")
	}
	return u.Host, nil
}

// URL returns the address a local port is reachable at through the hub proxy.
func (p Proxy) URL(port int) (string, error) {
	if port <= 0 {
		return "", fmt.Errorf("[Proxy URL] invalid port %d", port)
	}
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return "", errors.Wrap(err, "[Proxy URL] invalid base url")
	}
	prefix, err := url.Parse(p.ServicePrefix)
	if err != nil {
		return "", errors.Wrap(err, "[Proxy URL] invalid service prefix")
	}
	user := base.ResolveReference(prefix)
	return user.ResolveReference(&url.URL{Path: fmt.Sprintf("proxy/%d", port)}).String(), nil
}
