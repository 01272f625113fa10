package config

type Config interface {
	EnvConfig
	Hyp3Config
	VertexConfig
	ProxyConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type ProxyConfig interface {
	GetProxy() Proxy
}

type mainConfig struct {
	EnvVars
	Hyp3
	Vertex
}

func New() Config {
	return mainConfig{}
}
