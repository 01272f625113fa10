package config

const (
	vertexURLVar  = "VERTEX_API_URL"
	vertexRateVar = "VERTEX_REQUESTS_PER_SECOND"
)

type VertexConfig interface {
	GetVertexURL() string
	GetVertexRequestsPerSecond() float64
}

type Vertex struct{}

var _ VertexConfig = Vertex{}

func (Vertex) GetVertexURL() string {
	return GetEnv(vertexURLVar, "https://api.daac.asf.alaska.edu/services/search/param")
}

// GetVertexRequestsPerSecond returns the granule lookup pacing. Zero or less means unlimited.
func (Vertex) GetVertexRequestsPerSecond() float64 {
	return GetEnvFloat(vertexRateVar, 0)
}
