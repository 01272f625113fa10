package catalog

// GranuleSet maps granule names to the job that processed them, preserving the
// order names were first added.
type GranuleSet struct {
	names []string
	jobs  map[string]string
}

func NewGranuleSet() *GranuleSet {
	return &GranuleSet{jobs: make(map[string]string)}
}

// Add records jobID for name. A repeated name keeps its position and takes the
// newer job id.
func (g *GranuleSet) Add(name, jobID string) {
	if _, ok := g.jobs[name]; !ok {
		g.names = append(g.names, name)
	}
	g.jobs[name] = jobID
}

func (g *GranuleSet) JobID(name string) (string, bool) {
	id, ok := g.jobs[name]
	return id, ok
}

// Names returns granule names in insertion order.
func (g *GranuleSet) Names() []string {
	return append([]string(nil), g.names...)
}

func (g *GranuleSet) Len() int {
	return len(g.names)
}
