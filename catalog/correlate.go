package catalog

import (
	"context"

	"github.com/jrsteele09/hyp3-catalog/hyp3"
	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/jrsteele09/hyp3-catalog/vertex"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// GranuleLookup fetches search metadata for a granule.
type GranuleLookup interface {
	GranuleInfo(ctx context.Context, granule, processingLevel string) (*vertex.Record, error)
}

var _ GranuleLookup = (*vertex.Client)(nil)

// Correlation holds, per matched granule, the track, flight direction and product
// download url. The slices are parallel.
type Correlation struct {
	Paths      []string `json:"paths"`
	Directions []string `json:"directions"`
	URLs       []string `json:"urls"`
}

func (c Correlation) Len() int {
	return len(c.URLs)
}

// Correlate joins the granules acquired within r to the products of their jobs and
// to their search metadata. Granules are visited in set order; each one in range
// costs one lookup. Granules without a product, or unknown to the search service,
// are skipped. A lookup failure aborts with no partial result.
func Correlate(ctx context.Context, lookup GranuleLookup, granules *GranuleSet, products []hyp3.Product, r DateRange) (Correlation, error) {
	byQueueID := make(map[string]hyp3.Product, len(products))
	for _, p := range products {
		if _, ok := byQueueID[p.LocalQueueID.String()]; !ok {
			byQueueID[p.LocalQueueID.String()] = p
		}
	}

	result := Correlation{
		Paths:      make([]string, 0),
		Directions: make([]string, 0),
		URLs:       make([]string, 0),
	}
	inRange := FilterByDateRange(granules, r)
	for _, name := range inRange.Names() {
		record, err := lookup.GranuleInfo(ctx, name, "")
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			log.Warn().Str("granule", name).Msg("granule not found in search service")
			record = nil
		case err != nil:
			return Correlation{}, errors.Wrapf(err, "[Correlate] lookup %s", name)
		}

		jobID, _ := inRange.JobID(name)
		product, ok := byQueueID[jobID]
		if !ok {
			continue
		}
		if record == nil {
			continue
		}
		result.Paths = append(result.Paths, record.Track.String())
		result.Directions = append(result.Directions, record.FlightDirection)
		result.URLs = append(result.URLs, product.URL)
	}
	return result, nil
}
