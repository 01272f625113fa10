package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/hyp3-catalog/aoi"
	"github.com/rs/zerolog/log"
)

// aoiEvent is one line of the selection event stream.
type aoiEvent struct {
	Type     string                `json:"type"` // "selection" or "reset"
	Geometry aoi.SelectionGeometry `json:"geometry"`
}

// applyEvents feeds selection events to area one at a time, in the order read.
func applyEvents(r io.Reader, area *aoi.AOI) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var ev aoiEvent
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return fmt.Errorf("event line %d: %w", line, err)
		}
		switch ev.Type {
		case "selection":
			area.ApplySelection(ev.Geometry)
		case "reset":
			area.ResetSubset()
		default:
			log.Warn().Int("line", line).Str("type", ev.Type).Msg("ignoring unknown aoi event")
		}
	}
	return scanner.Err()
}

func subsetPrinter(w io.Writer) aoi.Observer {
	return func(subset aoi.Bounds, ok bool) {
		if !ok {
			fmt.Fprintln(w, "AOI.subset_coords: unset")
			return
		}
		lon0, lat0 := aoi.ToLonLat(subset.LowerLeft)
		lon1, lat1 := aoi.ToLonLat(subset.UpperRight)
		fmt.Fprintf(w, "AOI.subset_coords: %s (lon/lat %.6f,%.6f to %.6f,%.6f)\n", subset, lon0, lat0, lon1, lat1)
	}
}
