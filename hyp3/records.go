package hyp3

import (
	"fmt"

	"github.com/jrsteele09/hyp3-catalog/internal/utils"
)

// Subscription is a standing query that keeps producing processing jobs.
type Subscription struct {
	ID   utils.FlexString `json:"id"`
	Name string           `json:"name"`
}

func (s Subscription) String() string {
	return fmt.Sprintf("%s: %s", s.ID, s.Name)
}

// Product is the output of one completed job.
type Product struct {
	ID           utils.FlexString `json:"id"`
	LocalQueueID utils.FlexString `json:"local_queue_id"`
	Name         string           `json:"name"`
	URL          string           `json:"url"`
	SubID        utils.FlexString `json:"sub_id,omitempty"`
}

// Job is a processing job created for a granule.
type Job struct {
	ID      utils.FlexString `json:"id"`
	Granule string           `json:"granule"`
	Status  string           `json:"status,omitempty"`
}

// apiKeyResponse is returned by login and key reset.
type apiKeyResponse struct {
	APIKey string `json:"api_key"`
}

// errorResponse is the service's error envelope.
type errorResponse struct {
	Status  *string `json:"status"`
	Message string  `json:"message"`
}
