package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type ApplicationStatusEvent struct {
	Type          string `json:"type"`
	ApplicationID string `json:"applicationId"`
	JobTitle      string `json:"jobTitle"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyApplicationStatus pushes a status-change event to the applicant's
// open connections. Best-effort: no hub, no delivery.
func NotifyApplicationStatus(applicantID, applicationID uuid.UUID, jobTitle, status string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ApplicationStatusEvent{
		Type:          "application_status",
		ApplicationID: applicationID.String(),
		JobTitle:      jobTitle,
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Send(applicantID, b)
}
