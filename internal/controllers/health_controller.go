package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"time"
	"vcheck/internal/checkin/interfaces"
	"vcheck/internal/models"
)

type HealthController struct {
	ingestion interfaces.IngestionInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string                 `json:"status"`
	Uptime        string                 `json:"uptime"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Channels      []models.ChannelStatus `json:"channels"`
}

// Health reports 503 once any checkin channel has stopped on a write error.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Channels:      hc.ingestion.Status(),
	}
	code := http.StatusOK
	for _, ch := range resp.Channels {
		if ch.Failed {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(ingestion interfaces.IngestionInterface) *HealthController {
	return &HealthController{
		ingestion: ingestion,
		startTime: time.Now(),
	}
}
