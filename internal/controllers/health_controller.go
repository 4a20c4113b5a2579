package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/ethsmith/csc-trading-cards/internal/services"
)

type HealthController struct {
	collection services.CollectionServiceInterface
	codes      services.CodeServiceInterface
	players    services.PlayersServiceInterface
	startTime  time.Time
}

type healthResponse struct {
	Status           string  `json:"status"`
	Uptime           string  `json:"uptime"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	Users            int     `json:"users"`
	Cards            int     `json:"cards"`
	EligiblePlayers  int     `json:"eligible_players"`
	OutstandingCodes int     `json:"outstanding_codes"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:           "ok",
		Uptime:           formatDuration(uptime),
		UptimeSeconds:    uptime.Seconds(),
		Users:            hc.collection.TotalUsers(),
		Cards:            hc.collection.TotalCards(),
		EligiblePlayers:  hc.players.EligibleCount(),
		OutstandingCodes: hc.codes.Outstanding(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(collection services.CollectionServiceInterface, codes services.CodeServiceInterface, players services.PlayersServiceInterface) *HealthController {
	return &HealthController{
		collection: collection,
		codes:      codes,
		players:    players,
		startTime:  time.Now(),
	}
}
