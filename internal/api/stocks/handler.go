package stocks

import (
	"encoding/json"
	"net/http"

	domain "excer/internal/domain/stocks"
	"excer/pkg/logger"
)

// Handler serves the published trending snapshot
type Handler struct {
	snapshots domain.SnapshotRepository
	log       *logger.Logger
}

// New creates a snapshot handler
func New(snapshots domain.SnapshotRepository, log *logger.Logger) *Handler {
	return &Handler{
		snapshots: snapshots,
		log:       log,
	}
}

// HandleStocks returns the latest snapshot. Before the first ingestion run
// completes there is nothing to serve, so an empty but well-formed snapshot
// goes out instead of an error.
func (h *Handler) HandleStocks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := h.snapshots.Load(r.Context())
	if err != nil {
		h.log.Errorw("failed to load snapshot", "error", err)
		http.Error(w, "failed to load snapshot", http.StatusInternalServerError)
		return
	}

	if snapshot == nil {
		snapshot = &domain.Snapshot{
			Stocks:     []domain.StockAggregate{},
			DataSource: domain.DataSourceReddit,
		}
	}
	if snapshot.Stocks == nil {
		snapshot.Stocks = []domain.StockAggregate{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		h.log.Errorw("failed to encode snapshot", "error", err)
	}
}
