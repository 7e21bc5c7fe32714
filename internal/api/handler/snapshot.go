package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/store-analytics-api/internal/scheduler"
	"github.com/vfg2006/store-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/store-analytics-api/pkg/log"
)

// GetAnalyticsSnapshot retorna o snapshot pré-calculado pelo agendador
// diário. Sem snapshot calculado ainda, retorna 404.
func GetAnalyticsSnapshot(service *scheduler.DailySnapshotService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot := service.Latest()
		if snapshot == nil {
			logger.Info("snapshot: nenhum snapshot disponível ainda")
			apiErrors.WriteError(w, apiErrors.ErrSnapshotNotReady, "nenhum snapshot disponível", nil)
			return
		}

		logger.WithFields(log.Fields{
			"report_id": snapshot.ReportID,
			"degraded":  snapshot.Degraded,
		}).Info("snapshot: snapshot retornado")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logger.WithError(err).Error("snapshot: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
