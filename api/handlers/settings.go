package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/intelfusion/case-similarity-api/config"
	"github.com/intelfusion/case-similarity-api/databases"
	"github.com/intelfusion/case-similarity-api/models"
)

// Settings handles the per-report-type processing settings endpoints
type Settings struct {
	SDB    databases.SettingsDatabase
	Config *config.Config
}

// GetSettingsHandler returns the stored settings for a report type, falling
// back to the service defaults when none are stored
func (s Settings) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	reportType := mux.Vars(r)["report_type"]

	settings, err := s.SDB.FindOne(r.Context(), reportType)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			settings = &models.ReportTypeSettings{
				ReportType:       reportType,
				ScoreThreshold:   s.Config.DefaultScoreThreshold,
				Limit:            s.Config.DefaultLimit,
				RadiusCoordinate: s.Config.DefaultRadius,
			}
		} else {
			config.ErrorStatus("failed to fetch settings", http.StatusInternalServerError, w, err)
			return
		}
	}

	b, err := json.Marshal(settings)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpsertSettingsHandler stores the settings for a report type
func (s Settings) UpsertSettingsHandler(w http.ResponseWriter, r *http.Request) {
	reportType := mux.Vars(r)["report_type"]

	var settings models.ReportTypeSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	settings.ReportType = reportType

	if settings.ScoreThreshold < 0 || settings.ScoreThreshold > 1 {
		config.ErrorStatus("score_threshold must be between 0 and 1", http.StatusBadRequest, w,
			fmt.Errorf("got %v", settings.ScoreThreshold))
		return
	}
	if settings.Limit < 0 {
		config.ErrorStatus("limit must not be negative", http.StatusBadRequest, w,
			fmt.Errorf("got %v", settings.Limit))
		return
	}
	if settings.RadiusCoordinate < 0 {
		config.ErrorStatus("radius_coordinate must not be negative", http.StatusBadRequest, w,
			fmt.Errorf("got %v", settings.RadiusCoordinate))
		return
	}

	if err := s.SDB.Upsert(r.Context(), settings); err != nil {
		config.ErrorStatus("failed to store settings", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(settings)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteSettingsHandler removes the stored settings for a report type so
// the service defaults apply again
func (s Settings) DeleteSettingsHandler(w http.ResponseWriter, r *http.Request) {
	reportType := mux.Vars(r)["report_type"]

	if err := s.SDB.DeleteOne(r.Context(), reportType); err != nil {
		config.ErrorStatus("failed to delete settings", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"message": "settings for %s removed"}`, reportType)))
}
