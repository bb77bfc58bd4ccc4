package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/intelfusion/case-similarity-api/config"
	"github.com/intelfusion/case-similarity-api/databases"
	"github.com/intelfusion/case-similarity-api/models"
)

const defaultReportLimit = 10

// Report handles report lookup requests
type Report struct {
	CDB databases.CaseDatabase
}

// LatestReportHandler returns the most recent report of a case, optionally
// bounded by a time window
func (re Report) LatestReportHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LatestReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.CaseID == "" {
		config.ErrorStatus("case_id is required", http.StatusBadRequest, w, fmt.Errorf("missing case_id"))
		return
	}

	start, err := parseWindowBound(req.StartTime)
	if err != nil {
		config.ErrorStatus("invalid start_time", http.StatusBadRequest, w, err)
		return
	}
	end, err := parseWindowBound(req.EndTime)
	if err != nil {
		config.ErrorStatus("invalid end_time", http.StatusBadRequest, w, err)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultReportLimit
	}

	records, err := re.CDB.ReportsByCase(r.Context(), req.CaseID, start, end, limit)
	if err != nil {
		config.ErrorStatus("failed to fetch case reports", http.StatusInternalServerError, w, err)
		return
	}

	resp := models.LatestReportResponse{
		Status:       "success",
		CaseID:       req.CaseID,
		ReportsFound: len(records),
	}
	if len(records) > 0 {
		resp.LatestReport = &records[0]
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func parseWindowBound(value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(models.TimestampLayout, value)
	if err != nil {
		return nil, err
	}
	ts := t.Unix()
	return &ts, nil
}
