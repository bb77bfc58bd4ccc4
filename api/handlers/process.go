package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/intelfusion/case-similarity-api/api"
	"github.com/intelfusion/case-similarity-api/config"
	"github.com/intelfusion/case-similarity-api/databases"
	"github.com/intelfusion/case-similarity-api/metrics"
	"github.com/intelfusion/case-similarity-api/models"
	"github.com/intelfusion/case-similarity-api/similarity"
)

// asyncTimeout bounds one background processing run
const asyncTimeout = 5 * time.Minute

// CaseProcessor runs the resolution pipeline for one report
type CaseProcessor interface {
	Process(ctx context.Context, report models.Report, opts similarity.Options) (*models.Record, similarity.Decision, error)
}

// Process handles the process-case endpoints
type Process struct {
	Processor CaseProcessor
	SDB       databases.SettingsDatabase
	Config    *config.Config
}

// ProcessCaseHandler runs the full pipeline synchronously and returns the
// resolved case
func (p Process) ProcessCaseHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	opts := p.resolveOptions(r.Context(), req)

	start := time.Now()
	record, decision, err := p.Processor.Process(r.Context(), req.Data, opts)
	observeRun(start, err)
	if err != nil {
		if similarity.IsValidation(err) {
			config.ErrorStatus("invalid report", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to process report", http.StatusInternalServerError, w, err)
		return
	}

	resp := models.ProcessResponse{
		Status:            "success",
		Message:           "case processed successfully",
		CaseID:            record.IDCase,
		DataID:            record.ID,
		CaseName:          record.CaseName,
		SimilarCasesCount: decision.SimilarCount,
		IsNewCase:         !decision.Merged,
		ScoreThreshold:    opts.ScoreThreshold,
		RadiusCoordinate:  opts.RadiusCoordinate,
		ProcessingTime:    time.Since(start).Seconds(),
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ProcessCaseAsyncHandler queues the pipeline in the background and
// returns immediately with a task id
func (p Process) ProcessCaseAsyncHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	// validate upfront so the caller gets a 400 instead of a silently
	// failed background task
	if req.Data.Input == "" {
		config.ErrorStatus("invalid report", http.StatusBadRequest, w,
			&similarity.ValidationError{Reason: "report input text is required"})
		return
	}
	if _, err := time.Parse(models.TimestampLayout, req.Data.CreatedAt); err != nil {
		config.ErrorStatus("invalid report", http.StatusBadRequest, w,
			&similarity.ValidationError{Reason: "created_at must be in format: YYYY-MM-DD HH:MM:SS +ZZZZ"})
		return
	}

	opts := p.resolveOptions(r.Context(), req)
	taskID := uuid.New().String()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		start := time.Now()
		record, decision, err := p.Processor.Process(ctx, req.Data, opts)
		observeRun(start, err)
		if err != nil {
			zap.S().Errorw("background case processing failed",
				"task_id", taskID,
				"error", err)
			return
		}
		zap.S().Infow("background case processing finished",
			"task_id", taskID,
			"id_case", record.IDCase,
			"data_id", record.ID,
			"merged", decision.Merged,
			"similar_cases_count", decision.SimilarCount)
	}()

	resp := models.AsyncAccepted{
		Status:           "accepted",
		Message:          "case processing started in background",
		TaskID:           taskID,
		ScoreThreshold:   opts.ScoreThreshold,
		RadiusCoordinate: opts.RadiusCoordinate,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
	w.Write(b)
}

// resolveOptions layers the tuning knobs: request body first, then the
// per-report-type settings, then the service defaults.
func (p Process) resolveOptions(ctx context.Context, req models.ProcessRequest) similarity.Options {
	opts := similarity.Options{
		ScoreThreshold:   p.Config.DefaultScoreThreshold,
		Limit:            p.Config.DefaultLimit,
		RadiusCoordinate: p.Config.DefaultRadius,
		ReportType:       req.ReportType,
	}

	if req.ReportType != "" && p.SDB != nil {
		queryCtx, cancel := api.WithQueryTimeout(ctx)
		defer cancel()
		settings, err := p.SDB.FindOne(queryCtx, req.ReportType)
		if err == nil && settings != nil {
			if settings.ScoreThreshold > 0 {
				opts.ScoreThreshold = settings.ScoreThreshold
			}
			if settings.Limit > 0 {
				opts.Limit = settings.Limit
			}
			if settings.RadiusCoordinate > 0 {
				opts.RadiusCoordinate = settings.RadiusCoordinate
			}
		}
	}

	if req.ScoreThreshold != nil {
		opts.ScoreThreshold = *req.ScoreThreshold
	}
	if req.Limit != nil {
		opts.Limit = *req.Limit
	}
	if req.RadiusCoordinate != nil {
		opts.RadiusCoordinate = *req.RadiusCoordinate
	}
	return opts
}

func observeRun(start time.Time, err error) {
	result := "success"
	switch {
	case similarity.IsValidation(err):
		result = "validation_error"
	case err != nil:
		result = "error"
	}
	metrics.ProcessedTotal.WithLabelValues(result).Inc()
	metrics.ProcessingDurationSeconds.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
