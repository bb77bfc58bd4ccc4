package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/intelfusion/case-similarity-api/databases"
	"github.com/intelfusion/case-similarity-api/metrics"
	"github.com/intelfusion/case-similarity-api/models"
	"github.com/intelfusion/case-similarity-api/similarity"
)

// repairBatchSize caps how many untitled records one sweep patches
const repairBatchSize = 50

// Scheduler handles periodic background jobs for the similarity store
type Scheduler struct {
	cron   *cron.Cron
	CDB    databases.CaseDatabase
	Titles similarity.TitleGenerator
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cdb databases.CaseDatabase, titles similarity.TitleGenerator) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		CDB:    cdb,
		Titles: titles,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Backfill missing case titles hourly
	_, err := s.cron.AddFunc("0 * * * *", s.RepairTitles)
	if err != nil {
		zap.S().Errorw("failed to register title repair job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("title repair scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("title repair scheduler stopped")
}

// RepairTitles finds stored records whose case name is missing and asks
// the title service for one. A record that still fails is left for the
// next sweep.
func (s *Scheduler) RepairTitles() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	records, err := s.CDB.Untitled(ctx, repairBatchSize)
	if err != nil {
		zap.S().Errorw("failed to list untitled records", "error", err)
		return
	}
	if len(records) == 0 {
		return
	}

	zap.S().Infow("running title repair sweep", "untitled", len(records))

	repaired := 0
	for _, rec := range records {
		name, err := s.Titles.Generate(ctx, rec.ReportType, reportFromRecord(rec))
		if err != nil {
			zap.S().Warnw("failed to generate title during repair sweep",
				"data_id", rec.ID,
				"id_case", rec.IDCase,
				"error", err)
			continue
		}
		if err := s.CDB.SetCaseName(ctx, rec.ID, name); err != nil {
			zap.S().Warnw("failed to store repaired title",
				"data_id", rec.ID,
				"id_case", rec.IDCase,
				"error", err)
			continue
		}
		metrics.TitlesRepairedTotal.Inc()
		repaired++
	}

	zap.S().Infow("title repair sweep finished", "repaired", repaired, "untitled", len(records))
}

// reportFromRecord rebuilds enough of the original report for the title
// service prompt
func reportFromRecord(rec models.Record) models.Report {
	return models.Report{
		ID:              rec.ID,
		IDCase:          rec.IDCase,
		Input:           rec.Input,
		Summary:         rec.Summary,
		RawMessage:      rec.RawMessage,
		CreatedAt:       rec.CreatedAt,
		LocationDetails: rec.LocationDetails,
	}
}
