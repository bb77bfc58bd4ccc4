package similarity

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/intelfusion/case-similarity-api/caselock"
	"github.com/intelfusion/case-similarity-api/databases"
	"github.com/intelfusion/case-similarity-api/metrics"
	"github.com/intelfusion/case-similarity-api/models"
)

// Embedder turns report text into a fixed-length vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// TitleGenerator mints a short human-readable case title from the
// structured report fields
type TitleGenerator interface {
	Generate(ctx context.Context, reportType string, report models.Report) (string, error)
}

// Options are the per-request tuning knobs of one processing run
type Options struct {
	ScoreThreshold   float64
	Limit            int
	RadiusCoordinate float64
	ReportType       string
}

// Processor runs the linear resolution pipeline for one report:
// normalize, identify, filter, search-and-decide, maybe-title, write.
// It holds no shared mutable state; collaborators are injected so tests
// can substitute doubles.
type Processor struct {
	Cases      databases.CaseDatabase
	Embeddings Embedder
	Titles     TitleGenerator
	Lock       caselock.Locker
	Policy     Policy
	Location   *time.Location
}

// Process resolves a report to an existing or new case and commits the
// enriched record. The store write is the sole commit point; any failure
// before it leaves no partial state. Returns the written record and the
// merge decision.
func (p *Processor) Process(ctx context.Context, report models.Report, opts Options) (*models.Record, Decision, error) {
	if report.Input == "" {
		return nil, Decision{}, &ValidationError{Reason: "report input text is required"}
	}
	created, err := time.Parse(models.TimestampLayout, report.CreatedAt)
	if err != nil {
		return nil, Decision{}, &ValidationError{Reason: fmt.Sprintf("created_at must be in format: YYYY-MM-DD HH:MM:SS +ZZZZ (%v)", err)}
	}
	timestamp := created.Unix()

	coords := normalizeCoordinates(report)
	fingerprint := Fingerprint(report)
	dataID := DataID(report)

	var subdistrictCode, districtCode, cityCode, provinceCode string
	if report.LocationDetails != nil {
		subdistrictCode = report.LocationDetails.SubdistrictCode
		districtCode = report.LocationDetails.DistrictCode
		cityCode = report.LocationDetails.CityCode
		provinceCode = report.LocationDetails.ProvinceCode
	}

	candidateCaseID := report.IDCase
	if candidateCaseID == "" {
		candidateCaseID = CaseID(opts.ReportType, cityCode, created, dataID, fingerprint)
	}

	// the default merge path filters on point radius, time window and
	// subdistrict code only; the remaining tiers serve the ad-hoc search
	filter := BuildFilter(FilterParams{
		Coordinate:       coords.point,
		CoordinateRadius: opts.RadiusCoordinate,
		Timestamp:        &timestamp,
		SubdistrictCode:  subdistrictCode,
	})

	// serialize concurrent merge decisions for the same geo/time bucket
	release, err := p.Lock.Acquire(ctx, caselock.Fingerprint(opts.ReportType, coords.point, timestamp))
	if err != nil {
		return nil, Decision{}, err
	}
	defer release()

	vector, err := p.Embeddings.Embed(ctx, report.Input)
	if err != nil {
		return nil, Decision{}, fmt.Errorf("embedding report text: %w", err)
	}

	hits, err := p.Cases.Search(ctx, vector, filter, opts.ScoreThreshold, opts.Limit)
	if err != nil {
		return nil, Decision{}, fmt.Errorf("searching similar cases: %w", err)
	}
	metrics.SimilarHits.Observe(float64(len(hits)))

	decision := Decide(candidateCaseID, hits, p.Policy)

	caseName := decision.CaseName
	switch {
	case !decision.Merged:
		zap.S().Infow("no similar case adopted, creating a new case",
			"data_id", dataID,
			"id_case", decision.CaseID,
			"similar_count", decision.SimilarCount,
		)
		metrics.DecisionTotal.WithLabelValues("new_case").Inc()
	case caseName != "":
		zap.S().Infow("merging report into existing case",
			"data_id", dataID,
			"id_case", decision.CaseID,
			"case_name", caseName,
			"similar_count", decision.SimilarCount,
		)
		metrics.DecisionTotal.WithLabelValues("merged").Inc()
	default:
		zap.S().Warnw("matched case is missing its title, generating a new one",
			"data_id", dataID,
			"id_case", decision.CaseID,
		)
		metrics.DecisionTotal.WithLabelValues("repair").Inc()
	}

	if caseName == "" {
		caseName, err = p.Titles.Generate(ctx, opts.ReportType, report)
		if err != nil {
			return nil, Decision{}, fmt.Errorf("generating case title: %w", err)
		}
	}

	record := p.buildRecord(report, opts.ReportType, dataID, decision.CaseID, caseName, timestamp, coords,
		subdistrictCode, districtCode, cityCode, provinceCode)

	if err := p.Cases.Upsert(ctx, record, vector); err != nil {
		return nil, Decision{}, fmt.Errorf("writing record to store: %w", err)
	}

	return &record, decision, nil
}

func (p *Processor) buildRecord(report models.Report, reportType, dataID, caseID, caseName string, timestamp int64,
	coords tieredCoordinates, subdistrictCode, districtCode, cityCode, provinceCode string) models.Record {
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	return models.Record{
		ID:         dataID,
		IDCase:     caseID,
		CaseName:   caseName,
		ReportType: reportType,

		Input:      report.Input,
		Text:       report.Input,
		Summary:    report.Summary,
		RawMessage: report.RawMessage,

		CreatedAt:   report.CreatedAt,
		Timestamp:   timestamp,
		ProcessedAt: time.Now().In(loc).Format(models.TimestampLayout),

		Coordinate:            coords.point,
		CoordinateSubdistrict: coords.subdistrict,
		CoordinateDistrict:    coords.district,
		CoordinateCity:        coords.city,
		CoordinateProvince:    coords.province,
		CountryCoordinate:     coords.country,

		SubdistrictCode: subdistrictCode,
		DistrictCode:    districtCode,
		CityCode:        cityCode,
		ProvinceCode:    provinceCode,

		ReliabilityScore: report.ReliabilityScore,
		Sketch:           report.Sketch,
		FirstName:        report.FirstName,
		Username:         report.Username,
		Images:           report.Images,
		Audios:           report.Audios,
		Videos:           report.Videos,
		Files:            report.Files,
		LocationDetails:  report.LocationDetails,
	}
}
