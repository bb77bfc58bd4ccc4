package databases

// go generate: mockery --name CaseDatabase

import (
	"context"
	"sort"

	"github.com/qdrant/go-client/qdrant"

	"github.com/intelfusion/case-similarity-api/models"
)

// CaseDatabase contains the methods to use with the case similarity store
type CaseDatabase interface {
	Search(ctx context.Context, vector []float32, filter *qdrant.Filter, scoreThreshold float64, limit int) ([]models.SimilarHit, error)
	Upsert(ctx context.Context, record models.Record, vector []float32) error
	ReportsByCase(ctx context.Context, caseID string, startTimestamp, endTimestamp *int64, limit int) ([]models.Record, error)
	Untitled(ctx context.Context, limit int) ([]models.Record, error)
	SetCaseName(ctx context.Context, dataID, caseName string) error
}

type caseDatabase struct {
	store VectorStore
}

// NewCaseDatabase initializes a new instance of case database with the provided vector store
func NewCaseDatabase(store VectorStore) CaseDatabase {
	return &caseDatabase{store: store}
}

// Search returns nearest neighbors ordered by descending similarity score.
// The store pre-filters by score threshold and truncates to limit.
func (c *caseDatabase) Search(ctx context.Context, vector []float32, filter *qdrant.Filter, scoreThreshold float64, limit int) ([]models.SimilarHit, error) {
	points, err := c.store.Search(ctx, vector, filter, scoreThreshold, limit)
	if err != nil {
		return nil, err
	}

	hits := make([]models.SimilarHit, 0, len(points))
	for _, p := range points {
		payload := p.GetPayload()
		metaMap, _ := valueToAny(payload["metadata"]).(map[string]any)
		hits = append(hits, models.SimilarHit{
			Score:    float64(p.GetScore()),
			IDCase:   payloadString(payload, "id_case"),
			CaseName: payloadString(payload, "case_name"),
			Metadata: metaMap,
		})
	}
	return hits, nil
}

// Upsert writes the record keyed by its ID. Re-processing the same ID
// overwrites rather than duplicates.
func (c *caseDatabase) Upsert(ctx context.Context, record models.Record, vector []float32) error {
	payload, err := recordPayload(record)
	if err != nil {
		return err
	}
	return c.store.Upsert(ctx, record.ID, vector, payload)
}

// ReportsByCase scrolls all reports of one case, most recent first
func (c *caseDatabase) ReportsByCase(ctx context.Context, caseID string, startTimestamp, endTimestamp *int64, limit int) ([]models.Record, error) {
	must := []*qdrant.Condition{
		qdrant.NewMatchText("id_case", caseID),
	}
	if startTimestamp != nil || endTimestamp != nil {
		r := &qdrant.Range{}
		if startTimestamp != nil {
			r.Gte = qdrant.PtrOf(float64(*startTimestamp))
		}
		if endTimestamp != nil {
			r.Lte = qdrant.PtrOf(float64(*endTimestamp))
		}
		must = append(must, qdrant.NewRange("timestamp", r))
	}

	points, err := c.store.Scroll(ctx, &qdrant.Filter{Must: must}, limit)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(points))
	for _, p := range points {
		rec, err := metadataRecord(p.GetPayload())
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	return records, nil
}

// Untitled returns records missing a case name, a data-quality gap the
// repair sweep patches up
func (c *caseDatabase) Untitled(ctx context.Context, limit int) ([]models.Record, error) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{qdrant.NewIsEmpty("case_name")},
	}
	points, err := c.store.Scroll(ctx, filter, limit)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(points))
	for _, p := range points {
		rec, err := metadataRecord(p.GetPayload())
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// SetCaseName patches the title of a stored record in place
func (c *caseDatabase) SetCaseName(ctx context.Context, dataID, caseName string) error {
	return c.store.SetPayload(ctx, dataID, qdrant.NewValueMap(map[string]any{
		"case_name": caseName,
	}))
}
