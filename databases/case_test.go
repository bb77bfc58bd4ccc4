package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/intelfusion/case-similarity-api/databases"
	"github.com/intelfusion/case-similarity-api/databases/mocks"
	"github.com/intelfusion/case-similarity-api/models"
)

func scoredPoint(score float32, idCase, caseName string) *qdrant.ScoredPoint {
	return &qdrant.ScoredPoint{
		Score: score,
		Payload: qdrant.NewValueMap(map[string]any{
			"id_case":   idCase,
			"case_name": caseName,
			"metadata": map[string]any{
				"id_case":   idCase,
				"case_name": caseName,
			},
		}),
	}
}

func TestCaseDatabaseSearch(t *testing.T) {
	store := &mocks.VectorStore{}
	vector := []float32{0.1, 0.2}
	store.On("Search", mock.Anything, vector, mock.Anything, 0.85, 5).
		Return([]*qdrant.ScoredPoint{
			scoredPoint(0.93, "theft-3171-202401-cd-EF01", "Known Theft Case"),
			scoredPoint(0.88, "theft-3171-202401-99-1234", ""),
		}, nil)

	cdb := databases.NewCaseDatabase(store)
	hits, err := cdb.Search(context.Background(), vector, nil, 0.85, 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.InDelta(t, 0.93, hits[0].Score, 1e-6)
	assert.Equal(t, "theft-3171-202401-cd-EF01", hits[0].IDCase)
	assert.Equal(t, "Known Theft Case", hits[0].CaseName)
	require.NotNil(t, hits[0].Metadata)
	assert.Equal(t, "theft-3171-202401-cd-EF01", hits[0].Metadata["id_case"])

	assert.Empty(t, hits[1].CaseName)
	store.AssertExpectations(t)
}

func TestCaseDatabaseSearchError(t *testing.T) {
	store := &mocks.VectorStore{}
	store.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("store unavailable"))

	cdb := databases.NewCaseDatabase(store)
	_, err := cdb.Search(context.Background(), []float32{0.1}, nil, 0.85, 5)
	require.Error(t, err)
}

func TestCaseDatabaseUpsert(t *testing.T) {
	rec := testRecord()
	vector := []float32{0.1, 0.2}

	store := &mocks.VectorStore{}
	store.On("Upsert", mock.Anything, rec.ID, vector, mock.MatchedBy(func(payload map[string]*qdrant.Value) bool {
		return payload["id_case"].GetStringValue() == rec.IDCase &&
			payload["metadata"].GetStructValue() != nil
	})).Return(nil)

	cdb := databases.NewCaseDatabase(store)
	require.NoError(t, cdb.Upsert(context.Background(), rec, vector))
	store.AssertExpectations(t)
}

func TestCaseDatabaseReportsByCaseSortsNewestFirst(t *testing.T) {
	older := testRecord()
	older.ID = "older"
	older.Timestamp = 1705200000
	newer := testRecord()
	newer.ID = "newer"
	newer.Timestamp = 1705289400

	store := &mocks.VectorStore{}
	store.On("Scroll", mock.Anything, mock.MatchedBy(func(filter *qdrant.Filter) bool {
		return len(filter.Must) == 2 // id_case match plus the time range
	}), 10).Return([]*qdrant.RetrievedPoint{
		retrievedPoint(t, older),
		retrievedPoint(t, newer),
	}, nil)

	cdb := databases.NewCaseDatabase(store)
	start := int64(1705100000)
	records, err := cdb.ReportsByCase(context.Background(), "theft-3171-202401-ab-ABCD", &start, nil, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "newer", records[0].ID)
	assert.Equal(t, "older", records[1].ID)
}

func TestCaseDatabaseUntitled(t *testing.T) {
	rec := testRecord()
	rec.CaseName = ""

	store := &mocks.VectorStore{}
	store.On("Scroll", mock.Anything, mock.MatchedBy(func(filter *qdrant.Filter) bool {
		return len(filter.Must) == 1 && filter.Must[0].GetIsEmpty() != nil
	}), 50).Return([]*qdrant.RetrievedPoint{retrievedPoint(t, rec)}, nil)

	cdb := databases.NewCaseDatabase(store)
	records, err := cdb.Untitled(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)
	store.AssertExpectations(t)
}

func TestCaseDatabaseSetCaseName(t *testing.T) {
	store := &mocks.VectorStore{}
	store.On("SetPayload", mock.Anything, "data-id-1", mock.MatchedBy(func(payload map[string]*qdrant.Value) bool {
		return payload["case_name"].GetStringValue() == "Backfilled Title"
	})).Return(nil)

	cdb := databases.NewCaseDatabase(store)
	require.NoError(t, cdb.SetCaseName(context.Background(), "data-id-1", "Backfilled Title"))
	store.AssertExpectations(t)
}

func retrievedPoint(t *testing.T, rec models.Record) *qdrant.RetrievedPoint {
	t.Helper()
	payload, err := databases.RecordPayload(rec)
	require.NoError(t, err)
	return &qdrant.RetrievedPoint{Payload: payload}
}
