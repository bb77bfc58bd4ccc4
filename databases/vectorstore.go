package databases

// go generate: mockery --name VectorStore

import (
	"context"

	"github.com/qdrant/go-client/qdrant"

	"github.com/intelfusion/case-similarity-api/config"
)

// VectorStore wraps the subset of the qdrant client this project uses so
// tests can substitute mocks
type VectorStore interface {
	Search(ctx context.Context, vector []float32, filter *qdrant.Filter, scoreThreshold float64, limit int) ([]*qdrant.ScoredPoint, error)
	Upsert(ctx context.Context, id string, vector []float32, payload map[string]*qdrant.Value) error
	Scroll(ctx context.Context, filter *qdrant.Filter, limit int) ([]*qdrant.RetrievedPoint, error)
	SetPayload(ctx context.Context, id string, payload map[string]*qdrant.Value) error
}

type qdrantStore struct {
	client     *qdrant.Client
	collection string
}

// NewVectorStore connects to qdrant using the values from the config
func NewVectorStore(conf *config.Config) (VectorStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   conf.QdrantHost,
		Port:   conf.QdrantPort,
		APIKey: conf.QdrantAPIKey,
	})
	if err != nil {
		return nil, err
	}
	return &qdrantStore{client: client, collection: conf.QdrantCollection}, nil
}

func (s *qdrantStore) Search(ctx context.Context, vector []float32, filter *qdrant.Filter, scoreThreshold float64, limit int) ([]*qdrant.ScoredPoint, error) {
	return s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQueryDense(vector),
		Filter:         filter,
		ScoreThreshold: qdrant.PtrOf(float32(scoreThreshold)),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
}

func (s *qdrantStore) Upsert(ctx context.Context, id string, vector []float32, payload map[string]*qdrant.Value) error {
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: payload,
			},
		},
		Wait: qdrant.PtrOf(true),
	})
	return err
}

func (s *qdrantStore) Scroll(ctx context.Context, filter *qdrant.Filter, limit int) ([]*qdrant.RetrievedPoint, error) {
	return s.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: s.collection,
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint32(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
}

func (s *qdrantStore) SetPayload(ctx context.Context, id string, payload map[string]*qdrant.Value) error {
	_, err := s.client.SetPayload(ctx, &qdrant.SetPayloadPoints{
		CollectionName: s.collection,
		Payload:        payload,
		PointsSelector: qdrant.NewPointsSelector(qdrant.NewID(id)),
		Wait:           qdrant.PtrOf(true),
	})
	return err
}
