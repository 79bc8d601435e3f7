package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

type Storer struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewStorer(ctx context.Context, config ClientConfig) (*Storer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	storer := &Storer{
		client:    client,
		indexName: config.IndexName,
	}

	if err := storer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return storer, nil
}

func (e *Storer) Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error) {
	if evaluation.ID == uuid.Nil {
		evaluation.ID = uuid.New()
	}
	if evaluation.CreatedAt.IsZero() {
		evaluation.CreatedAt = time.Now().UTC()
	}
	doc := toDocument(evaluation)

	res, err := e.client.Index(e.indexName).
		Id(doc.ID).
		Document(doc).
		Refresh(refresh.Waitfor).
		Do(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to index document: %w", err)
	}

	slog.Debug("evaluation indexed", "id", doc.ID, "index", e.indexName, "result", res.Result)
	return evaluation.ID, nil
}

func (e *Storer) Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error) {
	res, err := e.client.Get(e.indexName, id.String()).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if !res.Found {
		return nil, storage.ErrNotFound
	}

	var doc Document
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	ev, err := doc.toEvaluation()
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (e *Storer) List(ctx context.Context, cursor *domain.Cursor, size int) (*storage.ListResult, error) {
	searchReq := e.client.Search().
		Index(e.indexName).
		Query(&types.Query{
			MatchAll: &types.MatchAllQuery{},
		}).
		Size(size + 1)

	if cursor != nil {
		searchReq = searchReq.SearchAfter(
			types.FieldValue(cursor.CreatedAt.UnixMilli()),
			types.FieldValue(cursor.ID.String()),
		)
	}

	sortOrderDesc := sortorder.Desc
	searchReq = searchReq.Sort(
		&types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				"created_at": {Order: &sortOrderDesc},
			},
		},
		&types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				"id": {Order: &sortOrderDesc},
			},
		},
	)

	res, err := searchReq.Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch history query failed", "error", err, "cursor", cursor != nil)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	items := make([]domain.Evaluation, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hit: %w", err)
		}
		ev, err := doc.toEvaluation()
		if err != nil {
			return nil, err
		}
		items = append(items, ev)
	}

	return storage.NewListResult(items, size), nil
}

func (e *Storer) Ping(ctx context.Context) error {
	ok, err := e.client.Ping().Do(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("elasticsearch ping failed")
	}
	return nil
}

func (e *Storer) EnsureIndex(ctx context.Context) error {
	existsRes, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	tokens := types.NewObjectProperty()
	enabled := false
	tokens.Enabled = &enabled

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":              types.NewKeywordProperty(),
			"expression":      types.NewKeywordProperty(),
			"tokens":          tokens,
			"result":          types.NewLongNumberProperty(),
			"failure_stage":   types.NewKeywordProperty(),
			"failure_kind":    types.NewKeywordProperty(),
			"failure_message": types.NewTextProperty(),
			"created_at":      types.NewDateProperty(),
		},
	}

	createRes, err := e.client.Indices.Create(e.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", e.indexName)
	return nil
}
