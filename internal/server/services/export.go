package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gotodo/internal/logging"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
	"github.com/google/uuid"
)

// ExportURLTTL is how long a snapshot download link stays valid.
const ExportURLTTL = 15 * time.Minute

// ObjectStore is the storage the export service writes snapshots to.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

// Snapshot describes a stored export.
type Snapshot struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

type snapshotDocument struct {
	ExportedAt string         `json:"exported_at"`
	Todos      []*models.Todo `json:"todos"`
}

var (
	now    = time.Now
	newKey = func(t time.Time) string {
		return fmt.Sprintf("exports/%04d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), uuid.New())
	}
)

type ExportService struct {
	todos  *TodoService
	store  ObjectStore
	bucket string
	logger logging.Logger
}

func NewExportService(todos *TodoService, store ObjectStore, bucket string, logger logging.Logger) *ExportService {
	return &ExportService{
		todos:  todos,
		store:  store,
		bucket: bucket,
		logger: logger.With("module", "export_service"),
	}
}

// Export writes every todo as one JSON document and returns a presigned
// link to it.
func (s *ExportService) Export(ctx context.Context) (*Snapshot, error) {
	items, err := s.todos.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	t := now().UTC()
	body, err := json.Marshal(snapshotDocument{
		ExportedAt: t.Format(time.RFC3339),
		Todos:      items,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding snapshot: %w", err)
	}

	key := newKey(t)
	if err := s.store.PutObject(ctx, s.bucket, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("error storing snapshot: %w", err)
	}

	url, err := s.store.PresignGet(ctx, s.bucket, key, ExportURLTTL)
	if err != nil {
		return nil, fmt.Errorf("error signing snapshot url: %w", err)
	}

	s.logger.Info(ctx, "snapshot exported", "key", key, "count", len(items))
	return &Snapshot{Key: key, URL: url, Count: len(items)}, nil
}
