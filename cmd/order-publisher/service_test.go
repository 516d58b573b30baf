package main

import (
	"context"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/palengkeph/palengke-backend/pkg/config"
	"github.com/palengkeph/palengke-backend/pkg/db/models"
	"github.com/palengkeph/palengke-backend/pkg/enums"
	"github.com/palengkeph/palengke-backend/pkg/logger"
	"github.com/rs/zerolog"
)

type stubRepo struct {
	pending   []models.OutboxEvent
	published []uuid.UUID
	failed    []uuid.UUID
	requeued  int
}

func (s *stubRepo) FetchUnpublished(limit int) ([]models.OutboxEvent, error) {
	if limit < len(s.pending) {
		return s.pending[:limit], nil
	}
	return s.pending, nil
}

func (s *stubRepo) MarkPublished(id uuid.UUID) error {
	s.published = append(s.published, id)
	return nil
}

func (s *stubRepo) MarkFailed(id uuid.UUID, cause error, maxAttempts int) error {
	s.failed = append(s.failed, id)
	return nil
}

func (s *stubRepo) RequeueFailed() (int64, error) {
	s.requeued++
	return 0, nil
}

type stubResult struct {
	err error
}

func (s stubResult) Get(context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "msg-1", nil
}

type stubPublisher struct {
	messages []*gcppubsub.Message
	err      error
}

func (s *stubPublisher) Publish(_ context.Context, msg *gcppubsub.Message) publishResult {
	s.messages = append(s.messages, msg)
	return stubResult{err: s.err}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.ErrorLevel})
}

func sampleEvent() models.OutboxEvent {
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.EventOrderCreated,
		AggregateType: enums.AggregateOrder,
		AggregateID:   uuid.New(),
		Payload:       []byte(`{"version":1,"eventId":"evt-1","occurredAt":"2026-01-01T00:00:00Z","data":{}}`),
		Status:        enums.OutboxStatusPending,
		CreatedAt:     time.Now(),
	}
}

func newTestService(t *testing.T, repo *stubRepo, pub *stubPublisher) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Config:     &config.Config{},
		Logger:     testLogger(),
		Repository: repo,
		Publisher:  pub,
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestProcessBatchPublishesPendingEvents(t *testing.T) {
	t.Parallel()

	event := sampleEvent()
	repo := &stubRepo{pending: []models.OutboxEvent{event}}
	pub := &stubPublisher{}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("processBatch failed: %v", err)
	}
	if !processed {
		t.Fatal("expected batch to be processed")
	}
	if len(pub.messages) != 1 {
		t.Fatalf("expected one publish, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if string(msg.Data) != string(event.Payload) {
		t.Fatal("expected payload published verbatim")
	}
	if msg.Attributes["event_type"] != string(enums.EventOrderCreated) {
		t.Fatalf("unexpected event_type attribute %q", msg.Attributes["event_type"])
	}
	if msg.Attributes["event_id"] != "evt-1" {
		t.Fatalf("unexpected event_id attribute %q", msg.Attributes["event_id"])
	}
	if len(repo.published) != 1 || repo.published[0] != event.ID {
		t.Fatalf("expected event marked published, got %+v", repo.published)
	}
	if repo.requeued != 1 {
		t.Fatalf("expected one requeue pass, got %d", repo.requeued)
	}
}

func TestProcessBatchMarksFailureAndContinues(t *testing.T) {
	t.Parallel()

	first := sampleEvent()
	second := sampleEvent()
	repo := &stubRepo{pending: []models.OutboxEvent{first, second}}
	pub := &stubPublisher{err: errors.New("broker down")}
	svc := newTestService(t, repo, pub)

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("processBatch failed: %v", err)
	}
	if !processed {
		t.Fatal("expected batch to be processed")
	}
	if len(repo.failed) != 2 {
		t.Fatalf("expected both events marked failed, got %d", len(repo.failed))
	}
	if len(repo.published) != 0 {
		t.Fatalf("expected no events marked published, got %d", len(repo.published))
	}
}

func TestProcessBatchEmptyQueue(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, &stubPublisher{})

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("processBatch failed: %v", err)
	}
	if processed {
		t.Fatal("expected empty queue to report no work")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, &stubPublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
