package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/service/mocks"
)

const testURL = "https://madhubanmurli.org/murlis/hi/html/murli-2024-01-15.html"

type LoadServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	source    *mocks.MockSource
	sanitizer *mocks.MockSanitizer
	events    *mocks.MockFetchEventStore
	stats     *mocks.MockSelectionStatsStore
	txManager *mocks.MockTransactionManager
	publisher *mocks.MockPublisher

	service *LoadService
	sel     domain.Selection
	logger  *slog.Logger
}

func (s *LoadServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.source = mocks.NewMockSource(s.ctrl)
	s.sanitizer = mocks.NewMockSanitizer(s.ctrl)
	s.events = mocks.NewMockFetchEventStore(s.ctrl)
	s.stats = mocks.NewMockSelectionStatsStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	sel, err := domain.ParseSelection("2024-01-15", "hi")
	s.Require().NoError(err)
	s.sel = sel

	s.source.EXPECT().ID().Return("test-source").AnyTimes()
	s.source.EXPECT().HTMLURL(s.sel).Return(testURL).AnyTimes()

	s.service = NewLoadService(
		s.source,
		s.sanitizer,
		s.events,
		s.stats,
		s.txManager,
		s.publisher,
		s.logger,
	)
}

func (s *LoadServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestLoadServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoadServiceTestSuite))
}

func (s *LoadServiceTestSuite) expectTransaction() {
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func (s *LoadServiceTestSuite) TestLoad_Success() {
	ctx := context.Background()
	doc := &domain.Document{URL: testURL, StatusCode: 200, Body: "<p>murli</p><script>x()</script>"}

	s.source.EXPECT().Fetch(ctx, s.sel).Return(doc, nil)
	s.sanitizer.EXPECT().Sanitize(doc.Body).Return("<p>murli</p>")

	var recorded *domain.FetchEvent
	s.expectTransaction()
	s.events.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.FetchEvent) (int64, error) {
			recorded = event
			return 7, nil
		},
	)
	s.stats.EXPECT().Increment(gomock.Any(), gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	content, err := s.service.Load(ctx, s.sel)

	s.NoError(err)
	s.Equal("<p>murli</p>", content)
	s.Require().NotNil(recorded)
	s.Equal(int64(7), recorded.ID)
	s.Equal(domain.OutcomeSuccess, recorded.Outcome)
	s.Equal("2024-01-15", recorded.Date)
	s.Equal(domain.Hindi, recorded.Language)
	s.Equal(testURL, recorded.URL)
	s.Equal(200, recorded.StatusCode)
	s.Equal(len(doc.Body), recorded.Bytes)
	s.Nil(recorded.Error)
}

func (s *LoadServiceTestSuite) TestLoad_FetchFailure() {
	ctx := context.Background()

	s.source.EXPECT().Fetch(ctx, s.sel).Return(&domain.Document{URL: testURL, StatusCode: 404}, errors.New("unexpected status 404"))

	var recorded *domain.FetchEvent
	s.expectTransaction()
	s.events.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.FetchEvent) (int64, error) {
			recorded = event
			return 1, nil
		},
	)
	s.stats.EXPECT().Increment(gomock.Any(), gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	content, err := s.service.Load(ctx, s.sel)

	s.Error(err)
	s.Empty(content)
	s.Contains(err.Error(), "fetch hi/2024-01-15")
	s.Require().NotNil(recorded)
	s.Equal(domain.OutcomeFailure, recorded.Outcome)
	s.Equal(404, recorded.StatusCode)
	s.Require().NotNil(recorded.Error)
	s.Contains(*recorded.Error, "404")
}

func (s *LoadServiceTestSuite) TestLoad_CancelledIsNotCounted() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.source.EXPECT().Fetch(ctx, s.sel).Return(nil, context.Canceled)

	var recorded *domain.FetchEvent
	s.expectTransaction()
	s.events.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, event *domain.FetchEvent) (int64, error) {
			s.NoError(ctx.Err())
			recorded = event
			return 2, nil
		},
	)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.Load(ctx, s.sel)

	s.ErrorIs(err, context.Canceled)
	s.Require().NotNil(recorded)
	s.Equal(domain.OutcomeCancelled, recorded.Outcome)
}

func (s *LoadServiceTestSuite) TestLoad_RecordingFailureIsIgnored() {
	ctx := context.Background()
	doc := &domain.Document{URL: testURL, StatusCode: 200, Body: "<p>murli</p>"}

	s.source.EXPECT().Fetch(ctx, s.sel).Return(doc, nil)
	s.sanitizer.EXPECT().Sanitize(doc.Body).Return(doc.Body)

	s.expectTransaction()
	s.events.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	content, err := s.service.Load(ctx, s.sel)

	s.NoError(err)
	s.Equal(doc.Body, content)
}

func (s *LoadServiceTestSuite) TestLoad_WithoutRecorders() {
	ctx := context.Background()
	doc := &domain.Document{URL: testURL, StatusCode: 200, Body: "<p>murli</p>"}

	service := NewLoadService(s.source, s.sanitizer, nil, nil, nil, nil, s.logger)

	s.source.EXPECT().Fetch(ctx, s.sel).Return(doc, nil)
	s.sanitizer.EXPECT().Sanitize(doc.Body).Return(doc.Body)

	content, err := service.Load(ctx, s.sel)

	s.NoError(err)
	s.Equal(doc.Body, content)
}

func (s *LoadServiceTestSuite) TestLoad_WithoutTransactionManager() {
	ctx := context.Background()
	doc := &domain.Document{URL: testURL, StatusCode: 200, Body: "<p>murli</p>"}

	service := NewLoadService(s.source, s.sanitizer, s.events, s.stats, nil, nil, s.logger)

	s.source.EXPECT().Fetch(ctx, s.sel).Return(doc, nil)
	s.sanitizer.EXPECT().Sanitize(doc.Body).Return(doc.Body)
	s.events.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(3), nil)
	s.stats.EXPECT().Increment(gomock.Any(), gomock.Any()).Return(nil)

	_, err := service.Load(ctx, s.sel)

	s.NoError(err)
}

func TestPruneService_Prune(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockFetchEventStore(ctrl)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	svc := NewPruneService(events, 24*time.Hour, logger)
	svc.now = func() time.Time { return now }

	events.EXPECT().DeleteOlderThan(gomock.Any(), now.Add(-24*time.Hour)).Return(int64(5), nil)

	stats, err := svc.Prune(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Deleted != 5 {
		t.Errorf("expected 5 deleted, got %d", stats.Deleted)
	}
}

func TestPruneService_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockFetchEventStore(ctrl)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	svc := NewPruneService(events, time.Hour, logger)
	events.EXPECT().DeleteOlderThan(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

	stats, err := svc.Prune(context.Background())
	if err == nil || stats != nil {
		t.Fatalf("expected error and nil stats, got %v, %v", stats, err)
	}
}
