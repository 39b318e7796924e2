package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skate-scout/internal/domain"
	apperrors "github.com/skate-scout/internal/pkg/errors"
	"github.com/skate-scout/internal/repository/memory"
	"github.com/skate-scout/internal/usecase"
	"github.com/skate-scout/internal/usecase/dto"
)

func actionIs(action domain.ReportAction) interface{} {
	return mock.MatchedBy(func(e domain.ReportEvent) bool { return e.Action == action })
}

func TestReportUseCase_Create(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewReportRepository()
	events := &MockReportEventPublisher{}
	events.On("Publish", ctx, actionIs(domain.ReportCreated)).Return(nil).Once()

	uc := usecase.NewReportUseCase(repo, events, zap.NewNop())

	report, err := uc.Create(ctx, dto.CreateReportRequest{
		Lat:         ptr(30.6175),
		Lng:         ptr(-96.34),
		Type:        "Smoothness",
		Rating:      ptr(2),
		Description: "cracked pavement",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReportSmoothness, report.Type)
	assert.WithinDuration(t, time.Now(), report.CreatedAt, 5*time.Second)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, report.ID, list[0].ID)

	events.AssertExpectations(t)
}

func TestReportUseCase_PublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	events := &MockReportEventPublisher{}
	events.On("Publish", ctx, mock.Anything).Return(errors.New("stream unavailable"))

	uc := usecase.NewReportUseCase(memory.NewReportRepository(), events, zap.NewNop())

	_, err := uc.Create(ctx, dto.CreateReportRequest{Lat: ptr(0), Lng: ptr(0), Type: "blocked"})
	require.NoError(t, err)

	n, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReportUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	events := &MockReportEventPublisher{}
	events.On("Publish", ctx, mock.Anything).Return(nil)

	uc := usecase.NewReportUseCase(memory.NewReportRepository(), events, zap.NewNop())

	report, err := uc.Create(ctx, dto.CreateReportRequest{Lat: ptr(30.6), Lng: ptr(-96.3), Type: "construction"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, report.ID))

	err = uc.Delete(ctx, report.ID)
	assert.True(t, errors.Is(err, apperrors.ErrReportNotFound))

	events.AssertCalled(t, "Publish", ctx, actionIs(domain.ReportDeleted))
}

func TestReportUseCase_Expire(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewReportRepository()
	events := &MockReportEventPublisher{}
	events.On("Publish", ctx, actionIs(domain.ReportExpired)).Return(nil).Once()

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, &domain.Report{ID: "old", CreatedAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &domain.Report{ID: "new", CreatedAt: now}))

	uc := usecase.NewReportUseCase(repo, events, zap.NewNop())

	removed, err := uc.Expire(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	removed, err = uc.Expire(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// nothing left to expire, no second event
	removed, err = uc.Expire(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	events.AssertExpectations(t)
}
