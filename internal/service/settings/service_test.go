package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	settingsCache "github.com/m04kA/SMC-ShowingService/internal/infra/cache/settings"
	settingsRepo "github.com/m04kA/SMC-ShowingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ShowingService/internal/service/settings/models"
	"github.com/m04kA/SMC-ShowingService/pkg/logger"
	"github.com/m04kA/SMC-ShowingService/pkg/ptr"
	"github.com/m04kA/SMC-ShowingService/pkg/types"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByOwner(ctx context.Context, ownerID int64) (*domain.StoredSettings, error) {
	args := m.Called(ctx, ownerID)
	stored, _ := args.Get(0).(*domain.StoredSettings)
	return stored, args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, stored *domain.StoredSettings) (*domain.StoredSettings, error) {
	args := m.Called(ctx, stored)
	return stored, args.Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, ownerID int64) (*domain.CalendarSettings, error) {
	args := m.Called(ctx, ownerID)
	s, _ := args.Get(0).(*domain.CalendarSettings)
	return s, args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, settings domain.CalendarSettings) error {
	return m.Called(ctx, settings).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, ownerID int64) error {
	return m.Called(ctx, ownerID).Error(0)
}

func TestService_Resolve_AnonymousOwnerUsesDefaults(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil, logger.Discard())

	got, err := svc.Resolve(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCalendarSettings(0), got)
	repo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything)
}

func TestService_Resolve_MergesPartialRecord(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("GetByOwner", ctx, int64(5)).Return(&domain.StoredSettings{
		OwnerID:         5,
		BufferMinutes:   ptr.Ptr(0),
		WorkingHoursEnd: ptr.Ptr(types.TimeString("19:00")),
		AutoConfirm:     ptr.Ptr(true),
	}, nil)

	svc := NewService(repo, nil, logger.Discard())

	got, err := svc.Resolve(ctx, 5)
	require.NoError(t, err)

	assert.True(t, got.Stored)
	assert.Equal(t, 0, got.BufferMinutes)
	assert.Equal(t, types.TimeString("09:00"), got.WorkingHours.Start)
	assert.Equal(t, types.TimeString("19:00"), got.WorkingHours.End)
	assert.Equal(t, domain.DefaultDurationMinutes, got.DefaultDurationMinutes)
	assert.True(t, got.AutoConfirm)
	assert.True(t, got.AISchedulingEnabled)
}

func TestService_Resolve_NotFoundUsesDefaultsWithoutWarning(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("GetByOwner", ctx, int64(5)).Return(nil, settingsRepo.ErrSettingsNotFound)

	got, err := NewService(repo, nil, logger.Discard()).Resolve(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCalendarSettings(5), got)
}

func TestService_Resolve_StoreFailureDegradesToDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("GetByOwner", ctx, int64(5)).Return(nil, errors.New("connection reset"))

	got, err := NewService(repo, nil, logger.Discard()).Resolve(ctx, 5)
	assert.ErrorIs(t, err, ErrSettingsDegraded)
	assert.Equal(t, domain.DefaultCalendarSettings(5), got)
}

func TestService_Resolve_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	cache := &mockCache{}

	cached := domain.DefaultCalendarSettings(5)
	cached.BufferMinutes = 30
	cache.On("Get", ctx, int64(5)).Return(&cached, nil).Once()

	svc := NewService(repo, cache, logger.Discard())

	got, err := svc.Resolve(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 30, got.BufferMinutes)
	repo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything)

	cache.On("Get", ctx, int64(6)).Return(nil, settingsCache.ErrCacheMiss)
	repo.On("GetByOwner", ctx, int64(6)).Return(nil, settingsRepo.ErrSettingsNotFound)
	cache.On("Set", ctx, domain.DefaultCalendarSettings(6)).Return(errors.New("redis down"))

	got, err = svc.Resolve(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCalendarSettings(6), got)
	cache.AssertExpectations(t)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	cache := &mockCache{}

	repo.On("GetByOwner", ctx, int64(5)).Return(nil, settingsRepo.ErrSettingsNotFound)
	repo.On("Upsert", ctx, mock.MatchedBy(func(s *domain.StoredSettings) bool {
		return s.OwnerID == 5 &&
			*s.BufferMinutes == 10 &&
			*s.WorkingHoursStart == "08:00" &&
			len(s.WorkingDays) == 2 &&
			s.DefaultDurationMinutes == nil
	})).Return(nil)
	cache.On("Invalidate", ctx, int64(5)).Return(nil)

	svc := NewService(repo, cache, logger.Discard())

	resp, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		UserID:        5,
		OwnerID:       5,
		BufferMinutes: ptr.Ptr(10),
		WorkingHours:  &models.WorkingHoursPatch{Start: ptr.Ptr("8:00")},
		WorkingDays:   []string{"saturday", "Sunday", "sat"},
	})
	require.NoError(t, err)

	assert.Equal(t, "08:00", resp.WorkingHours.Start)
	assert.Equal(t, "17:00", resp.WorkingHours.End)
	assert.Equal(t, []string{time.Saturday.String(), time.Sunday.String()}, resp.WorkingDays)
	assert.Equal(t, 10, resp.BufferMinutes)
	assert.False(t, resp.IsDefault)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Update_Rejections(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("GetByOwner", ctx, int64(5)).Return(&domain.StoredSettings{OwnerID: 5}, nil)

	svc := NewService(repo, nil, logger.Discard())

	_, err := svc.Update(ctx, &models.UpdateSettingsRequest{UserID: 6, OwnerID: 5})
	assert.ErrorIs(t, err, ErrAccessDenied)

	bad := []*models.UpdateSettingsRequest{
		{BufferMinutes: ptr.Ptr(-1)},
		{BufferMinutes: ptr.Ptr(domain.MaxBufferMinutes + 1)},
		{DefaultDurationMinutes: ptr.Ptr(5)},
		{WorkingDays: []string{"Funday"}},
		{WorkingHours: &models.WorkingHoursPatch{End: ptr.Ptr("25:00")}},
		{WorkingHours: &models.WorkingHoursPatch{Start: ptr.Ptr("18:00")}},
	}
	for i, req := range bad {
		req.UserID, req.OwnerID = 5, 5
		_, err := svc.Update(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput, "case %d", i)
	}

	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
