package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/layout"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

// MockDeckNameRepo is a mock of DeckNameRepository.
type MockDeckNameRepo struct {
	mock.Mock
}

func (m *MockDeckNameRepo) Upsert(ctx context.Context, name string, usedAt time.Time) error {
	args := m.Called(ctx, name, usedAt)
	return args.Error(0)
}

func (m *MockDeckNameRepo) Search(ctx context.Context, query string, limit int) ([]*domain.DeckName, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DeckName), args.Error(1)
}

// MockArtUsageRepo is a mock of ArtUsageRepository.
type MockArtUsageRepo struct {
	mock.Mock
}

func (m *MockArtUsageRepo) Upsert(ctx context.Context, rec *domain.ArtUsageRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockArtUsageRepo) FindByURLs(ctx context.Context, urls []string) ([]*domain.ArtUsageRecord, error) {
	args := m.Called(ctx, urls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ArtUsageRecord), args.Error(1)
}

// MockCardSource is a mock of CardSource.
type MockCardSource struct {
	mock.Mock
}

func (m *MockCardSource) Autocomplete(ctx context.Context, partial string) ([]string, error) {
	args := m.Called(ctx, partial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCardSource) SearchArts(ctx context.Context, name string) ([]domain.CardArtOption, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CardArtOption), args.Error(1)
}

// MockImageFetcher is a mock of ImageFetcher.
type MockImageFetcher struct {
	mock.Mock
}

func (m *MockImageFetcher) FetchImage(ctx context.Context, url string, maxBytes int64) (*domain.ImageBlob, error) {
	args := m.Called(ctx, url, maxBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImageBlob), args.Error(1)
}

// MockRenderer is a mock of ThumbnailRenderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderPNG(ctx context.Context, l layout.Layout, assets ports.RenderAssets, scale float64) ([]byte, error) {
	args := m.Called(ctx, l, assets, scale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
