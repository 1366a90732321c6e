package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/testutil"
)

func newLedger() (*UsageLedgerService, *testutil.MockDeckNameRepo, *testutil.MockArtUsageRepo) {
	names := new(testutil.MockDeckNameRepo)
	arts := new(testutil.MockArtUsageRepo)
	svc := NewUsageLedgerService(names, arts)
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }
	return svc, names, arts
}

func TestUsageLedgerService_RecordDeckName(t *testing.T) {
	svc, names, _ := newLedger()
	names.On("Upsert", mock.Anything, "Mono Red", svc.now()).Return(nil)

	err := svc.RecordDeckName(context.Background(), "  Mono Red ")
	assert.NoError(t, err)
	names.AssertExpectations(t)
}

func TestUsageLedgerService_RecordDeckName_Empty(t *testing.T) {
	svc, names, _ := newLedger()

	err := svc.RecordDeckName(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidDeckName)
	names.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsageLedgerService_RecordDeckName_WriteFailure(t *testing.T) {
	svc, names, _ := newLedger()
	names.On("Upsert", mock.Anything, "Mono Red", mock.Anything).Return(errors.New("disk full"))

	err := svc.RecordDeckName(context.Background(), "Mono Red")
	assert.ErrorIs(t, err, domain.ErrLedgerWrite)
}

func TestUsageLedgerService_SearchDeckNames(t *testing.T) {
	svc, names, _ := newLedger()
	expected := []*domain.DeckName{{Name: "Mono Red", LastUsedAt: svc.now()}}
	names.On("Search", mock.Anything, "red", domain.DeckNameSearchLimit).Return(expected, nil)

	got := svc.SearchDeckNames(context.Background(), " red ")
	assert.Equal(t, expected, got)
}

func TestUsageLedgerService_SearchDeckNames_DegradesToEmpty(t *testing.T) {
	svc, names, _ := newLedger()
	names.On("Search", mock.Anything, "red", domain.DeckNameSearchLimit).Return(nil, errors.New("connection refused"))

	got := svc.SearchDeckNames(context.Background(), "red")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUsageLedgerService_RecordArtUsage(t *testing.T) {
	svc, _, arts := newLedger()
	arts.On("Upsert", mock.Anything, &domain.ArtUsageRecord{
		ArtURL:     "https://cards.scryfall.io/a.jpg",
		CardID:     "sol-ring",
		LastUsedAt: svc.now(),
	}).Return(nil)

	err := svc.RecordArtUsage(context.Background(), "https://cards.scryfall.io/a.jpg", "sol-ring")
	assert.NoError(t, err)
	arts.AssertExpectations(t)
}

func TestUsageLedgerService_RecordArtUsage_Validation(t *testing.T) {
	svc, _, _ := newLedger()

	assert.ErrorIs(t, svc.RecordArtUsage(context.Background(), "", "sol-ring"), domain.ErrInvalidArtURL)
	assert.ErrorIs(t, svc.RecordArtUsage(context.Background(), "https://cards.scryfall.io/a.jpg", " "), domain.ErrInvalidCardID)
}

func TestUsageLedgerService_LookupArtUsage_RetriesOnce(t *testing.T) {
	svc, _, arts := newLedger()
	urls := []string{"https://cards.scryfall.io/a.jpg"}
	rec := &domain.ArtUsageRecord{ArtURL: urls[0], CardID: "sol-ring", LastUsedAt: svc.now()}

	arts.On("FindByURLs", mock.Anything, urls).Return(nil, errors.New("timeout")).Once()
	arts.On("FindByURLs", mock.Anything, urls).Return([]*domain.ArtUsageRecord{rec}, nil).Once()

	got := svc.LookupArtUsage(context.Background(), []string{urls[0], urls[0], ""})
	assert.Equal(t, map[string]*domain.ArtUsageRecord{urls[0]: rec}, got)
	arts.AssertNumberOfCalls(t, "FindByURLs", 2)
}

func TestUsageLedgerService_LookupArtUsage_DegradesAfterRetry(t *testing.T) {
	svc, _, arts := newLedger()
	arts.On("FindByURLs", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	got := svc.LookupArtUsage(context.Background(), []string{"https://cards.scryfall.io/a.jpg"})
	assert.Empty(t, got)
	arts.AssertNumberOfCalls(t, "FindByURLs", 2)
}

func TestUsageLedgerService_LookupArtUsage_NoURLs(t *testing.T) {
	svc, _, arts := newLedger()

	got := svc.LookupArtUsage(context.Background(), nil)
	assert.Empty(t, got)
	arts.AssertNotCalled(t, "FindByURLs", mock.Anything, mock.Anything)
}
