package services

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"deck-thumbnail-service/internal/adapters/secondary/cache"
	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/layout"
	ports "deck-thumbnail-service/internal/core/ports/output"
	"deck-thumbnail-service/internal/testutil"
)

type thumbnailFixture struct {
	svc      *ThumbnailService
	fetcher  *testutil.MockImageFetcher
	names    *testutil.MockDeckNameRepo
	arts     *testutil.MockArtUsageRepo
	renderer *testutil.MockRenderer
}

func newThumbnailFixture(defaultLogo image.Image) *thumbnailFixture {
	f := &thumbnailFixture{
		fetcher:  new(testutil.MockImageFetcher),
		names:    new(testutil.MockDeckNameRepo),
		arts:     new(testutil.MockArtUsageRepo),
		renderer: new(testutil.MockRenderer),
	}
	images := NewImageProxyService(f.fetcher, cache.NewMemoryCache(), ImageProxyConfig{
		AllowedHosts: []string{"cards.scryfall.io"},
		MaxBytes:     1 << 20,
	})
	ledger := NewUsageLedgerService(f.names, f.arts)
	f.svc = NewThumbnailService(images, ledger, f.renderer, testutil.StubMeasurer{}, defaultLogo)
	f.svc.now = func() time.Time { return time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC) }
	return f
}

func TestThumbnailService_Export_Video(t *testing.T) {
	f := newThumbnailFixture(image.NewRGBA(image.Rect(0, 0, 280, 140)))
	prints := testutil.SolRingPrints()

	f.names.On("Upsert", mock.Anything, "Mono Red", mock.Anything).Return(nil)
	f.names.On("Upsert", mock.Anything, "Azorius Control", mock.Anything).Return(nil)
	f.arts.On("Upsert", mock.Anything, mock.MatchedBy(func(r *domain.ArtUsageRecord) bool {
		return r.ArtURL == prints[0].ArtURL && r.CardID == "sol-ring"
	})).Return(nil)
	f.fetcher.On("FetchImage", mock.Anything, prints[0].ArtURL, mock.Anything).
		Return(testutil.PNGBlob(626, 457, color.White), nil)

	var rendered layout.Layout
	var assets ports.RenderAssets
	f.renderer.On("RenderPNG", mock.Anything, mock.Anything, mock.Anything, ExportScale).
		Run(func(args mock.Arguments) {
			rendered = args.Get(1).(layout.Layout)
			assets = args.Get(2).(ports.RenderAssets)
		}).
		Return([]byte("png"), nil)

	res, err := f.svc.Export(context.Background(), Thumbnail{
		LeftDeck:  "Mono Red",
		RightDeck: "Azorius Control",
		Mode:      domain.ModeVideo,
		Art: [domain.QuadrantCount]*ThumbnailArt{
			domain.TopLeft: {ArtURL: prints[0].ArtURL, CardID: "sol-ring"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "MonoRedVsAzoriusControl.png", res.Filename)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, []byte("png"), res.Data)

	require.Len(t, rendered.Images, 1)
	img := rendered.Images[0]
	assert.Equal(t, domain.TopLeft, img.Quadrant)
	assert.True(t, img.Dest.Contains(img.Clip, 1e-6))
	assert.Contains(t, assets.Art, domain.TopLeft)
	assert.NotNil(t, assets.Logo)

	f.names.AssertExpectations(t)
	f.arts.AssertExpectations(t)
}

func TestThumbnailService_Export_LedgerFailureDoesNotBlock(t *testing.T) {
	f := newThumbnailFixture(nil)
	f.names.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("database is locked"))
	f.renderer.On("RenderPNG", mock.Anything, mock.Anything, mock.Anything, ExportScale).Return([]byte("png"), nil)

	res, err := f.svc.Export(context.Background(), Thumbnail{LeftDeck: "Mono Red", Mode: domain.ModeVideo})
	require.NoError(t, err)
	assert.Equal(t, "MonoRedVs.png", res.Filename)
	f.names.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestThumbnailService_Export_Stream(t *testing.T) {
	f := newThumbnailFixture(image.NewRGBA(image.Rect(0, 0, 140, 140)))

	var rendered layout.Layout
	f.renderer.On("RenderPNG", mock.Anything, mock.Anything, mock.Anything, ExportScale).
		Run(func(args mock.Arguments) { rendered = args.Get(1).(layout.Layout) }).
		Return([]byte("png"), nil)

	res, err := f.svc.Export(context.Background(), Thumbnail{
		LeftDeck:   "Mono Red",
		Mode:       domain.ModeStream,
		StreamDate: "2024-02-29",
		EventName:  "Friday Night Magic",
	})
	require.NoError(t, err)

	assert.Equal(t, "Livestream-02-29-24.png", res.Filename)
	f.names.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	for _, run := range rendered.Texts {
		assert.NotEqual(t, "left_deck", run.Name)
	}
}

func TestThumbnailService_Export_RenderFailure(t *testing.T) {
	f := newThumbnailFixture(nil)
	f.renderer.On("RenderPNG", mock.Anything, mock.Anything, mock.Anything, ExportScale).Return(nil, context.Canceled)

	_, err := f.svc.Export(context.Background(), Thumbnail{Mode: domain.ModeVideo})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestThumbnailService_Layout_SkipsUnavailableArt(t *testing.T) {
	f := newThumbnailFixture(nil)
	prints := testutil.SolRingPrints()
	f.fetcher.On("FetchImage", mock.Anything, prints[0].ArtURL, mock.Anything).Return(nil, errors.New("status 404"))
	f.fetcher.On("FetchImage", mock.Anything, prints[1].ArtURL, mock.Anything).
		Return(testutil.PNGBlob(200, 100, color.White), nil)

	l, err := f.svc.Layout(context.Background(), Thumbnail{
		Mode: domain.ModeVideo,
		Art: [domain.QuadrantCount]*ThumbnailArt{
			domain.TopLeft:     {ArtURL: prints[0].ArtURL},
			domain.BottomRight: {ArtURL: prints[1].ArtURL},
		},
	})
	require.NoError(t, err)
	require.Len(t, l.Images, 1)
	assert.Equal(t, domain.BottomRight, l.Images[0].Quadrant)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		mode       domain.Mode
		left       string
		right      string
		streamDate string
		want       string
	}{
		{"video", domain.ModeVideo, "Mono Red", "Azorius Control", "", "MonoRedVsAzoriusControl.png"},
		{"punctuation dropped", domain.ModeVideo, "mono-red aggro!", "UW 'Control'", "", "MonoRedAggroVsUWControl.png"},
		{"both empty", domain.ModeVideo, "", " ", "", "thumbnail.png"},
		{"stream dated", domain.ModeStream, "ignored", "", "2023-12-31", "Livestream-12-31-23.png"},
		{"stream unparseable date", domain.ModeStream, "", "", "next friday", "Livestream-03-09-24.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportFilename(tt.mode, tt.left, tt.right, tt.streamDate, now))
		})
	}
}

func TestPascalCase(t *testing.T) {
	assert.Equal(t, "MonoRed", PascalCase("mono red"))
	assert.Equal(t, "Izzet2", PascalCase("izzet 2"))
	assert.Equal(t, "", PascalCase("  -- "))
}
