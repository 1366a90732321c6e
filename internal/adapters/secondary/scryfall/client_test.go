package scryfall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deck-thumbnail-service/internal/config"
	"deck-thumbnail-service/internal/core/domain"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(&config.ScryfallConfig{
		BaseURL:   baseURL,
		Timeout:   2 * time.Second,
		UserAgent: "test-agent",
	})
}

func art(url string) map[string]any {
	return map[string]any{"art_crop": url}
}

func TestClient_Autocomplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/autocomplete", r.URL.Path)
		assert.Equal(t, "sol r", r.URL.Query().Get("q"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		json.NewEncoder(w).Encode(map[string]any{
			"object": "catalog",
			"data":   []string{"Sol Ring", "Sol Rings of Power"},
		})
	}))
	defer server.Close()

	names, err := testClient(t, server.URL).Autocomplete(context.Background(), "sol r")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sol Ring", "Sol Rings of Power"}, names)
}

func TestClient_SearchArts_PagesAndDedupes(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/search", r.URL.Path)
		if r.URL.Query().Get("page") == "2" {
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"id": "p3", "oracle_id": "o1", "set": "cmr", "artist": "Mark Tedin", "image_uris": art("https://cards.scryfall.io/art_crop/a.jpg")},
					{"id": "p4", "oracle_id": "o1", "set": "lea", "artist": "Mark Tedin", "image_uris": art("https://cards.scryfall.io/art_crop/c.jpg")},
				},
				"has_more": false,
			})
			return
		}
		assert.Equal(t, `!"Sol Ring"`, r.URL.Query().Get("q"))
		assert.Equal(t, "prints", r.URL.Query().Get("unique"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "p1", "oracle_id": "o1", "set": "c21", "artist": "Mike Bierek", "image_uris": art("https://cards.scryfall.io/art_crop/a.jpg")},
				{"id": "p2", "oracle_id": "o1", "set": "2xm", "image_uris": art("https://cards.scryfall.io/art_crop/b.jpg")},
			},
			"has_more":  true,
			"next_page": server.URL + "/cards/search?page=2",
		})
	}))
	defer server.Close()

	opts, err := testClient(t, server.URL).SearchArts(context.Background(), "Sol Ring")
	require.NoError(t, err)
	require.Len(t, opts, 3)

	assert.Equal(t, domain.CardArtOption{
		ArtURL: "https://cards.scryfall.io/art_crop/a.jpg", SetCode: "c21", PrintID: "p1", CardID: "o1", Artist: "Mike Bierek",
	}, opts[0])
	assert.Equal(t, "p2", opts[1].PrintID)
	assert.Equal(t, "lea", opts[2].SetCode)
}

func TestClient_SearchArts_CardFaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{
				"id": "dfc", "set": "mid",
				"card_faces": []map[string]any{
					{"oracle_id": "o-front", "artist": "Front Artist", "image_uris": art("https://cards.scryfall.io/art_crop/front.jpg")},
					{"oracle_id": "o-front", "artist": "Back Artist", "image_uris": art("https://cards.scryfall.io/art_crop/back.jpg")},
				},
			}},
		})
	}))
	defer server.Close()

	opts, err := testClient(t, server.URL).SearchArts(context.Background(), "Delver of Secrets")
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, "dfc", opts[0].PrintID)
	assert.Equal(t, "dfc-1", opts[1].PrintID)
	assert.Equal(t, "o-front", opts[1].CardID)
	assert.Equal(t, "Back Artist", opts[1].Artist)
}

func TestArtOptions_CardIDResolution(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "card oracle id wins over faces",
			raw: `{"id":"p","oracle_id":"o-card","card_faces":[
				{"oracle_id":"o-face","image_uris":{"art_crop":"https://x/a.jpg"}}]}`,
			want: []string{"o-card"},
		},
		{
			name: "face oracle id when card has none",
			raw: `{"id":"p","card_faces":[
				{"oracle_id":"o-a","image_uris":{"art_crop":"https://x/a.jpg"}},
				{"oracle_id":"o-b","image_uris":{"art_crop":"https://x/b.jpg"}}]}`,
			want: []string{"o-a", "o-b"},
		},
		{
			name: "print id as last resort",
			raw:  `{"id":"p","card_faces":[{"image_uris":{"art_crop":"https://x/a.jpg"}}]}`,
			want: []string{"p"},
		},
		{
			name: "single faced without oracle id",
			raw:  `{"id":"p","image_uris":{"art_crop":"https://x/a.jpg"}}`,
			want: []string{"p"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var card cardObject
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &card))

			var got []string
			for _, opt := range artOptions(card) {
				got = append(got, opt.CardID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_SearchArts_NotFoundIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"object": "error", "code": "not_found", "status": 404})
	}))
	defer server.Close()

	opts, err := testClient(t, server.URL).SearchArts(context.Background(), "Nope")
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestClient_SearchArts_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).SearchArts(context.Background(), "Sol Ring")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_FetchImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpegbytes"))
	}))
	defer server.Close()

	blob, err := testClient(t, server.URL).FetchImage(context.Background(), server.URL+"/a.jpg", 1024)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegbytes"), blob.Data)
	assert.Equal(t, "image/jpeg", blob.ContentType)
}

func TestClient_FetchImage_TooLargeByHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "2048")
		w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).FetchImage(context.Background(), server.URL+"/big.jpg", 1024)
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
}

func TestClient_FetchImage_TooLargeByBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// chunked, so no Content-Length reaches the client
		flusher := w.(http.Flusher)
		for i := 0; i < 4; i++ {
			w.Write([]byte(strings.Repeat("x", 512)))
			flusher.Flush()
		}
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).FetchImage(context.Background(), server.URL+"/big.jpg", 1024)
	var imgErr *domain.ImageError
	require.ErrorAs(t, err, &imgErr)
	assert.Equal(t, domain.ImageReasonTooLarge, imgErr.Reason)
}

func TestClient_FetchImage_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testClient(t, server.URL).FetchImage(ctx, server.URL+"/slow.jpg", 1024)
	assert.ErrorIs(t, err, domain.ErrImageTimeout)
}

func TestClient_FetchImage_UpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).FetchImage(context.Background(), server.URL+"/a.jpg", 1024)
	assert.ErrorIs(t, err, domain.ErrImageUpstream)
}
