// Package scryfall is the card database adapter: name autocomplete, art
// search across every print, and image downloads.
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"deck-thumbnail-service/internal/config"
	"deck-thumbnail-service/internal/core/domain"
)

// maxSearchPages bounds how many result pages one art search follows.
const maxSearchPages = 5

type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a Scryfall client. API calls are paced to one per
// cfg.RateDelay; image downloads are not paced.
func NewClient(cfg *config.ScryfallConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RateDelay > 0 {
		limit = rate.Every(cfg.RateDelay)
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Scryfall API response structures
type listResponse struct {
	Data     json.RawMessage `json:"data"`
	HasMore  bool            `json:"has_more"`
	NextPage string          `json:"next_page"`
}

type cardObject struct {
	ID        string     `json:"id"`
	OracleID  string     `json:"oracle_id"`
	Name      string     `json:"name"`
	Set       string     `json:"set"`
	Artist    string     `json:"artist"`
	ImageURIs *imageURIs `json:"image_uris"`
	CardFaces []struct {
		OracleID  string     `json:"oracle_id"`
		Artist    string     `json:"artist"`
		ImageURIs *imageURIs `json:"image_uris"`
	} `json:"card_faces"`
}

type imageURIs struct {
	ArtCrop string `json:"art_crop"`
}

type errorObject struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

// ============================================================================
// Card API
// ============================================================================

func (c *Client) Autocomplete(ctx context.Context, partial string) ([]string, error) {
	params := url.Values{}
	params.Set("q", partial)

	var names []string
	_, err := c.getList(ctx, fmt.Sprintf("%s/cards/autocomplete?%s", c.baseURL, params.Encode()), &names)
	if err != nil {
		if errors.Is(err, errNoResults) {
			return nil, nil
		}
		return nil, err
	}
	return names, nil
}

func (c *Client) SearchArts(ctx context.Context, name string) ([]domain.CardArtOption, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("!%q", name))
	params.Set("unique", "prints")
	params.Set("order", "released")

	next := fmt.Sprintf("%s/cards/search?%s", c.baseURL, params.Encode())
	seen := make(map[string]struct{})
	var out []domain.CardArtOption

	for page := 0; next != "" && page < maxSearchPages; page++ {
		var cards []cardObject
		list, err := c.getList(ctx, next, &cards)
		if err != nil {
			if errors.Is(err, errNoResults) {
				return out, nil
			}
			return nil, err
		}

		for _, card := range cards {
			for _, opt := range artOptions(card) {
				if _, dup := seen[opt.ArtURL]; dup {
					continue
				}
				seen[opt.ArtURL] = struct{}{}
				out = append(out, opt)
			}
		}

		next = ""
		if list.HasMore {
			next = list.NextPage
		}
	}

	return out, nil
}

// artOptions flattens a print into one option per art crop. Multi-faced
// prints carry their crops on the faces.
func artOptions(card cardObject) []domain.CardArtOption {
	if card.ImageURIs != nil && card.ImageURIs.ArtCrop != "" {
		cardID := card.OracleID
		if cardID == "" {
			cardID = card.ID
		}
		return []domain.CardArtOption{{
			ArtURL:  card.ImageURIs.ArtCrop,
			SetCode: card.Set,
			PrintID: card.ID,
			CardID:  cardID,
			Artist:  card.Artist,
		}}
	}

	var out []domain.CardArtOption
	for i, face := range card.CardFaces {
		if face.ImageURIs == nil || face.ImageURIs.ArtCrop == "" {
			continue
		}
		printID := card.ID
		if i > 0 {
			printID = fmt.Sprintf("%s-%d", card.ID, i)
		}
		id := card.OracleID
		if id == "" {
			id = face.OracleID
		}
		if id == "" {
			id = card.ID
		}
		artist := face.Artist
		if artist == "" {
			artist = card.Artist
		}
		out = append(out, domain.CardArtOption{
			ArtURL:  face.ImageURIs.ArtCrop,
			SetCode: card.Set,
			PrintID: printID,
			CardID:  id,
			Artist:  artist,
		})
	}
	return out
}

var errNoResults = errors.New("scryfall: no results")

func (c *Client) getList(ctx context.Context, reqURL string, data any) (*listResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.WithField("url", reqURL).Debug("scryfall request")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNoResults
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr errorObject
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&apiErr)
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, apiErr.Details)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decode list: %v", domain.ErrUpstream, err)
	}
	if len(list.Data) > 0 {
		if err := json.Unmarshal(list.Data, data); err != nil {
			return nil, fmt.Errorf("%w: decode data: %v", domain.ErrUpstream, err)
		}
	}
	return &list, nil
}

// ============================================================================
// Images
// ============================================================================

// FetchImage downloads url, rejecting bodies over maxBytes both from the
// Content-Length header and after reading.
func (c *Client) FetchImage(ctx context.Context, imageURL string, maxBytes int64) (*domain.ImageBlob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, domain.NewImageError(domain.ImageReasonInvalidURL, imageURL, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fetchError(ctx, imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewImageError(domain.ImageReasonUpstream, imageURL, fmt.Errorf("status %d", resp.StatusCode))
	}
	if maxBytes > 0 && resp.ContentLength > maxBytes {
		return nil, domain.NewImageError(domain.ImageReasonTooLarge, imageURL,
			fmt.Errorf("content-length %d exceeds %d", resp.ContentLength, maxBytes))
	}

	body := io.Reader(resp.Body)
	if maxBytes > 0 {
		body = io.LimitReader(resp.Body, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fetchError(ctx, imageURL, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, domain.NewImageError(domain.ImageReasonTooLarge, imageURL,
			fmt.Errorf("body exceeds %d bytes", maxBytes))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &domain.ImageBlob{Data: data, ContentType: contentType}, nil
}

func fetchError(ctx context.Context, imageURL string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewImageError(domain.ImageReasonTimeout, imageURL, err)
	}
	return domain.NewImageError(domain.ImageReasonUpstream, imageURL, err)
}
