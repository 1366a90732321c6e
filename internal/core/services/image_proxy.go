package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"deck-thumbnail-service/internal/core/domain"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

type ImageProxyConfig struct {
	AllowedHosts []string
	MaxBytes     int64
	Timeout      time.Duration
}

// ImageProxyService fetches images from allow-listed hosts with a size
// cap and timeout, caching results by URL.
type ImageProxyService struct {
	fetcher ports.ImageFetcher
	cache   ports.ImageCache
	allowed map[string]struct{}
	maxSize int64
	timeout time.Duration
	group   singleflight.Group
}

// NewImageProxyService creates a new image proxy service
func NewImageProxyService(fetcher ports.ImageFetcher, cache ports.ImageCache, cfg ImageProxyConfig) *ImageProxyService {
	allowed := make(map[string]struct{}, len(cfg.AllowedHosts))
	for _, h := range cfg.AllowedHosts {
		allowed[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ImageProxyService{
		fetcher: fetcher,
		cache:   cache,
		allowed: allowed,
		maxSize: cfg.MaxBytes,
		timeout: timeout,
	}
}

// Validate checks rawURL against the scheme and host allow-list.
func (s *ImageProxyService) Validate(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return domain.NewImageError(domain.ImageReasonInvalidURL, rawURL, err)
	}
	if _, ok := s.allowed[strings.ToLower(u.Hostname())]; !ok {
		return domain.NewImageError(domain.ImageReasonDisallowedDomain, rawURL, nil)
	}
	return nil
}

// Fetch returns the image at rawURL. Concurrent fetches of one URL share
// a single download.
func (s *ImageProxyService) Fetch(ctx context.Context, rawURL string) (*domain.ImageBlob, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := s.Validate(rawURL); err != nil {
		return nil, err
	}

	if blob, ok, err := s.cache.Get(ctx, rawURL); err != nil {
		log.WithError(err).Warn("image cache read failed")
	} else if ok {
		return blob, nil
	}

	v, err, _ := s.group.Do(rawURL, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		blob, err := s.fetcher.FetchImage(fetchCtx, rawURL, s.maxSize)
		if err != nil {
			return nil, classifyFetchError(fetchCtx, rawURL, err)
		}
		if s.maxSize > 0 && int64(len(blob.Data)) > s.maxSize {
			return nil, domain.NewImageError(domain.ImageReasonTooLarge, rawURL, nil)
		}
		if err := s.cache.Set(fetchCtx, rawURL, blob); err != nil {
			log.WithError(err).Warn("image cache write failed")
		}
		return blob, nil
	})
	if err != nil {
		log.WithError(err).WithField("url", rawURL).Warn("image fetch failed")
		return nil, err
	}
	return v.(*domain.ImageBlob), nil
}

// Decode fetches and decodes the image at rawURL.
func (s *ImageProxyService) Decode(ctx context.Context, rawURL string) (image.Image, error) {
	blob, err := s.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(blob.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArt, err)
	}
	return img, nil
}

// Dimensions returns the natural size of the image at rawURL as drawn,
// after EXIF orientation.
func (s *ImageProxyService) Dimensions(ctx context.Context, rawURL string) (int, int, error) {
	img, err := s.Decode(ctx, rawURL)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func classifyFetchError(ctx context.Context, rawURL string, err error) error {
	var imgErr *domain.ImageError
	if errors.As(err, &imgErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewImageError(domain.ImageReasonTimeout, rawURL, err)
	}
	return domain.NewImageError(domain.ImageReasonUpstream, rawURL, err)
}
