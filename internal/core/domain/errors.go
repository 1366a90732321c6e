package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Usage Ledger Errors
// ============================================================================

var (
	ErrInvalidDeckName = errors.New("deck name is required")
	ErrInvalidArtURL   = errors.New("art url is required")
	ErrInvalidCardID   = errors.New("card id is required")
	ErrLedgerWrite     = errors.New("usage ledger write failed")
)

// ============================================================================
// Card Source Errors
// ============================================================================

var (
	ErrInvalidCardName = errors.New("card name is required")
	ErrUpstream        = errors.New("card api request failed")
)

// ============================================================================
// Editor Errors
// ============================================================================

// Not found errors
var (
	ErrSessionNotFound = errors.New("editor session not found")
)

// Validation errors
var (
	ErrInvalidQuadrant = errors.New("quadrant must be one of top_left, bottom_left, top_right, bottom_right")
	ErrInvalidMode     = errors.New("mode must be video or stream")
	ErrNoArtSelected   = errors.New("quadrant has no art selected")
	ErrInvalidLogo     = errors.New("logo image could not be decoded")
	ErrDialogNotOpen   = errors.New("art selection dialog is not open")
	ErrArtNotInDialog  = errors.New("art option is not offered by the dialog")
	ErrInvalidArt      = errors.New("art image could not be decoded")
)

// ============================================================================
// Image Proxy Errors
// ============================================================================

// ImageErrorReason is a machine-readable reason code for a rejected image fetch.
type ImageErrorReason string

const (
	ImageReasonInvalidURL       ImageErrorReason = "invalid_url"
	ImageReasonDisallowedDomain ImageErrorReason = "disallowed_domain"
	ImageReasonTooLarge         ImageErrorReason = "too_large"
	ImageReasonTimeout          ImageErrorReason = "timeout"
	ImageReasonUpstream         ImageErrorReason = "upstream"
)

var (
	ErrImageInvalidURL       = errors.New("image url is invalid")
	ErrImageDisallowedDomain = errors.New("image domain is not allowed")
	ErrImageTooLarge         = errors.New("image exceeds size limit")
	ErrImageTimeout          = errors.New("image request timed out")
	ErrImageUpstream         = errors.New("image upstream request failed")
)

var imageReasonErrors = map[ImageErrorReason]error{
	ImageReasonInvalidURL:       ErrImageInvalidURL,
	ImageReasonDisallowedDomain: ErrImageDisallowedDomain,
	ImageReasonTooLarge:         ErrImageTooLarge,
	ImageReasonTimeout:          ErrImageTimeout,
	ImageReasonUpstream:         ErrImageUpstream,
}

// ImageError is a typed image proxy failure. errors.Is matches both the
// reason sentinel and the underlying cause.
type ImageError struct {
	Reason ImageErrorReason
	URL    string
	Err    error
}

// NewImageError builds an ImageError for url with an optional cause.
func NewImageError(reason ImageErrorReason, url string, cause error) *ImageError {
	return &ImageError{Reason: reason, URL: url, Err: cause}
}

func (e *ImageError) Error() string {
	msg := string(e.Reason)
	if s, ok := imageReasonErrors[e.Reason]; ok {
		msg = s.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s", msg, e.URL)
}

func (e *ImageError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := imageReasonErrors[e.Reason]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
