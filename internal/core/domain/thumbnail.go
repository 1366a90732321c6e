package domain

import "strings"

// Mode selects which decorative and text layout rules apply.
type Mode string

const (
	ModeVideo  Mode = "video"
	ModeStream Mode = "stream"
)

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeVideo:
		return ModeVideo, nil
	case ModeStream:
		return ModeStream, nil
	}
	return "", ErrInvalidMode
}

// Quadrant indexes one of the four canvas regions.
type Quadrant int

const (
	TopLeft Quadrant = iota
	BottomLeft
	TopRight
	BottomRight
)

// QuadrantCount is the number of art slots on a thumbnail.
const QuadrantCount = 4

var quadrantNames = [QuadrantCount]string{"top_left", "bottom_left", "top_right", "bottom_right"}

func (q Quadrant) String() string {
	if !q.Valid() {
		return "invalid"
	}
	return quadrantNames[q]
}

// Valid reports whether q is one of the four quadrants.
func (q Quadrant) Valid() bool {
	return q >= TopLeft && q <= BottomRight
}

// ParseQuadrant accepts either the quadrant name or its index ("0".."3").
func ParseQuadrant(s string) (Quadrant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range quadrantNames {
		if s == name || (len(s) == 1 && s[0] == byte('0'+i)) {
			return Quadrant(i), nil
		}
	}
	return 0, ErrInvalidQuadrant
}

func (q Quadrant) MarshalText() ([]byte, error) {
	if !q.Valid() {
		return nil, ErrInvalidQuadrant
	}
	return []byte(q.String()), nil
}

func (q *Quadrant) UnmarshalText(b []byte) error {
	parsed, err := ParseQuadrant(string(b))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}
