package gift

import (
	"fmt"
	"strings"
)

// Taste is how a character reacts to a gift.
type Taste byte

const (
	Love Taste = iota
	Like
	Neutral
	Dislike
	Hate
	Unknown // no data for the character or item
)

func (t Taste) String() string {
	switch t {
	case Love:
		return "love"
	case Like:
		return "like"
	case Neutral:
		return "neutral"
	case Dislike:
		return "dislike"
	case Hate:
		return "hate"
	}
	return "unknown"
}

// Known reports whether t is one of the five real tastes.
func (t Taste) Known() bool { return t < Unknown }

// ParseTaste parses a taste name, case-insensitively.
func ParseTaste(raw string) (Taste, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "love", "loved":
		return Love, nil
	case "like", "liked":
		return Like, nil
	case "neutral":
		return Neutral, nil
	case "dislike", "disliked":
		return Dislike, nil
	case "hate", "hated":
		return Hate, nil
	case "unknown":
		return Unknown, nil
	default:
		return Unknown, fmt.Errorf("unsupported taste %q", raw)
	}
}

func (t Taste) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Taste) UnmarshalText(b []byte) error {
	v, err := ParseTaste(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
