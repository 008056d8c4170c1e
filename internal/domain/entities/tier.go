package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTier is returned when a skill tier name cannot be parsed.
var ErrInvalidTier = errors.New("invalid skill tier")

// SkillTier is a discrete skill level. Tiers are totally ordered and a
// learner only ever moves to the immediate next one.
type SkillTier int

const (
	TierBeginner SkillTier = iota + 1
	TierElementary
	TierIntermediate
	TierUpperIntermediate
	TierAdvanced
)

var tierNames = [...]string{
	TierBeginner:          "Beginner",
	TierElementary:        "Elementary",
	TierIntermediate:      "Intermediate",
	TierUpperIntermediate: "Upper-Intermediate",
	TierAdvanced:          "Advanced",
}

// Tiers lists all tiers in progression order.
var Tiers = []SkillTier{TierBeginner, TierElementary, TierIntermediate, TierUpperIntermediate, TierAdvanced}

// PromotionCriteria are the minimum learner statistics required to enter a tier.
type PromotionCriteria struct {
	MinVocabulary     int     `json:"minVocabulary"`
	MinWellKnownWords int     `json:"minWellKnownWords"`
	MinArticlesRead   int     `json:"minArticlesRead"`
	MinAverageReviews float64 `json:"minAverageReviews"`
	MinStreak         int     `json:"minStreak"`
}

var promotionCriteria = map[SkillTier]PromotionCriteria{
	TierElementary: {
		MinVocabulary:     5,
		MinWellKnownWords: 1,
		MinArticlesRead:   5,
		MinAverageReviews: 1.0,
		MinStreak:         1,
	},
	TierIntermediate: {
		MinVocabulary:     150,
		MinWellKnownWords: 75,
		MinArticlesRead:   15,
		MinAverageReviews: 2.5,
		MinStreak:         7,
	},
	TierUpperIntermediate: {
		MinVocabulary:     300,
		MinWellKnownWords: 200,
		MinArticlesRead:   30,
		MinAverageReviews: 3.0,
		MinStreak:         14,
	},
	TierAdvanced: {
		MinVocabulary:     500,
		MinWellKnownWords: 350,
		MinArticlesRead:   50,
		MinAverageReviews: 3.5,
		MinStreak:         21,
	},
}

// IsValid reports whether t is one of the five tiers.
func (t SkillTier) IsValid() bool {
	return t >= TierBeginner && t <= TierAdvanced
}

// IsTerminal reports whether t has no further tier.
func (t SkillTier) IsTerminal() bool {
	return t == TierAdvanced
}

// Next returns the tier after t. The second value is false for Advanced
// and for unrecognized tiers.
func (t SkillTier) Next() (SkillTier, bool) {
	if !t.IsValid() || t.IsTerminal() {
		return 0, false
	}
	return t + 1, true
}

// Criteria returns the requirements for entering t. Beginner has none.
func (t SkillTier) Criteria() (PromotionCriteria, bool) {
	c, ok := promotionCriteria[t]
	return c, ok
}

func (t SkillTier) String() string {
	if t.IsValid() {
		return tierNames[t]
	}
	return fmt.Sprintf("SkillTier(%d)", int(t))
}

// ParseSkillTier parses a tier name. Matching ignores case and accepts
// "_" or " " in place of "-".
func ParseSkillTier(s string) (SkillTier, error) {
	norm := strings.NewReplacer("_", "-", " ", "-").Replace(strings.TrimSpace(s))
	for _, t := range Tiers {
		if strings.EqualFold(tierNames[t], norm) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTier, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t SkillTier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTier, int(t))
	}
	return []byte(tierNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SkillTier) UnmarshalText(text []byte) error {
	v, err := ParseSkillTier(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalJSON encodes the tier as its display name. The zero tier is an
// unset level and encodes as Beginner.
func (t SkillTier) MarshalJSON() ([]byte, error) {
	if t == 0 {
		t = TierBeginner
	}
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON decodes a tier from its display name. An empty string or
// null decodes to Beginner, matching profiles saved before levels existed.
func (t *SkillTier) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TierBeginner
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTier, data)
	}
	if s == "" {
		*t = TierBeginner
		return nil
	}
	return t.UnmarshalText([]byte(s))
}
