package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidGrade is returned when a grade value is outside the four known grades.
var ErrInvalidGrade = errors.New("invalid review grade")

// ReviewGrade is the learner's self-reported recall quality for one review.
type ReviewGrade int

const (
	GradeAgain ReviewGrade = iota + 1 // not recalled
	GradeHard                         // recalled with significant difficulty
	GradeGood                         // recalled with some effort
	GradeEasy                         // recalled effortlessly
)

var (
	gradeNames   = [...]string{GradeAgain: "AGAIN", GradeHard: "HARD", GradeGood: "GOOD", GradeEasy: "EASY"}
	gradeQuality = [...]int{GradeAgain: 0, GradeHard: 1, GradeGood: 3, GradeEasy: 5}
)

// Grades lists all grades from worst to best.
var Grades = []ReviewGrade{GradeAgain, GradeHard, GradeGood, GradeEasy}

// IsValid reports whether g is one of the four grades.
func (g ReviewGrade) IsValid() bool {
	return g >= GradeAgain && g <= GradeEasy
}

// Quality returns the SM-2 quality score used in the ease-factor formula.
func (g ReviewGrade) Quality() int {
	if !g.IsValid() {
		return 0
	}
	return gradeQuality[g]
}

// ShortInterval returns the minute-scale delay used by failed recalls.
// Successful grades schedule in days and return zero.
func (g ReviewGrade) ShortInterval() time.Duration {
	switch g {
	case GradeAgain:
		return time.Minute
	case GradeHard:
		return 10 * time.Minute
	default:
		return 0
	}
}

func (g ReviewGrade) String() string {
	if g.IsValid() {
		return gradeNames[g]
	}
	return fmt.Sprintf("ReviewGrade(%d)", int(g))
}

// ParseGrade converts a textual grade ("again", "GOOD", ...) to a ReviewGrade.
func ParseGrade(s string) (ReviewGrade, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, g := range Grades {
		if gradeNames[g] == upper {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}

// MarshalText implements encoding.TextMarshaler.
func (g ReviewGrade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return []byte(gradeNames[g]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *ReviewGrade) UnmarshalText(text []byte) error {
	v, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// MarshalJSON encodes the grade as a JSON string.
func (g ReviewGrade) MarshalJSON() ([]byte, error) {
	text, err := g.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON decodes a grade from a JSON string.
func (g *ReviewGrade) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGrade, data)
	}
	return g.UnmarshalText([]byte(s))
}
