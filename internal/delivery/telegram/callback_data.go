package telegram

import (
	"strings"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

// Callback action constants.
const (
	actionReveal = "reveal"
	actionGrade  = "grade"
	actionReview = "review"
	actionLevel  = "level"
	actionStats  = "stats"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildRevealCallback builds callback data for showing the back of a card.
func buildRevealCallback(itemID string) string {
	return callbackData{Action: actionReveal, Params: []string{itemID}}.encode()
}

// buildGradeCallback builds callback data for grading a card.
func buildGradeCallback(itemID string, grade entities.ReviewGrade) string {
	return callbackData{Action: actionGrade, Params: []string{itemID, grade.String()}}.encode()
}

func buildReviewCallback() string {
	return actionReview
}

func buildLevelCallback() string {
	return actionLevel
}

func buildStatsCallback() string {
	return actionStats
}

// parseGradeCallback extracts the item ID and grade of a grade callback.
// The grade goes through entities.ParseGrade, so unknown values are rejected.
func parseGradeCallback(cd callbackData) (string, entities.ReviewGrade, error) {
	if cd.Action != actionGrade || len(cd.Params) != 2 || cd.Params[0] == "" {
		return "", 0, entities.ErrInvalidGrade
	}

	grade, err := entities.ParseGrade(cd.Params[1])
	if err != nil {
		return "", 0, err
	}

	return cd.Params[0], grade, nil
}
