// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"math"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/domain/progression"
	"github.com/aliskhannn/vocab-companion/internal/service"
	"github.com/aliskhannn/vocab-companion/internal/storage"
)

// Error and hint messages.
const (
	msgUseAdd          = "To save a word send:\n/add word - translation\n/add word - translation - example sentence"
	msgUseDelete       = "Use: /delete word"
	msgUseRead         = "Use: /read article-id"
	msgUseGoal         = "Use: /goal N, where N is a number of words per day."
	msgWordNotFound    = "This word is not in your collection."
	msgCardNotFound    = "This card no longer exists."
	msgCardNotDue      = "This card was already reviewed."
	msgInvalidGrade    = "Unknown answer, please use the buttons."
	msgNoProfile       = "You have no profile yet. Send /start to create one."
	msgNoWords         = "Your collection is empty. Add a word with /add word - translation."
	msgNothingDue      = "🎉 No cards are due right now. Come back later or add new words with /add."
	msgAlreadyRead     = "This article is already counted."
	msgMaxLevel        = "🏆 You have reached the highest level. Keep practicing!"
	msgSaveWarning     = "⚠️ Your answer was counted, but the changes could not be saved. They may be lost after a restart."
	msgInternalError   = "Something went wrong. Please try again later."
	msgUnknownCommand  = "Unknown command. Send /help to see what I can do."
	msgHelp            = "Available commands:\n\n" +
		"/add word - translation - save a word (an example sentence may follow after another \" - \")\n" +
		"/review - review the cards that are due\n" +
		"/words - list your saved words\n" +
		"/delete word - remove a word\n" +
		"/stats - your statistics and achievements\n" +
		"/level - progress towards the next level\n" +
		"/read article-id - count an article as read\n" +
		"/goal N - set your daily goal\n" +
		"/help - this message"
)

const (
	progressBarLength = 10
	wordsListLimit    = 50
)

var criterionLabels = map[progression.Criterion]string{
	progression.CriterionVocabulary:     "Words saved",
	progression.CriterionWellKnownWords: "Well-known words",
	progression.CriterionArticlesRead:   "Articles read",
	progression.CriterionAverageReviews: "Average reviews",
	progression.CriterionCurrentStreak:  "Day streak",
}

var achievementLabels = map[entities.Achievement]string{
	entities.AchievementFirst10Words:      "🥉 First 10 words",
	entities.AchievementVocabularyBuilder: "🥈 Vocabulary builder",
	entities.AchievementQuickLearner:      "⚡ Quick learner",
	entities.AchievementWeekWarrior:       "🔥 Week warrior",
}

var gradeLabels = map[entities.ReviewGrade]string{
	entities.GradeAgain: "🔁 Again",
	entities.GradeHard:  "😓 Hard",
	entities.GradeGood:  "🙂 Good",
	entities.GradeEasy:  "😎 Easy",
}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func buildWelcomeMessage(name string, created bool) string {
	var sb strings.Builder

	if created {
		sb.WriteString(md(fmt.Sprintf("👋 Welcome, %s!", name)))
	} else {
		sb.WriteString(md(fmt.Sprintf("👋 Welcome back, %s!", name)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(md("I help you remember the words you meet while reading. Save a word, and I will bring it back right before you are likely to forget it."))
	sb.WriteString("\n\n")

	sb.WriteString(md("1. Save a word with /add word - translation."))
	sb.WriteString("\n")
	sb.WriteString(md("2. Review the cards that are due with /review."))
	sb.WriteString("\n")
	sb.WriteString(md("3. Follow your progress with /stats and /level."))
	sb.WriteString("\n\n")

	sb.WriteString(md("Send /help to see all commands."))

	return sb.String()
}

// formatCardFront formats the question side of a card.
func formatCardFront(item entities.VocabularyItem, due int) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("🃏 Cards due: %d", due)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(item.Word))
	if item.Pronunciation != "" {
		sb.WriteString(" ")
		sb.WriteString(italic("[" + item.Pronunciation + "]"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md("Do you remember the translation?"))

	return sb.String()
}

// formatCardBack formats the answer side of a card.
func formatCardBack(item entities.VocabularyItem) string {
	var sb strings.Builder

	sb.WriteString(bold(item.Word))
	if item.Pronunciation != "" {
		sb.WriteString(" ")
		sb.WriteString(italic("[" + item.Pronunciation + "]"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md("➡️ "))
	sb.WriteString(bold(item.Translation))

	if item.Context != "" {
		sb.WriteString("\n\n")
		sb.WriteString(md("📖 "))
		sb.WriteString(italic(item.Context))
	}

	return sb.String()
}

// formatReviewFeedback formats the card after it has been graded.
func formatReviewFeedback(res service.ReviewResult, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(formatCardBack(res.Item))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("%s · next review %s", gradeLabels[res.Grade], formatNextReview(res.Item, now))))

	if res.Streak > 0 {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🔥 Streak: %d", res.Streak)))
	}

	return sb.String()
}

// formatNextReview describes when the item is shown again.
func formatNextReview(item entities.VocabularyItem, now time.Time) string {
	if item.NextReviewDate == nil {
		return "now"
	}
	return "in " + formatDuration(item.NextReviewDate.Sub(now))
}

// formatDuration renders d with the largest fitting unit.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "less than a minute"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(math.Round(d.Hours()/24)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func formatLevelUp(lu *service.LevelUp) string {
	return fmt.Sprintf(
		"%s\n\n%s %s",
		bold("🎉 Level up!"),
		md(fmt.Sprintf("%s → ", lu.From)),
		bold(lu.To.String()),
	)
}

// formatSessionSummary formats the result of a finished review session.
func formatSessionSummary(s storage.ReviewSession) string {
	var sb strings.Builder

	sb.WriteString(bold("✅ Review finished!"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Cards reviewed: %d", s.Reviewed)))

	for _, g := range entities.Grades {
		if n := s.ByGrade[g]; n > 0 {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("%s: %d", gradeLabels[g], n)))
		}
	}

	return sb.String()
}

// formatWordsList formats the saved words, newest first.
func formatWordsList(items []entities.VocabularyItem) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("📚 Your words (%d)", len(items))))
	sb.WriteString("\n")

	for i := len(items) - 1; i >= 0 && len(items)-i <= wordsListLimit; i-- {
		it := items[i]
		mark := "▫️"
		if it.IsWellKnown() {
			mark = "✅"
		}
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %s - %s", mark, it.Word, it.Translation)))
	}

	if len(items) > wordsListLimit {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("…and %d more", len(items)-wordsListLimit)))
	}

	return sb.String()
}

// formatStats formats the statistics screen.
func formatStats(st entities.CompleteStats) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Your statistics"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("📚 Words saved: %d", st.TotalWords)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("✅ Well known: %d", st.WellKnownWords)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🆕 Added this week: %d", st.RecentlyAdded)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🔄 Average reviews: %.1f", st.AvgReviewCount)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("📖 Articles read: %d", st.ArticlesRead)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🔥 Day streak: %d", st.CurrentStreak)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🎯 Daily goal: %d", st.DailyGoal)))

	if len(st.Achievements) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("🏅 Achievements"))
		for _, a := range st.Achievements {
			sb.WriteString("\n")
			sb.WriteString(md(achievementLabels[a]))
		}
	}

	return sb.String()
}

// formatLevelProgress formats progress towards the next tier.
func formatLevelProgress(current entities.SkillTier, s progression.Summary) string {
	var sb strings.Builder

	sb.WriteString(md("🎓 Level: "))
	sb.WriteString(bold(current.String()))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Next: %s (%d/%d criteria met, %.0f%%)", s.NextTier, s.MetCount, s.Total, s.OverallProgress)))
	sb.WriteString("\n")

	for _, c := range progression.Criteria {
		p, ok := s.Progress[c]
		if !ok {
			continue
		}

		mark := "⬜"
		if p.Met {
			mark = "✅"
		}

		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %s: %s / %s", mark, criterionLabels[c], p.Display(), formatValue(p.Required))))
		sb.WriteString("\n")
		sb.WriteString(md(buildProgressBar(p.Current, p.Required, progressBarLength)))
	}

	if s.Eligible {
		sb.WriteString("\n\n")
		sb.WriteString(md("All criteria are met, the promotion is on its way!"))
	}

	return sb.String()
}

// buildReminderNotification builds reminder notification message.
func buildReminderNotification(payload entities.ReminderPayload) string {
	var sb strings.Builder

	sb.WriteString(bold("⏰ Time to review!"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("You have %s waiting.", plural(payload.DueCount, "card"))))

	if payload.NextWord != "" {
		sb.WriteString("\n")
		sb.WriteString(md("First up: "))
		sb.WriteString(bold(payload.NextWord))
	}

	if payload.Profile != nil && payload.Profile.Stats.CurrentStreak > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("🔥 Keep your %d-day streak alive.", payload.Profile.Stats.CurrentStreak)))
	}

	return sb.String()
}

func formatValue(v float64) string {
	return progression.CriterionProgress{Current: v}.Display()
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total float64, length int) string {
	if total <= 0 {
		return fmt.Sprintf("[%s]", strings.Repeat("█", length))
	}

	filled := int(current / total * float64(length))
	if filled > length {
		filled = length
	}
	if filled < 0 {
		filled = 0
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
