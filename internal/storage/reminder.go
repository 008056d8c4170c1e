package storage

import (
	"sync"
	"time"
)

// ReminderMessage identifies a reminder sent to a chat.
type ReminderMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// ReminderStorage remembers the last reminder message of every chat so it
// can be removed once the learner starts reviewing.
type ReminderStorage struct {
	mu       sync.Mutex
	messages map[int64]ReminderMessage
}

func NewReminderStorage() *ReminderStorage {
	return &ReminderStorage{
		messages: make(map[int64]ReminderMessage),
	}
}

func (s *ReminderStorage) Store(chatID int64, messageID int, sentAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[chatID] = ReminderMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    sentAt,
	}
}

// Take returns and forgets the reminder of chatID.
func (s *ReminderStorage) Take(chatID int64) (ReminderMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[chatID]
	if ok {
		delete(s.messages, chatID)
	}
	return msg, ok
}
