package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/tradewell/storefront/internal/dto"
)

// maxStoredNotifications caps the in-memory feed the admin dashboard polls.
const maxStoredNotifications = 100

// MessageReader is the consuming side of the broker connection.
// *kafka.Reader satisfies it.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type NotificationServiceImpl struct {
	reader MessageReader

	mu            sync.Mutex
	notifications []dto.Notification
}

func CreateNotificationService(reader MessageReader) NotificationService {
	return &NotificationServiceImpl{reader: reader}
}

// Consume bridges broker events onto the admin notification feed. Runs
// until the context is cancelled or the reader is closed; undecodable
// payloads are logged and skipped.
func (s *NotificationServiceImpl) Consume(ctx context.Context) {
	if s.reader == nil {
		return
	}

	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				return
			}
			log.Error().Err(err).Str("component", "Consume").Msg("")
			continue
		}

		var event dto.KafkaMessage
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error().Err(err).Str("component", "Consume").Msg("")
			continue
		}

		s.append(dto.Notification{
			EventType:  event.EventType,
			Data:       event.Data,
			ReceivedAt: time.Now(),
		})
	}
}

func (s *NotificationServiceImpl) append(notification dto.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, notification)
	if len(s.notifications) > maxStoredNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxStoredNotifications:]
	}
}

// GetNotifications returns the buffered events, newest first.
func (s *NotificationServiceImpl) GetNotifications(ctx context.Context) (data []dto.Notification, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data = make([]dto.Notification, 0, len(s.notifications))
	for i := len(s.notifications) - 1; i >= 0; i-- {
		data = append(data, s.notifications[i])
	}

	return data, nil
}
