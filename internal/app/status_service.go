// internal/app/status_service.go
package app

import (
	"context"
	"fmt"
	"time"

	domainPracticum "github.com/Freeman-83/homework-bot/internal/domain/practicum"
	domainTelegram "github.com/Freeman-83/homework-bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// StatusService defines the operations of one poll cycle.
type StatusService interface {
	// ProcessStatusUpdate runs a single poll: query the API from the current
	// cursor, advance the cursor, and notify the chat when the latest
	// homework's review status changed.
	ProcessStatusUpdate(ctx context.Context) error
	// ReportFailure sends the error text of a failed cycle to the chat.
	// Delivery is best-effort; a failed report is only logged.
	ReportFailure(cause error)
}

// StatusServiceImpl implements the StatusService interface.
type StatusServiceImpl struct {
	apiClient      domainPracticum.Client
	telegramClient domainTelegram.Client
	chatID         int64
	logger         *logrus.Logger

	// cursor is the from_date lower bound for the next poll. It is read and
	// written only inside poll cycles, which never run concurrently.
	cursor int64
}

func NewStatusService(
	api domainPracticum.Client,
	tc domainTelegram.Client,
	chatID int64,
	logger *logrus.Logger,
) *StatusServiceImpl {
	return &StatusServiceImpl{
		apiClient:      api,
		telegramClient: tc,
		chatID:         chatID,
		logger:         logger,
		cursor:         time.Now().Unix(),
	}
}

// ProcessStatusUpdate runs one poll cycle. The cursor advances only after a
// fully parsed response, so a failed cycle re-polls the same window.
func (s *StatusServiceImpl) ProcessStatusUpdate(ctx context.Context) error {
	resp, err := s.apiClient.HomeworkStatuses(ctx, s.cursor)
	if err != nil {
		return fmt.Errorf("failed to poll homework statuses: %w", err)
	}

	if resp.CurrentDate != nil {
		s.cursor = *resp.CurrentDate
	}

	hw := resp.First()
	message, err := hw.StatusMessage()
	if err != nil {
		return fmt.Errorf("failed to parse homework status: %w", err)
	}
	s.logger.Debug(message)

	if hw == nil {
		// Nothing changed this cycle; skip the send.
		return nil
	}

	s.send(message)
	return nil
}

// ReportFailure notifies the chat about a failed cycle. Never re-raises:
// a failed failure-report must not cause a crash loop.
func (s *StatusServiceImpl) ReportFailure(cause error) {
	s.send(fmt.Sprintf("Сбой в работе программы: %v", cause))
}

// send delivers a message to the configured chat, swallowing transport
// errors into a log line.
func (s *StatusServiceImpl) send(message string) {
	if err := s.telegramClient.SendMessage(s.chatID, message); err != nil {
		s.logger.Errorf("Failed to send message to chat %d: %v", s.chatID, err)
		return
	}
	s.logger.Debugf("Message sent to chat %d", s.chatID)
}
