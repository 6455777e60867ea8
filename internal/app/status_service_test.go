package app

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Freeman-83/homework-bot/internal/domain/homework"
	domainPracticum "github.com/Freeman-83/homework-bot/internal/domain/practicum"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPIClient struct {
	resp      *domainPracticum.StatusResponse
	err       error
	fromDates []int64
}

func (f *fakeAPIClient) HomeworkStatuses(_ context.Context, fromDate int64) (*domainPracticum.StatusResponse, error) {
	f.fromDates = append(f.fromDates, fromDate)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeTelegramClient struct {
	err   error
	sent  []string
	chats []int64
}

func (f *fakeTelegramClient) SendMessage(chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.chats = append(f.chats, chatID)
	f.sent = append(f.sent, text)
	return nil
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func int64Ptr(v int64) *int64 { return &v }

const testChatID int64 = 424242

func newTestService(api *fakeAPIClient, tg *fakeTelegramClient) *StatusServiceImpl {
	return NewStatusService(api, tg, testChatID, discardLogger())
}

func TestProcessStatusUpdate_NotifiesVerdict(t *testing.T) {
	api := &fakeAPIClient{resp: &domainPracticum.StatusResponse{
		Homeworks:   []homework.Homework{{Name: "hw1", Status: homework.StatusApproved}},
		CurrentDate: int64Ptr(1700000000),
	}}
	tg := &fakeTelegramClient{}
	svc := newTestService(api, tg)

	err := svc.ProcessStatusUpdate(context.Background())
	require.NoError(t, err)

	require.Len(t, tg.sent, 1)
	assert.Equal(t, `Изменился статус проверки работы "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`, tg.sent[0])
	assert.Equal(t, []int64{testChatID}, tg.chats)

	// The next poll starts from the server-provided current_date.
	require.NoError(t, svc.ProcessStatusUpdate(context.Background()))
	require.Len(t, api.fromDates, 2)
	assert.Positive(t, api.fromDates[0])
	assert.Equal(t, int64(1700000000), api.fromDates[1])
}

func TestProcessStatusUpdate_NoDedup(t *testing.T) {
	// Two consecutive polls returning the same record send the same message
	// twice; nothing beyond the cursor is remembered between cycles.
	api := &fakeAPIClient{resp: &domainPracticum.StatusResponse{
		Homeworks: []homework.Homework{{Name: "hw1", Status: homework.StatusReviewing}},
	}}
	tg := &fakeTelegramClient{}
	svc := newTestService(api, tg)

	require.NoError(t, svc.ProcessStatusUpdate(context.Background()))
	require.NoError(t, svc.ProcessStatusUpdate(context.Background()))

	require.Len(t, tg.sent, 2)
	assert.Equal(t, tg.sent[0], tg.sent[1])
}

func TestProcessStatusUpdate_NoUpdateSkipsSend(t *testing.T) {
	api := &fakeAPIClient{resp: &domainPracticum.StatusResponse{
		Homeworks:   []homework.Homework{},
		CurrentDate: int64Ptr(42),
	}}
	tg := &fakeTelegramClient{}
	svc := newTestService(api, tg)

	err := svc.ProcessStatusUpdate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tg.sent)

	// The cursor still advances on an empty update.
	require.NoError(t, svc.ProcessStatusUpdate(context.Background()))
	require.Len(t, api.fromDates, 2)
	assert.Equal(t, int64(42), api.fromDates[1])
}

func TestProcessStatusUpdate_PollError(t *testing.T) {
	pollErr := errors.New("connection refused")
	api := &fakeAPIClient{err: pollErr}
	tg := &fakeTelegramClient{}
	svc := newTestService(api, tg)

	err := svc.ProcessStatusUpdate(context.Background())
	assert.ErrorIs(t, err, pollErr)
	assert.Empty(t, tg.sent)

	// A failed poll re-polls the same window next cycle.
	_ = svc.ProcessStatusUpdate(context.Background())
	require.Len(t, api.fromDates, 2)
	assert.Equal(t, api.fromDates[0], api.fromDates[1])
}

func TestProcessStatusUpdate_UnknownStatus(t *testing.T) {
	api := &fakeAPIClient{resp: &domainPracticum.StatusResponse{
		Homeworks:   []homework.Homework{{Name: "hw1", Status: "on_fire"}},
		CurrentDate: int64Ptr(1700000000),
	}}
	tg := &fakeTelegramClient{}
	svc := newTestService(api, tg)

	err := svc.ProcessStatusUpdate(context.Background())
	var unknownErr *homework.UnknownStatusError
	require.ErrorAs(t, err, &unknownErr)
	assert.Empty(t, tg.sent)
}

func TestProcessStatusUpdate_SendFailureIsSwallowed(t *testing.T) {
	api := &fakeAPIClient{resp: &domainPracticum.StatusResponse{
		Homeworks: []homework.Homework{{Name: "hw1", Status: homework.StatusRejected}},
	}}
	tg := &fakeTelegramClient{err: errors.New("telegram is down")}
	svc := newTestService(api, tg)

	// Delivery failures are logged, never surfaced to the cycle boundary.
	err := svc.ProcessStatusUpdate(context.Background())
	assert.NoError(t, err)
}

func TestReportFailure(t *testing.T) {
	tg := &fakeTelegramClient{}
	svc := newTestService(&fakeAPIClient{}, tg)

	svc.ReportFailure(errors.New("boom"))

	require.Len(t, tg.sent, 1)
	assert.Equal(t, "Сбой в работе программы: boom", tg.sent[0])
}

func TestReportFailure_SendFailureIsSwallowed(t *testing.T) {
	tg := &fakeTelegramClient{err: errors.New("telegram is down")}
	svc := newTestService(&fakeAPIClient{}, tg)

	// Must not panic or recurse into another report.
	svc.ReportFailure(errors.New("boom"))
	assert.Empty(t, tg.sent)
}
