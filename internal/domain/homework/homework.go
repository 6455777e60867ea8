package homework

import (
	"errors"
	"fmt"
)

// Status is the review status code assigned to a homework by the API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps each recognized review status to its human-readable verdict.
// Read-only; never mutated after process start.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Homework is a single submission entry as returned by the review API.
type Homework struct {
	Name   string `json:"homework_name"`
	Status Status `json:"status"`
}

var (
	// ErrMissingName indicates a homework record without a homework_name value.
	ErrMissingName = errors.New(`homework record has no "homework_name"`)
	// ErrEmptyStatus indicates a homework record whose status value is empty.
	ErrEmptyStatus = errors.New("homework review status is empty")
)

// UnknownStatusError indicates a status code outside the recognized set.
type UnknownStatusError struct {
	Status Status
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework review status %q", string(e.Status))
}

// NoUpdateMessage is the message composed when no homework status changed
// since the last poll.
const NoUpdateMessage = "Статус проверки работы не изменился"

// StatusMessage composes the chat message for a homework record. A nil record
// is the no-update sentinel and yields NoUpdateMessage without a verdict lookup.
func (hw *Homework) StatusMessage() (string, error) {
	if hw == nil {
		return NoUpdateMessage, nil
	}
	if hw.Name == "" {
		return "", ErrMissingName
	}
	if hw.Status == "" {
		return "", ErrEmptyStatus
	}
	verdict, ok := Verdicts[hw.Status]
	if !ok {
		return "", &UnknownStatusError{Status: hw.Status}
	}
	return fmt.Sprintf("Изменился статус проверки работы %q. %s", hw.Name, verdict), nil
}
