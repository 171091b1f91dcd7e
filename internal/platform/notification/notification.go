// Package notification fans a message out to donor phone numbers over
// WhatsApp through an external messaging provider. The provider sits behind
// the Sender interface; delivery attempts are recorded in memory so a bulk
// send can report exactly which recipients failed.
package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sender delivers one WhatsApp message. Implementations must be safe for
// concurrent use; a bulk send calls it from one goroutine per recipient.
type Sender interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}

// Delivery records one attempted send.
type Delivery struct {
	ID        string     `json:"id"`
	Recipient string     `json:"recipient"`
	Body      string     `json:"body"`
	Status    string     `json:"status"` // "sent" or "failed"
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Failure pairs a recipient with the reason its send failed.
type Failure struct {
	Recipient string `json:"recipient"`
	Error     string `json:"error"`
}

// BulkResult summarizes a fan-out.
type BulkResult struct {
	Requested int       `json:"requested"`
	Sent      int       `json:"sent"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Manager orchestrates bulk sends and keeps delivery records.
type Manager struct {
	sender Sender

	mu         sync.Mutex
	deliveries map[string]*Delivery
}

func NewManager(sender Sender) *Manager {
	return &Manager{
		sender:     sender,
		deliveries: make(map[string]*Delivery),
	}
}

// ErrNoRecipients is returned when a bulk send has nothing to deliver to.
var ErrNoRecipients = errors.New("no recipients")

// BulkSend delivers body to every recipient concurrently and waits for all
// attempts. Individual failures do not stop the rest of the fan-out; they
// are collected in the result.
func (m *Manager) BulkSend(ctx context.Context, recipients []string, body string) (*BulkResult, error) {
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	result := &BulkResult{Requested: len(recipients)}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, to := range recipients {
		wg.Add(1)
		go func(to string) {
			defer wg.Done()

			d := &Delivery{
				ID:        uuid.New().String(),
				Recipient: to,
				Body:      body,
				CreatedAt: time.Now(),
			}

			err := m.sender.SendWhatsApp(ctx, to, body)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				d.Status = "failed"
				d.Error = err.Error()
				result.Failures = append(result.Failures, Failure{Recipient: to, Error: err.Error()})
			} else {
				now := time.Now()
				d.Status = "sent"
				d.SentAt = &now
				result.Sent++
			}
			m.record(d)
		}(to)
	}
	wg.Wait()

	return result, nil
}

func (m *Manager) record(d *Delivery) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries[d.ID] = d
}

// Deliveries returns a copy of all recorded delivery attempts.
func (m *Manager) Deliveries() []*Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Delivery, 0, len(m.deliveries))
	for _, d := range m.deliveries {
		copied := *d
		out = append(out, &copied)
	}
	return out
}

// MockSender is a test double recording every call.
type MockSender struct {
	mu         sync.Mutex
	calls      []MockCall
	ShouldFail bool
	FailError  string
}

// MockCall records a single SendWhatsApp invocation.
type MockCall struct {
	To   string
	Body string
}

func (m *MockSender) SendWhatsApp(_ context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{To: to, Body: body})
	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of recorded calls.
func (m *MockSender) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}
