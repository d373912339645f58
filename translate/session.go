package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Conversation roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// DefaultAcknowledgement is the model turn that follows the system prompt.
const DefaultAcknowledgement = "Understood. Send the JSON entries to translate."

// breakerCooldown keeps an open breaker open for the rest of a unit.
const breakerCooldown = 24 * time.Hour

// Turn is one conversation message.
type Turn struct {
	Role string
	Text string
}

// SessionOptions configures a Session.
type SessionOptions struct {
	// SystemPrompt opens the conversation as a user turn.
	SystemPrompt string
	// Acknowledgement is the model turn answering the system prompt.
	Acknowledgement string
	// HistoryLimit caps the number of batch turn pairs kept (0 = unlimited).
	HistoryLimit int
	// BreakerFailures trips the breaker after this many consecutive hard
	// failures (0 disables it).
	BreakerFailures int
	// Pace spaces batch submissions at least this far apart (0 = no pacing).
	Pace   time.Duration
	Logger *slog.Logger
}

func (o SessionOptions) effectiveAcknowledgement() string {
	if o.Acknowledgement == "" {
		return DefaultAcknowledgement
	}
	return o.Acknowledgement
}

func (o SessionOptions) effectiveLogger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Session is the conversation with the translation service for one content
// unit. Batches are submitted sequentially so the history stays causally
// ordered; the history grows by one user/model pair per successful batch.
type Session struct {
	ID   string
	Name string

	mu       sync.Mutex
	preamble []Turn
	history  []Turn
	limit    int
	breaker  *gobreaker.CircuitBreaker
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewSession starts a conversation named after its content unit.
func NewSession(name string, opts SessionOptions) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		Name:   name,
		limit:  opts.HistoryLimit,
		logger: opts.effectiveLogger(),
	}
	if opts.SystemPrompt != "" {
		s.preamble = []Turn{
			{Role: RoleUser, Text: opts.SystemPrompt},
			{Role: RoleModel, Text: opts.effectiveAcknowledgement()},
		}
	}

	s.limiter = rate.NewLimiter(rate.Inf, 1)
	if opts.Pace > 0 {
		s.limiter = rate.NewLimiter(rate.Every(opts.Pace), 1)
	}

	if opts.BreakerFailures > 0 {
		threshold := uint32(opts.BreakerFailures)
		s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				s.logger.Warn("translation breaker state changed", "unit", name, "from", from.String(), "to", to.String())
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNoResult) || errors.Is(err, context.Canceled)
			},
		})
	}
	return s
}

// Turns returns the conversation so far: preamble then history.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, 0, len(s.preamble)+len(s.history))
	out = append(out, s.preamble...)
	return append(out, s.history...)
}

// Record appends a successful batch exchange, dropping the oldest pairs
// beyond the history limit.
func (s *Session) Record(user, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history,
		Turn{Role: RoleUser, Text: user},
		Turn{Role: RoleModel, Text: model},
	)
	if s.limit > 0 && len(s.history) > 2*s.limit {
		s.history = append([]Turn(nil), s.history[len(s.history)-2*s.limit:]...)
	}
}

// Exchanges returns the number of recorded batch exchanges.
func (s *Session) Exchanges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) / 2
}

// Wait blocks until the pacing limiter admits the next batch.
func (s *Session) Wait(ctx context.Context) error {
	return s.limiter.Wait(ctx)
}

// Execute runs fn through the session's breaker. An open breaker fails
// immediately with ErrHardFailure.
func (s *Session) Execute(fn func() ([]Item, error)) ([]Item, error) {
	if s.breaker == nil {
		return fn()
	}
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s: %w", ErrHardFailure, s.Name, err)
	}
	items, _ := res.([]Item)
	return items, err
}
