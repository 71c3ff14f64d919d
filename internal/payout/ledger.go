// Package payout is the rate × article-count calculator and its saved history.
package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/model"
	"newsdesk/internal/store"
)

const (
	KeyRate     = "payoutRate"
	KeyArticles = "numberOfArticles"
	KeyHistory  = "payoutHistory"

	DateLayout = "1/2/2006"
)

var (
	ErrInvalidRate     = errors.New("rate must be a finite, non-negative number")
	ErrInvalidArticles = errors.New("articles must be a non-negative whole number")
)

type Ledger struct {
	store store.KeyValueStore
	newID func() string
	now   func() time.Time

	durable bool

	mu         sync.Mutex
	state      model.PayoutState
	history    []model.PayoutRecord
	persistent bool
}

type Option func(*Ledger)

func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewInvoiceID returns "INV-" followed by a random UUID.
func NewInvoiceID() string {
	return "INV-" + uuid.NewString()
}

// NewLedger builds a ledger over s. A nil store yields a session-only ledger.
func NewLedger(s store.KeyValueStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:   s,
		newID:   NewInvoiceID,
		now:     time.Now,
		history: []model.PayoutRecord{},
		durable: store.Durable(s),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load checks the store and restores inputs and history from it. An
// unreachable or in-memory store leaves the ledger session-only; see
// Persistent.
func (l *Ledger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !store.Reachable(ctx, l.store) {
		l.persistent = false
		slog.Warn("payout storage unavailable, history will not survive restart")
		return nil
	}
	l.persistent = l.durable
	if !l.durable {
		slog.Warn("payout storage is in memory, history will not survive restart")
	}

	history, err := l.loadHistory(ctx)
	if err != nil {
		return l.degrade("loading payout history", err)
	}
	l.history = history

	rateRaw, rateErr := l.store.Get(ctx, KeyRate)
	articlesRaw, articlesErr := l.store.Get(ctx, KeyArticles)
	if err := errors.Join(readError(rateErr), readError(articlesErr)); err != nil {
		return l.degrade("loading payout inputs", err)
	}
	if rateErr != nil || articlesErr != nil {
		return nil
	}

	rate, articles, err := ParseInputs(rateRaw, articlesRaw)
	if err != nil {
		slog.Warn("ignoring stored payout inputs", "rate", rateRaw, "articles", articlesRaw, "error", err)
		return nil
	}
	l.state = model.PayoutState{Rate: rate, Articles: articles, Total: rate * float64(articles)}
	return nil
}

// readError drops ErrNotFound, which only means nothing was saved yet.
func readError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func (l *Ledger) loadHistory(ctx context.Context) ([]model.PayoutRecord, error) {
	raw, err := l.store.Get(ctx, KeyHistory)
	if errors.Is(err, store.ErrNotFound) {
		return []model.PayoutRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	var history []model.PayoutRecord
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		slog.Warn("discarding unreadable payout history", "error", err)
		return []model.PayoutRecord{}, nil
	}
	if history == nil {
		history = []model.PayoutRecord{}
	}
	return history, nil
}

// Persistent reports whether saved state will survive a restart: the store
// is durable, was reachable at Load, and the most recent write succeeded.
func (l *Ledger) Persistent() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.persistent
}

func (l *Ledger) State() model.PayoutState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// History returns saved records, newest first.
func (l *Ledger) History() []model.PayoutRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.PayoutRecord, len(l.history))
	copy(out, l.history)
	return out
}

// SetInputs records new inputs without recomputing the total.
func (l *Ledger) SetInputs(ctx context.Context, rate float64, articles int) error {
	if err := ValidateInputs(rate, articles); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.Rate = rate
	l.state.Articles = articles
	return l.persistInputs(ctx)
}

// Calculate sets the inputs and total = rate × articles.
func (l *Ledger) Calculate(ctx context.Context, rate float64, articles int) (float64, error) {
	if err := ValidateInputs(rate, articles); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = model.PayoutState{Rate: rate, Articles: articles, Total: rate * float64(articles)}
	return l.state.Total, l.persistInputs(ctx)
}

// Save prepends a record for the current inputs, persists the history and
// resets the inputs to zero. The record is kept in memory even when the
// store write fails; the returned error then wraps store.ErrUnavailable.
func (l *Ledger) Save(ctx context.Context) (model.PayoutRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := l.state.Rate * float64(l.state.Articles)
	record := model.PayoutRecord{
		ID:          l.newID(),
		Rate:        l.state.Rate,
		Articles:    l.state.Articles,
		TotalPayout: FormatAmount(total),
		Date:        l.now().Format(DateLayout),
	}

	history := make([]model.PayoutRecord, 0, len(l.history)+1)
	history = append(history, record)
	l.history = append(history, l.history...)
	l.state = model.PayoutState{}

	historyErr := l.persistHistory(ctx)
	inputsErr := l.persistInputs(ctx)
	return record, errors.Join(historyErr, inputsErr)
}

func (l *Ledger) persistHistory(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	data, err := json.Marshal(l.history)
	if err != nil {
		return fmt.Errorf("encoding payout history: %w", err)
	}
	if err := l.store.Set(ctx, KeyHistory, string(data)); err != nil {
		return l.degrade("saving payout history", err)
	}
	l.persistent = l.durable
	return nil
}

func (l *Ledger) persistInputs(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	err := errors.Join(
		l.store.Set(ctx, KeyRate, strconv.FormatFloat(l.state.Rate, 'f', -1, 64)),
		l.store.Set(ctx, KeyArticles, strconv.Itoa(l.state.Articles)),
	)
	if err != nil {
		return l.degrade("saving payout inputs", err)
	}
	l.persistent = l.durable
	return nil
}

func (l *Ledger) degrade(msg string, err error) error {
	l.persistent = false
	slog.Warn(msg, "error", err)
	return fmt.Errorf("%w: %s: %w", store.ErrUnavailable, msg, err)
}

func ValidateInputs(rate float64, articles int) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return ErrInvalidRate
	}
	if articles < 0 {
		return ErrInvalidArticles
	}
	return nil
}

// ParseInputs parses and validates text inputs from a form, flag or store.
func ParseInputs(rateRaw, articlesRaw string) (float64, int, error) {
	rate, err := strconv.ParseFloat(rateRaw, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRate, rateRaw)
	}
	articles, err := strconv.Atoi(articlesRaw)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidArticles, articlesRaw)
	}
	if err := ValidateInputs(rate, articles); err != nil {
		return 0, 0, err
	}
	return rate, articles, nil
}

// FormatAmount renders a payout total with two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatRate renders a rate the way it was entered (no trailing zeros).
func FormatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
