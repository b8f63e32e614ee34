package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/currency/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"github.com/robfig/cron/v3"
)

const FallbackWarning = "Live exchange rates unavailable, showing fallback rates"

var ErrAlreadyStarted = errors.New("rate poller already started")

// ProvidersExhaustedError collects every provider failure of one refresh.
type ProvidersExhaustedError struct {
	Errors []error
}

func (e *ProvidersExhaustedError) Error() string {
	if len(e.Errors) == 0 {
		return "no currency providers configured"
	}
	return "all currency providers failed: " + errors.Join(e.Errors...).Error()
}

func (e *ProvidersExhaustedError) Unwrap() []error {
	return e.Errors
}

type RateService interface {
	// Refresh never fails: on total provider failure the fallback table is installed.
	Refresh(ctx context.Context) domain.RatesSnapshot
	Current() domain.RatesSnapshot
	Convert(amount float64, from, to string) (*domain.ConversionResult, error)
	Start(ctx context.Context) error
	Stop()
}

type rateServiceImpl struct {
	base      string
	providers []RateProvider
	interval  time.Duration
	now       func() time.Time
	// spec menggantikan "@every <interval>" bila diisi
	spec string

	mu         sync.Mutex
	snapshot   domain.RatesSnapshot
	startedSeq uint64
	appliedSeq uint64
	stopped    bool
	scheduler  *cron.Cron
	cancel     context.CancelFunc
}

func NewRateService(providers []RateProvider, base string, interval time.Duration) RateService {
	if base == "" {
		base = domain.BaseCurrency
	}
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	s := &rateServiceImpl{
		base:      strings.ToUpper(base),
		providers: providers,
		interval:  interval,
		now:       time.Now,
	}
	// Sebelum fetch pertama, tabel fallback dipakai supaya rates tidak pernah kosong.
	s.snapshot = domain.RatesSnapshot{
		State:       domain.StateIdle,
		Table:       domain.FallbackRateTable(s.now()),
		LastUpdated: s.now(),
	}
	return s
}

func (s *rateServiceImpl) Current() domain.RatesSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *rateServiceImpl) Refresh(ctx context.Context) domain.RatesSnapshot {
	s.mu.Lock()
	if s.stopped {
		snap := s.snapshot
		s.mu.Unlock()
		return snap
	}
	s.startedSeq++
	seq := s.startedSeq
	prevState := s.snapshot.State
	fetching := s.snapshot
	fetching.State = domain.StateFetching
	s.snapshot = fetching
	s.mu.Unlock()

	rates, source, err := s.fetchFromProviders(ctx)
	now := s.now()

	var next domain.RatesSnapshot
	if err != nil {
		logger.Error("Currency rates: falling back to static rates", err, nil)
		next = domain.RatesSnapshot{
			State:       domain.StateFailure,
			Table:       domain.FallbackRateTable(now),
			Warning:     FallbackWarning,
			LastUpdated: now,
		}
	} else {
		next = domain.RatesSnapshot{
			State:       domain.StateSuccess,
			Table:       domain.BuildRateTable(rates, source, now),
			LastUpdated: now,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		// hasil yang datang setelah Stop dibuang; state Fetching tidak boleh tertinggal
		if s.snapshot.State == domain.StateFetching {
			s.snapshot.State = prevState
		}
		return s.snapshot
	}
	// Fetch yang mulai lebih dulu tapi selesai belakangan tidak boleh menimpa hasil yang lebih baru.
	if seq < s.appliedSeq {
		logger.Warn("Currency rates: discarding stale response (fetch #%d, current #%d)", seq, s.appliedSeq)
		return s.snapshot
	}
	s.appliedSeq = seq
	s.snapshot = next
	return next
}

// fetchFromProviders tries each provider in order and stops at the first one that
// returns a usable payload.
func (s *rateServiceImpl) fetchFromProviders(ctx context.Context) (map[string]float64, string, error) {
	var errs []error
	for _, p := range s.providers {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		rates, err := p.FetchRates(ctx, s.base)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		logger.Info("Currency rates: fetched %d rates from %s", len(rates), p.Name())
		return rates, p.Name(), nil
	}
	return nil, "", &ProvidersExhaustedError{Errors: errs}
}

func (s *rateServiceImpl) Convert(amount float64, from, to string) (*domain.ConversionResult, error) {
	snap := s.Current()
	converted, err := snap.Table.Convert(amount, from, to)
	if err != nil {
		return nil, err
	}
	return &domain.ConversionResult{
		Amount:    amount,
		From:      strings.ToUpper(from),
		To:        strings.ToUpper(to),
		Converted: converted,
		Source:    snap.Table.Source,
	}, nil
}

func (s *rateServiceImpl) scheduleSpec() string {
	if s.spec != "" {
		return s.spec
	}
	return fmt.Sprintf("@every %s", s.interval)
}

// Start fetches once, then polls on the configured interval until Stop or until
// ctx is cancelled.
func (s *rateServiceImpl) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.scheduler != nil {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.scheduler = cron.New()
	s.stopped = false
	s.mu.Unlock()

	spec := s.scheduleSpec()
	_, err := s.scheduler.AddFunc(spec, func() {
		if jobCtx.Err() != nil {
			return
		}
		logger.Info("Scheduler: refreshing currency rates...")
		s.Refresh(jobCtx)
	})
	if err != nil {
		cancel()
		s.mu.Lock()
		s.scheduler = nil
		s.cancel = nil
		s.mu.Unlock()
		return fmt.Errorf("failed to schedule rate polling: %w", err)
	}

	s.Refresh(jobCtx)
	s.scheduler.Start()
	logger.Info("Currency rate poller started with spec '%s' for base %s", spec, s.base)
	return nil
}

// Stop cancels in-flight polling and waits for a running job to return. Responses
// that arrive afterwards are dropped.
func (s *rateServiceImpl) Stop() {
	s.mu.Lock()
	s.stopped = true
	cancel := s.cancel
	sched := s.scheduler
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if sched != nil {
		<-sched.Stop().Done()
	}
	logger.Info("Currency rate poller stopped")
}
