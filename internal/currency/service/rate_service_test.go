package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/currency/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/currency/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestRateService(providers ...RateProvider) *rateServiceImpl {
	svc := NewRateService(providers, "INR", time.Hour).(*rateServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestRateService_InitialSnapshotIsNeverEmpty(t *testing.T) {
	svc := newTestRateService()

	snap := svc.Current()

	assert.Equal(t, domain.StateIdle, snap.State)
	assert.Len(t, snap.Table.Rates, len(domain.SupportedCurrencies))
}

func TestRateService_Refresh(t *testing.T) {
	ctx := context.TODO()

	t.Run("First provider wins", func(t *testing.T) {
		first := &mocks.MockRateProvider{ProviderName: "first"}
		second := &mocks.MockRateProvider{ProviderName: "second"}
		first.On("FetchRates", ctx, "INR").Return(map[string]float64{"USD": 0.0125}, nil).Once()
		svc := newTestRateService(first, second)

		snap := svc.Refresh(ctx)

		assert.Equal(t, domain.StateSuccess, snap.State)
		assert.Equal(t, "first", snap.Table.Source)
		assert.Empty(t, snap.Warning)
		usd, _ := snap.Table.Get("USD")
		assert.Equal(t, 0.0125, usd.RealTimeRate)
		eur, _ := snap.Table.Get("EUR")
		assert.Equal(t, 0.011, eur.RealTimeRate, "missing codes take the constant")
		first.AssertExpectations(t)
		second.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything)
	})

	t.Run("Falls through to next provider", func(t *testing.T) {
		first := &mocks.MockRateProvider{ProviderName: "first"}
		second := &mocks.MockRateProvider{ProviderName: "second"}
		first.On("FetchRates", ctx, "INR").Return(nil, ErrUnparseablePayload).Once()
		second.On("FetchRates", ctx, "INR").Return(map[string]float64{"GBP": 0.0094}, nil).Once()
		svc := newTestRateService(first, second)

		snap := svc.Refresh(ctx)

		assert.Equal(t, domain.StateSuccess, snap.State)
		assert.Equal(t, "second", snap.Table.Source)
		first.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("All providers fail gives exact fallback table and a warning", func(t *testing.T) {
		first := &mocks.MockRateProvider{ProviderName: "first"}
		second := &mocks.MockRateProvider{ProviderName: "second"}
		first.On("FetchRates", ctx, "INR").Return(nil, errors.New("dial tcp: refused")).Once()
		second.On("FetchRates", ctx, "INR").Return(nil, ErrProviderStatus).Once()
		svc := newTestRateService(first, second)

		snap := svc.Refresh(ctx)

		assert.Equal(t, domain.StateFailure, snap.State)
		assert.Equal(t, FallbackWarning, snap.Warning)
		assert.Equal(t, domain.FallbackRateTable(fixedNow), snap.Table)
		assert.Equal(t, snap, svc.Current())
	})

	t.Run("Recovers after a failure", func(t *testing.T) {
		p := &mocks.MockRateProvider{}
		p.On("FetchRates", ctx, "INR").Return(nil, errors.New("down")).Once()
		p.On("FetchRates", ctx, "INR").Return(map[string]float64{"USD": 0.013}, nil).Once()
		svc := newTestRateService(p)

		assert.Equal(t, domain.StateFailure, svc.Refresh(ctx).State)
		snap := svc.Refresh(ctx)
		assert.Equal(t, domain.StateSuccess, snap.State)
		assert.Empty(t, snap.Warning)
	})
}

func TestProvidersExhaustedError(t *testing.T) {
	inner := errors.New("timeout")
	err := &ProvidersExhaustedError{Errors: []error{inner}}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "timeout")
	assert.Equal(t, "no currency providers configured", (&ProvidersExhaustedError{}).Error())
}

func TestRateService_StaleResponseDoesNotOverwriteNewer(t *testing.T) {
	ctx := context.TODO()
	p := &mocks.MockRateProvider{}
	entered := make(chan struct{})
	release := make(chan struct{})

	p.On("FetchRates", ctx, "INR").Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return(map[string]float64{"USD": 0.010}, nil).Once()
	p.On("FetchRates", ctx, "INR").Return(map[string]float64{"USD": 0.020}, nil).Once()
	svc := newTestRateService(p)

	var wg sync.WaitGroup
	wg.Add(1)
	var slow domain.RatesSnapshot
	go func() {
		defer wg.Done()
		slow = svc.Refresh(ctx)
	}()
	<-entered

	fast := svc.Refresh(ctx)
	close(release)
	wg.Wait()

	usd, _ := fast.Table.Get("USD")
	assert.Equal(t, 0.020, usd.RealTimeRate)

	current, _ := svc.Current().Table.Get("USD")
	assert.Equal(t, 0.020, current.RealTimeRate, "older fetch resolved last but must not win")
	slowUSD, _ := slow.Table.Get("USD")
	assert.Equal(t, 0.020, slowUSD.RealTimeRate)
	p.AssertExpectations(t)
}

func TestRateService_StartAndStop(t *testing.T) {
	p := &mocks.MockRateProvider{}
	p.On("FetchRates", mock.Anything, "INR").Return(map[string]float64{"USD": 0.0123}, nil)
	svc := newTestRateService(p)

	require.NoError(t, svc.Start(context.Background()))
	assert.ErrorIs(t, svc.Start(context.Background()), ErrAlreadyStarted)

	snap := svc.Current()
	assert.Equal(t, domain.StateSuccess, snap.State)

	svc.Stop()
	before := svc.Current()
	after := svc.Refresh(context.Background())
	assert.Equal(t, before, after, "no state changes after stop")
	p.AssertNumberOfCalls(t, "FetchRates", 1)
}

func TestRateService_Convert(t *testing.T) {
	svc := newTestRateService()

	res, err := svc.Convert(1000, "inr", "usd")
	require.NoError(t, err)
	assert.InDelta(t, 12.0, res.Converted, 1e-9)
	assert.Equal(t, "USD", res.To)
	assert.Equal(t, domain.SourceFallback, res.Source)

	_, err = svc.Convert(1, "INR", "XYZ")
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

// scriptedProvider answers the first call at once; later calls wait for release
// or for ctx to end, then still answer with lateRate.
type scriptedProvider struct {
	calls    atomic.Int32
	entered  chan struct{}
	release  chan struct{}
	lateRate float64
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	if p.calls.Add(1) == 1 {
		return map[string]float64{"USD": 0.0123}, nil
	}
	select {
	case p.entered <- struct{}{}:
	default:
	}
	select {
	case <-p.release:
	case <-ctx.Done():
	}
	return map[string]float64{"USD": p.lateRate}, nil
}

func TestRateService_StopDiscardsInFlightRefresh(t *testing.T) {
	p := &scriptedProvider{entered: make(chan struct{}, 1), release: make(chan struct{}), lateRate: 0.5}
	svc := newTestRateService(p)

	first := svc.Refresh(context.Background())
	require.Equal(t, domain.StateSuccess, first.State)

	done := make(chan domain.RatesSnapshot)
	go func() { done <- svc.Refresh(context.Background()) }()
	<-p.entered

	svc.Stop()
	close(p.release)
	late := <-done

	assert.Equal(t, first, late)
	assert.Equal(t, first, svc.Current(), "response resolved after Stop must not be applied")
}

func TestRateService_PollsOnScheduleUntilStopped(t *testing.T) {
	p := &scriptedProvider{entered: make(chan struct{}, 1), release: make(chan struct{}), lateRate: 0.5}
	svc := NewRateService([]RateProvider{p}, "INR", time.Second).(*rateServiceImpl)

	require.NoError(t, svc.Start(context.Background()))
	require.Equal(t, int32(1), p.calls.Load(), "one refresh on start")

	select {
	case <-p.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled refresh did not run")
	}
	assert.GreaterOrEqual(t, p.calls.Load(), int32(2))

	// The scheduled fetch is still blocked; Stop cancels it and its result is dropped.
	svc.Stop()

	snap := svc.Current()
	assert.Equal(t, domain.StateSuccess, snap.State)
	usd, _ := snap.Table.Get("USD")
	assert.Equal(t, 0.0123, usd.RealTimeRate)
}

func TestRateService_StartRecoversFromScheduleError(t *testing.T) {
	p := &mocks.MockRateProvider{}
	p.On("FetchRates", mock.Anything, "INR").Return(map[string]float64{"USD": 0.0123}, nil)
	svc := newTestRateService(p)
	svc.spec = "not a schedule"

	err := svc.Start(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyStarted)

	svc.spec = ""
	require.NoError(t, svc.Start(context.Background()), "a failed Start leaves nothing running")
	svc.Stop()
}
