// Package mocknet wraps an in-process implementation of a service definition
// so that every call behaves as if it crossed a network: configurable latency
// with jitter, a probabilistic failure rate, and delivery through the same
// executors a real transport would use. It supports synchronous, callback and
// lazy-single invocation styles uniformly and is intended as a test-support
// layer; it performs no real I/O.
package mocknet

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/guoGavin/retrofit/internal/lcg"
	"github.com/guoGavin/retrofit/pkg/client"
)

const (
	defaultDelayMillis = 2000
	defaultVariancePct = 40
	defaultErrorPct    = 0

	// maxDelayMillis keeps 3*delay representable for the failure-delay draw.
	maxDelayMillis = math.MaxInt64 / 3

	styleCacheSize = 64
)

// errMockNetwork is the cause carried by every simulated transport failure.
var errMockNetwork = errors.New("Mock network error!")

// MockClient is the simulation facade. It borrows the delivery executor,
// error handler and logger from an assembled client configuration and
// substitutes simulated timing and optional simulated failure for the real
// transport.
//
// Simulation parameters may be changed while calls are in flight; each call
// reads the values it needs at the moment of each decision, so mid-flight
// changes apply live. The shared random source is guarded by the same mutex
// as the parameters, keeping seeded sequences reproducible under concurrency.
type MockClient struct {
	cfg       *client.Config
	transport client.Executor
	delivery  client.Executor
	handler   client.ErrorHandler
	log       *logrus.Logger

	mu          sync.Mutex
	random      *lcg.Source
	delayMillis int64
	variancePct int
	errorPct    int

	styles *lru.Cache[reflect.Type, []methodStyle]
}

// From creates a MockClient that reuses cfg's callback executor, error
// handler and logger, and runs simulated transport work on the given
// executor. A nil transport falls back to goroutine-per-task execution.
func From(cfg *client.Config, transport client.Executor) *MockClient {
	if transport == nil {
		transport = client.GoExecutor{}
	}
	styles, _ := lru.New[reflect.Type, []methodStyle](styleCacheSize)
	return &MockClient{
		cfg:         cfg,
		transport:   transport,
		delivery:    cfg.CallbackExecutor(),
		handler:     cfg.ErrorHandler(),
		log:         cfg.Logger(),
		random:      lcg.New(time.Now().UnixNano()),
		delayMillis: defaultDelayMillis,
		variancePct: defaultVariancePct,
		errorPct:    defaultErrorPct,
		styles:      styles,
	}
}

// Reseed resets the shared random source, making subsequent draws
// reproducible.
func (m *MockClient) Reseed(seed int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.random.Seed(seed)
}

// SetDelay sets the nominal simulated delay in milliseconds.
func (m *MockClient) SetDelay(ms int64) error {
	if ms <= 0 {
		return errors.New("Delay must be positive value.")
	}
	if ms > maxDelayMillis {
		return fmt.Errorf("Delay value too large. Max: %d", int64(maxDelayMillis))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delayMillis = ms
	return nil
}

// SetVariancePercentage sets the jitter applied to the nominal delay, as a
// whole percentage in [0, 100].
func (m *MockClient) SetVariancePercentage(pct int) error {
	if pct < 0 || pct > 100 {
		return errors.New("Variance percentage must be between 0 and 100.")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variancePct = pct
	return nil
}

// SetErrorPercentage sets the probability of a simulated network failure, as
// a whole percentage in [0, 100].
func (m *MockClient) SetErrorPercentage(pct int) error {
	if pct < 0 || pct > 100 {
		return errors.New("Error percentage must be between 0 and 100.")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPct = pct
	return nil
}

// Delay returns the nominal simulated delay in milliseconds.
func (m *MockClient) Delay() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delayMillis
}

// VariancePercentage returns the configured jitter percentage.
func (m *MockClient) VariancePercentage() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.variancePct
}

// ErrorPercentage returns the configured failure percentage.
func (m *MockClient) ErrorPercentage() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorPct
}

// sleep pauses the calling goroutine for the simulated delay.
func sleep(ms int64) {
	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}
