package mocknet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guoGavin/retrofit/pkg/client"
)

// newSimMock builds a facade with synchronous executors and the fixed test
// seed, so every draw sequence below is reproducible.
func newSimMock(t *testing.T) *MockClient {
	t.Helper()
	cfg, err := client.NewBuilder().
		BaseURL("http://example.com").
		CallbackExecutor(client.SyncExecutor{}).
		Build()
	require.NoError(t, err)
	m := From(cfg, client.SyncExecutor{})
	m.Reseed(2847)
	return m
}

func TestDelayRestrictsRange(t *testing.T) {
	m := newSimMock(t)

	err := m.SetDelay(-1)
	require.Error(t, err)
	assert.EqualError(t, err, "Delay must be positive value.")

	err = m.SetDelay(0)
	require.Error(t, err)
	assert.EqualError(t, err, "Delay must be positive value.")

	err = m.SetDelay(math.MaxInt64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Delay value too large.")
}

func TestVarianceRestrictsRange(t *testing.T) {
	m := newSimMock(t)

	err := m.SetVariancePercentage(-13)
	require.Error(t, err)
	assert.EqualError(t, err, "Variance percentage must be between 0 and 100.")

	err = m.SetVariancePercentage(174)
	require.Error(t, err)
	assert.EqualError(t, err, "Variance percentage must be between 0 and 100.")
}

func TestErrorRestrictsRange(t *testing.T) {
	m := newSimMock(t)

	err := m.SetErrorPercentage(-13)
	require.Error(t, err)
	assert.EqualError(t, err, "Error percentage must be between 0 and 100.")

	err = m.SetErrorPercentage(174)
	require.Error(t, err)
	assert.EqualError(t, err, "Error percentage must be between 0 and 100.")
}

func TestErrorPercentageIsAccurate(t *testing.T) {
	m := newSimMock(t)

	require.NoError(t, m.SetErrorPercentage(0))
	for i := 0; i < 10000; i++ {
		if m.CalculateIsFailure() {
			t.Fatalf("draw %d failed at 0%% error rate", i)
		}
	}

	require.NoError(t, m.SetErrorPercentage(3))
	failures := 0
	for i := 0; i < 100000; i++ {
		if m.CalculateIsFailure() {
			failures++
		}
	}
	// ~3% of 100k, exact under the fixed seed.
	assert.Equal(t, 2964, failures)
}

func TestDelayVarianceIsAccurate(t *testing.T) {
	m := newSimMock(t)
	require.NoError(t, m.SetDelay(2000))

	require.NoError(t, m.SetVariancePercentage(0))
	for i := 0; i < 100000; i++ {
		if d := m.CalculateDelayForCall(); d != 2000 {
			t.Fatalf("draw %d at 0%% variance: got %d, want 2000", i, d)
		}
	}

	require.NoError(t, m.SetVariancePercentage(40))
	lowerBound := int64(math.MaxInt64)
	upperBound := int64(math.MinInt64)
	for i := 0; i < 100000; i++ {
		d := m.CalculateDelayForCall()
		if d > upperBound {
			upperBound = d
		}
		if d < lowerBound {
			lowerBound = d
		}
	}
	// ~40% above and below 2000, exact under the fixed seed.
	assert.Equal(t, int64(2799), upperBound)
	assert.Equal(t, int64(1200), lowerBound)
}

func TestErrorDelayIsAccurate(t *testing.T) {
	m := newSimMock(t)
	require.NoError(t, m.SetDelay(2000))

	lowerBound := int64(math.MaxInt64)
	upperBound := int64(math.MinInt64)
	for i := 0; i < 100000; i++ {
		d := m.CalculateDelayForError()
		if d > upperBound {
			upperBound = d
		}
		if d < lowerBound {
			lowerBound = d
		}
	}
	// Uniform over [0, 3*2000).
	assert.Equal(t, int64(5999), upperBound)
	assert.Equal(t, int64(0), lowerBound)
}

func TestDefaultsAreNonFailing(t *testing.T) {
	m := newSimMock(t)

	assert.Equal(t, int64(defaultDelayMillis), m.Delay())
	assert.Equal(t, defaultVariancePct, m.VariancePercentage())
	assert.Equal(t, 0, m.ErrorPercentage())
	for i := 0; i < 1000; i++ {
		if m.CalculateIsFailure() {
			t.Fatal("default configuration must never fail")
		}
	}
}
