package mocknet

// The simulation model: three draw functions over the shared seeded source.
// Every draw happens under the facade mutex so that concurrent calls cannot
// interleave a seeded sequence, and each function reads the configuration
// values it needs at the moment of the draw.

// CalculateIsFailure decides whether the next call fails at the simulated
// transport level. It draws one uniform sample in [0, 100) and compares it
// against the configured error percentage; the sample is consumed even at 0%.
func (m *MockClient) CalculateIsFailure() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.random.Int31n(100) < int32(m.errorPct)
}

// CalculateDelayForCall returns the delay in milliseconds for a successful
// call: the nominal delay scaled by a uniform factor in [1-v, 1+v] where v is
// the variance fraction, truncated to an integer. At zero variance it returns
// exactly the nominal delay; a uniform sample is still consumed to keep
// seeded sequences aligned.
func (m *MockClient) CalculateDelayForCall() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.random.Float32()
	if m.variancePct == 0 {
		return m.delayMillis
	}
	v := float32(m.variancePct) / 100
	lower := 1 - v
	upper := 1 + v
	pct := lower + f*(upper-lower)
	return int64(float32(m.delayMillis) * pct)
}

// CalculateDelayForError returns the delay in milliseconds for a failed call,
// drawn uniformly from [0, 3*delay): the network gave up somewhere between
// immediately and three times the nominal delay.
func (m *MockClient) CalculateDelayForError() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delayMillis == 0 {
		return 0
	}
	return m.random.Uint64n(3 * m.delayMillis)
}
