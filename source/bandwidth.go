package source

import (
	"sync"
	"time"
)

// BandwidthMeter estimates the transfer rate seen while fetching media.
// It is written by the player or data source and read by source builders, so it locks.
type BandwidthMeter struct {
	mu      sync.Mutex
	bytes   int64
	elapsed time.Duration
	samples int
}

// NewBandwidthMeter returns an empty meter.
func NewBandwidthMeter() *BandwidthMeter {
	return &BandwidthMeter{}
}

// Sample records that n bytes were transferred over elapsed.
func (m *BandwidthMeter) Sample(n int64, elapsed time.Duration) {
	if n <= 0 || elapsed <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bytes += n
	m.elapsed += elapsed
	m.samples++
}

// Estimate returns the average rate in bits per second, or false before any sample.
func (m *BandwidthMeter) Estimate() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.samples == 0 {
		return 0, false
	}
	return int64(float64(m.bytes*8) / m.elapsed.Seconds()), true
}
