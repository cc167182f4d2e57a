package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/playcheck-cli/playcheck/network"
)

// probeBytes is how much of a remote media file is fetched to check reachability.
const probeBytes = 64 * 1024

// DataSourceFactory creates media targets carrying the session user agent and probes them.
type DataSourceFactory struct {
	userAgent string
	client    *http.Client
	clock     clockwork.Clock
}

// NewDataSourceFactory returns a factory whose requests identify as userAgent.
func NewDataSourceFactory(userAgent string, clock clockwork.Clock) *DataSourceFactory {
	return &DataSourceFactory{
		userAgent: userAgent,
		client:    network.NewClient(userAgent),
		clock:     clock,
	}
}

// UserAgent returns the user agent sent by this factory.
func (f *DataSourceFactory) UserAgent() string {
	return f.userAgent
}

// Media validates target and returns it with the factory's request headers.
func (f *DataSourceFactory) Media(target, title string) (Media, error) {
	safe, err := normalizeTarget(target)
	if err != nil {
		return Media{}, fmt.Errorf("invalid media target: %w", err)
	}

	m := Media{URL: safe, Title: title}
	if m.IsRemote() {
		m.Headers = map[string]string{"User-Agent": f.userAgent}
	}
	return m, nil
}

// ProbeResult describes what a probe learned about the media.
type ProbeResult struct {
	Size        int64
	ContentType string
}

// Probe checks that the media is reachable. Remote media is partially fetched and the
// transfer is recorded in meter; local media must exist.
func (f *DataSourceFactory) Probe(ctx context.Context, m Media, meter *BandwidthMeter) (ProbeResult, error) {
	if !m.IsRemote() {
		info, err := filesystem.API().Stat(m.URL)
		if err != nil {
			return ProbeResult{}, fmt.Errorf("probe %s: %w", m.URL, err)
		}
		if info.IsDir() {
			return ProbeResult{}, fmt.Errorf("probe %s: is a directory", m.URL)
		}
		return ProbeResult{Size: info.Size()}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.URL, nil)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("probe request: %w", err)
	}
	for k, v := range m.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", probeBytes-1))

	started := f.clock.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("probe %s: %w", m.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return ProbeResult{}, fmt.Errorf("probe %s: unexpected status %d", m.URL, resp.StatusCode)
	}

	n, err := io.Copy(io.Discard, io.LimitReader(resp.Body, probeBytes))
	if err != nil {
		return ProbeResult{}, fmt.Errorf("probe %s: read body: %w", m.URL, err)
	}
	if meter != nil {
		meter.Sample(n, f.clock.Since(started))
	}

	return ProbeResult{Size: resp.ContentLength, ContentType: resp.Header.Get("Content-Type")}, nil
}
