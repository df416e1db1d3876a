package network

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/loading/metrics"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/notify"
)

// Quality classifies the current link.
type Quality int

const (
	QualityGood Quality = iota
	QualityModerate
	QualityPoor
)

func (q Quality) String() string {
	switch q {
	case QualityGood:
		return "good"
	case QualityModerate:
		return "moderate"
	case QualityPoor:
		return "poor"
	default:
		return "unknown"
	}
}

// Latency thresholds for classification.
const (
	goodThreshold     = 1000 * time.Millisecond
	moderateThreshold = 3000 * time.Millisecond
)

// classifyLatency maps a probe round-trip to a quality bucket.
func classifyLatency(d time.Duration) Quality {
	switch {
	case d < goodThreshold:
		return QualityGood
	case d < moderateThreshold:
		return QualityModerate
	default:
		return QualityPoor
	}
}

// Prober fetches the lightweight probe resource. The binary asset
// transport satisfies this.
type Prober interface {
	Fetch(ctx context.Context, resourceID string) ([]byte, error)
}

// Config holds probe settings.
type Config struct {
	// ProbeTarget is a small, likely-cached resource identifier.
	ProbeTarget string `yaml:"probe_target"`
	// ProbeInterval is how often the link is sampled.
	ProbeInterval time.Duration `yaml:"probe_interval"`
	// ProbeTimeout bounds one probe; overrunning it classifies Poor.
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

// Monitor observes connectivity transitions and samples latency to
// classify link quality. It only exposes read-only policy hints; it
// never mutates loader state.
type Monitor struct {
	cfg      Config
	prober   Prober
	notifier notify.Sink
	log      *slog.Logger

	mu           sync.RWMutex
	online       bool
	quality      Quality
	poorNotified bool
}

// NewMonitor creates a monitor that starts online with good quality.
func NewMonitor(cfg Config, prober Prober, notifier notify.Sink, log *slog.Logger) *Monitor {
	if cfg.ProbeInterval <= 0 {
		cfg.ProbeInterval = 30 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}
	metrics.NetworkOnline.Set(1)
	metrics.NetworkQuality.Set(float64(QualityGood))
	return &Monitor{
		cfg:      cfg,
		prober:   prober,
		notifier: notifier,
		log:      log,
		online:   true,
		quality:  QualityGood,
	}
}

// Start runs the periodic probe loop until the context is canceled.
// Callers run it on its own goroutine.
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.ProbeInterval)
	defer ticker.Stop()

	m.RunProbe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.RunProbe(ctx)
		}
	}
}

// RunProbe samples the link once. A probe that fails, or does not
// complete within the probe timeout, classifies Poor. Probing is skipped
// while offline; connectivity regain arrives via SetOnline.
func (m *Monitor) RunProbe(ctx context.Context) {
	if !m.Online() {
		return
	}

	pctx, cancel := context.WithTimeout(ctx, m.cfg.ProbeTimeout)
	defer cancel()

	start := time.Now()
	_, err := m.prober.Fetch(pctx, m.cfg.ProbeTarget)
	elapsed := time.Since(start)
	metrics.ProbeLatency.Observe(elapsed.Seconds())

	if err != nil {
		m.log.Debug("Quality probe failed", "target", m.cfg.ProbeTarget, "error", err)
		m.setQuality(QualityPoor)
		return
	}
	m.setQuality(classifyLatency(elapsed))
}

// SetOnline flips connectivity state from an external signal and emits
// the matching user-facing notification on a transition.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	m.mu.Unlock()

	if online {
		metrics.NetworkOnline.Set(1)
		m.log.Info("Connectivity regained")
		m.notifier.Notify("Connection restored.", notify.SeverityInfo,
			notify.Options{Duration: 4 * time.Second})
		return
	}
	metrics.NetworkOnline.Set(0)
	m.log.Warn("Connectivity lost")
	m.notifier.Notify("You are offline — continuing with cached assets.", notify.SeverityWarning,
		notify.Options{Persistent: true})
}

func (m *Monitor) setQuality(q Quality) {
	m.mu.Lock()
	prev := m.quality
	m.quality = q
	advise := q == QualityPoor && !m.poorNotified
	if advise {
		m.poorNotified = true
	}
	if q != QualityPoor {
		m.poorNotified = false
	}
	m.mu.Unlock()

	metrics.NetworkQuality.Set(float64(q))
	if prev != q {
		m.log.Info("Network quality changed", "from", prev, "to", q)
	}
	// The advisory fires once per degradation, not on every Poor sample.
	if advise {
		m.notifier.Notify("Slow connection detected — reducing asset quality.", notify.SeverityWarning,
			notify.Options{Duration: 6 * time.Second})
	}
}

// Online reports current connectivity.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Quality reports the current link classification.
func (m *Monitor) Quality() Quality {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quality
}

// ShouldUseAggressiveCaching tells the loader to prefer anything cached
// over fresh network attempts.
func (m *Monitor) ShouldUseAggressiveCaching() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.online || m.quality == QualityPoor
}

// ShouldReduceAssetQuality tells the loader to request degraded variants.
func (m *Monitor) ShouldReduceAssetQuality() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quality == QualityPoor
}
