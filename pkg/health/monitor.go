package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents health check status
type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusUnhealthy
	StatusDisabled
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusUnhealthy:
		return "unhealthy"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// CheckResult represents the result of a health check
type CheckResult struct {
	Name         string
	Status       Status
	Latency      time.Duration
	LastCheck    time.Time
	LastError    error
	CheckCount   int
	FailureCount int
}

// Checker interface for health checks
type Checker interface {
	Check(ctx context.Context) CheckResult
}

// Pinger is satisfied by *sql.DB and the redis client
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingChecker reports healthy when Ping succeeds
type PingChecker struct {
	Name    string
	Target  Pinger
	Enabled func() bool
}

func (c *PingChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      c.Name,
		LastCheck: start,
	}

	if c.Enabled != nil && !c.Enabled() {
		result.Status = StatusDisabled
		return result
	}

	if c.Target == nil {
		result.Status = StatusUnhealthy
		result.Latency = time.Since(start)
		return result
	}

	err := c.Target.Ping(ctx)
	result.Latency = time.Since(start)
	if err != nil {
		result.Status = StatusUnhealthy
		result.LastError = err
		return result
	}

	result.Status = StatusHealthy
	return result
}

// PingFunc adapts a plain function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type registration struct {
	checker  Checker
	critical bool
}

// Monitor runs a set of named checks, either on demand or periodically
type Monitor struct {
	mu       sync.RWMutex
	checkers map[string]registration
	results  map[string]*CheckResult
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	running  bool
}

// NewMonitor creates a new health monitor
func NewMonitor(interval time.Duration, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Monitor{
		checkers: make(map[string]registration),
		results:  make(map[string]*CheckResult),
		interval: interval,
		timeout:  5 * time.Second,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Register adds a named check. A failing critical check makes the whole
// report unhealthy; a failing non-critical one is only reported.
func (m *Monitor) Register(name string, checker Checker, critical bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkers[name] = registration{checker: checker, critical: critical}

	m.logger.Info("Registered health checker",
		zap.String("name", name),
		zap.Bool("critical", critical),
	)
}

// Start runs all checks every interval until Stop is called
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running || m.interval <= 0 {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	go m.runChecks()
}

// Stop stops the health monitor
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.running = false
	m.cancel()
}

func (m *Monitor) runChecks() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.CheckAll(m.ctx)

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.CheckAll(m.ctx)
		}
	}
}

// Report is the outcome of one CheckAll pass
type Report struct {
	Healthy bool
	Results map[string]CheckResult
}

// CheckAll runs every registered check now and records the results
func (m *Monitor) CheckAll(ctx context.Context) Report {
	m.mu.RLock()
	checkers := make(map[string]registration, len(m.checkers))
	for name, reg := range m.checkers {
		checkers[name] = reg
	}
	m.mu.RUnlock()

	report := Report{Healthy: true, Results: make(map[string]CheckResult, len(checkers))}

	for name, reg := range checkers {
		checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
		result := reg.checker.Check(checkCtx)
		cancel()
		result.Name = name

		m.mu.Lock()
		if existing, ok := m.results[name]; ok {
			result.CheckCount = existing.CheckCount + 1
			result.FailureCount = existing.FailureCount
		} else {
			result.CheckCount = 1
		}
		if result.Status == StatusUnhealthy {
			result.FailureCount++
		}
		stored := result
		m.results[name] = &stored
		m.mu.Unlock()

		if result.Status == StatusUnhealthy {
			if reg.critical {
				report.Healthy = false
			}
			m.logger.Warn("Health check failed",
				zap.String("name", name),
				zap.Bool("critical", reg.critical),
				zap.Duration("latency", result.Latency),
				zap.Error(result.LastError),
			)
		}

		report.Results[name] = result
	}

	return report
}

// GetResult gets the last recorded result for a check
func (m *Monitor) GetResult(name string) (*CheckResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result, exists := m.results[name]
	if !exists {
		return nil, false
	}
	resultCopy := *result
	return &resultCopy, true
}
