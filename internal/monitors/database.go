package monitors

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/monocle-dev/companies/internal/repository"
	log "github.com/sirupsen/logrus"
)

const defaultProbeTimeout = 5 * time.Second

// StatusRecorder receives the outcome of every probe.
type StatusRecorder interface {
	SetBackendUp(up bool)
}

// BackendMonitor pings the store on demand and logs when the connection is
// lost or comes back.
type BackendMonitor struct {
	backend  repository.Backend
	timeout  time.Duration
	recorder StatusRecorder

	mu   sync.Mutex
	up   bool
	seen bool
}

func NewBackendMonitor(backend repository.Backend, timeout time.Duration, recorder StatusRecorder) *BackendMonitor {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	return &BackendMonitor{
		backend:  backend,
		timeout:  timeout,
		recorder: recorder,
	}
}

// Check runs one probe. It matches scheduler.JobFunc.
func (m *BackendMonitor) Check(ctx context.Context) error {
	err := CheckBackend(ctx, m.backend, m.timeout)
	up := err == nil

	m.mu.Lock()
	changed := !m.seen || m.up != up
	m.up = up
	m.seen = true
	m.mu.Unlock()

	if m.recorder != nil {
		m.recorder.SetBackendUp(up)
	}

	if changed {
		if up {
			log.Infof("Database %s is reachable", m.backend.Name())
		} else {
			log.WithError(err).Errorf("Database %s is unreachable", m.backend.Name())
		}
	}

	return err
}

// Up reports the result of the latest probe.
func (m *BackendMonitor) Up() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.up
}

func CheckBackend(ctx context.Context, backend repository.Backend, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := backend.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping %s: %w", backend.Name(), err)
	}

	return nil
}
