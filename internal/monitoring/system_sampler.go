package monitoring

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/models"
	"github.com/sabadesa/sabadesa-be/internal/services"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	highMemoryThreshold = 90.0
	alertCooldown       = 15 * time.Minute
)

// SystemSampler periodically samples host memory, CPU and the database file
// size, keeping the latest snapshot for the status endpoint.
type SystemSampler struct {
	dbPath    string
	interval  time.Duration
	logs      services.ActivityLogServiceProvider
	ticker    *time.Ticker
	done      chan bool
	mu        sync.RWMutex
	last      models.SystemStatus
	lastAlert time.Time
}

// NewSystemSampler creates a new SystemSampler.
func NewSystemSampler(dbPath string, interval time.Duration, logs services.ActivityLogServiceProvider) *SystemSampler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SystemSampler{
		dbPath:   dbPath,
		interval: interval,
		logs:     logs,
		done:     make(chan bool),
	}
}

// Run starts the periodic sampling.
func (ss *SystemSampler) Run() {
	log.Info().Dur("interval", ss.interval).Msg("Starting system sampler...")
	ss.ticker = time.NewTicker(ss.interval)
	defer ss.ticker.Stop()

	// Run once immediately on start
	ss.Sample()

	for {
		select {
		case <-ss.done:
			log.Info().Msg("Stopping system sampler.")
			return
		case <-ss.ticker.C:
			ss.Sample()
		}
	}
}

// Stop halts the periodic sampling.
func (ss *SystemSampler) Stop() {
	ss.done <- true
}

// Status returns the latest snapshot.
func (ss *SystemSampler) Status() models.SystemStatus {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.last
}

// Sample takes one snapshot. Failing probes leave their fields zero.
func (ss *SystemSampler) Sample() models.SystemStatus {
	status := models.SystemStatus{
		Goroutines: runtime.NumGoroutine(),
		SampledAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Warn().Err(err).Msg("SystemSampler: Could not read memory stats")
	} else {
		status.MemoryPercent = vm.UsedPercent
		status.MemoryUsedMB = vm.Used / (1024 * 1024)
		status.MemoryTotalMB = vm.Total / (1024 * 1024)
	}

	if pct, err := cpu.Percent(0, false); err != nil {
		log.Warn().Err(err).Msg("SystemSampler: Could not read CPU stats")
	} else if len(pct) > 0 {
		status.CPUPercent = pct[0]
	}

	if ss.dbPath != "" {
		if info, err := os.Stat(ss.dbPath); err == nil {
			status.DatabaseBytes = info.Size()
		}
	}

	ss.mu.Lock()
	ss.last = status
	ss.mu.Unlock()

	ss.checkAndAlertForHighMemory(status)
	return status
}

func (ss *SystemSampler) checkAndAlertForHighMemory(status models.SystemStatus) {
	if status.MemoryPercent <= highMemoryThreshold || ss.logs == nil {
		return
	}
	// If an alert was sent recently, do nothing.
	if !ss.lastAlert.IsZero() && time.Since(ss.lastAlert) < alertCooldown {
		return
	}
	msg := fmt.Sprintf("High memory usage (%.1f%%) detected on host.", status.MemoryPercent)
	if err := ss.logs.Record("system.alert.memory", services.LevelWarn, msg, nil); err != nil {
		log.Error().Err(err).Msg("SystemSampler: Failed to record alert")
	}
	ss.lastAlert = time.Now()
}
