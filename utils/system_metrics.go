package utils

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/sirupsen/logrus"
)

var (
	cpuUsageGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_cpu_usage_percent",
		Help: "Current CPU usage as a percentage",
	})

	memUsageGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_usage_percent",
		Help: "Current memory usage as a percentage",
	})
)

// CollectSystemMetrics samples CPU and memory usage until ctx is cancelled.
// Run it in its own goroutine.
func CollectSystemMetrics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if percent, err := cpu.Percent(0, false); err != nil {
				logrus.WithError(err).Debug("sampling CPU usage")
			} else if len(percent) > 0 {
				cpuUsageGauge.Set(percent[0])
			}

			if vm, err := mem.VirtualMemory(); err != nil {
				logrus.WithError(err).Debug("sampling memory usage")
			} else {
				memUsageGauge.Set(vm.UsedPercent)
			}
		}
	}
}
