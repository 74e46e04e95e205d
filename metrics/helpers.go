// Package metrics provides Prometheus metrics for the station map
// service.
package metrics

import "runtime"

// RecordMemoryUsage updates the memory usage gauge from runtime stats.
func RecordMemoryUsage() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsageBytes.Set(float64(m.Alloc))
}
