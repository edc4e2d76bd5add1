// Package system sizes the rasterization worker pool from the machine
// it runs on.
package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// lowMemoryLimit is the available-memory floor below which the pool is
// capped; PDF rasterization in particular is memory hungry.
const lowMemoryLimit = 512 << 20

// RasterWorkers returns how many layer rasters to render in parallel:
// one worker per logical CPU, capped at the number of jobs, and reduced
// on memory-starved hosts.
func RasterWorkers(jobs int) int {
	workers, err := cpu.Counts(true)
	if err != nil || workers < 1 {
		workers = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil && vm.Available < lowMemoryLimit && workers > 2 {
		workers = 2
	}

	if workers > jobs {
		workers = jobs
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
