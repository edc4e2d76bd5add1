package system

import "testing"

func TestRasterWorkersBounds(t *testing.T) {
	tests := []int{0, 1, 2, 16, 1024}
	for _, jobs := range tests {
		got := RasterWorkers(jobs)
		if got < 1 {
			t.Errorf("RasterWorkers(%d) = %d, want at least 1", jobs, got)
		}
		if jobs >= 1 && got > jobs {
			t.Errorf("RasterWorkers(%d) = %d, exceeds the job count", jobs, got)
		}
	}
}
