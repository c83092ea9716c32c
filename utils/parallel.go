package utils

import (
	"runtime"
	"sync"
)

func Workers(requested int) int {
	if requested <= 0 {
		return runtime.NumCPU()
	}
	return requested
}

// Partition splits [0, count) into contiguous ranges and runs f on each
// range in its own goroutine, returning once all of them are done.
func Partition(count, workers int, f func(worker, start, end int)) {
	workers = Workers(workers)
	if workers > count {
		workers = count
	}
	if workers <= 0 {
		return
	}
	var wg sync.WaitGroup
	size := count / workers
	extra := count % workers
	start := 0
	for w := 0; w < workers; w++ {
		end := start + size
		if w < extra {
			end++
		}
		wg.Add(1)
		go func(worker, start, end int) {
			defer wg.Done()
			f(worker, start, end)
		}(w, start, end)
		start = end
	}
	wg.Wait()
}
