package config

import (
	"sync"
	"testing"
)

func TestGetColorsConcurrent(t *testing.T) {
	const workers = 8

	results := make([]*ColorConfig, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = GetColors()
		}()
	}
	wg.Wait()

	for i, c := range results {
		if c == nil {
			t.Fatalf("GetColors() in worker %d returned nil", i)
		}
		if c != results[0] {
			t.Errorf("GetColors() in worker %d returned a different instance", i)
		}
	}
	if results[0].ChipActiveBorder == "" {
		t.Error("ChipActiveBorder is empty")
	}
}
