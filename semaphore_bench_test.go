package semabook

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"testing"

	"golang.org/x/sync/semaphore"
)

func BenchmarkSemaphoreMutex(b *testing.B) {
	b.ReportAllocs()
	m := NewMutex()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Lock()
			m.Unlock()
		}
	})
}

func BenchmarkSyncMutex(b *testing.B) {
	b.ReportAllocs()
	var m sync.Mutex
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Lock()
			m.Unlock()
		}
	})
}

func BenchmarkMultiplex(b *testing.B) {
	b.ReportAllocs()
	m := NewMultiplex(max(runtime.GOMAXPROCS(0)/2, 1))
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Enter()
			m.Leave()
		}
	})
}

func BenchmarkWeightedMultiplex(b *testing.B) {
	b.ReportAllocs()
	ctx := context.Background()
	w := semaphore.NewWeighted(int64(max(runtime.GOMAXPROCS(0)/2, 1)))
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = w.Acquire(ctx, 1)
			w.Release(1)
		}
	})
}

func BenchmarkBarrier(b *testing.B) {
	for _, parties := range []int{2, 8} {
		b.Run("parties="+strconv.Itoa(parties), func(b *testing.B) {
			b.ReportAllocs()
			bar := NewBarrier(parties)
			err := Fork(parties, func(int) error {
				for range b.N {
					bar.Wait()
				}
				return nil
			})
			if err != nil {
				b.Fatal(err)
			}
		})
	}
}
