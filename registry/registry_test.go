package registry_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andrieee44/analogsdk"
	"github.com/andrieee44/analogsdk/registry"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// waitOrTimeout blocks on wg and fails the test instead of hanging
// forever if the dispatch goroutine never catches up.
func waitOrTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	var done = make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for forwarded events to be delivered")
	}
}

// TestForwardDeliversPerDeviceEventsInOrder forwards a strictly
// increasing sequence of events for several devices concurrently (one
// producer goroutine per device, mirroring several plugins' reader
// threads) and checks that each device's own sequence number always
// arrives increasing, per spec.md §5's per-device ordering guarantee.
func TestForwardDeliversPerDeviceEventsInOrder(t *testing.T) {
	const (
		devices         = 4
		eventsPerDevice = 200
	)

	var r = registry.NewRouter(zap.NewNop().Sugar())

	var (
		mu       sync.Mutex
		lastSeen = make(map[analogsdk.DeviceID]uint16)
		violated bool
	)

	var received sync.WaitGroup
	received.Add(devices * eventsPerDevice)

	r.SetCallback(func(event analogsdk.DeviceEventType, info analogsdk.DeviceInfo) {
		defer received.Done()

		mu.Lock()
		defer mu.Unlock()

		if info.VendorID <= lastSeen[info.DeviceID] {
			violated = true
		}

		lastSeen[info.DeviceID] = info.VendorID
	})

	var produced sync.WaitGroup
	produced.Add(devices)

	for d := 0; d < devices; d++ {
		go func(deviceID analogsdk.DeviceID) {
			defer produced.Done()

			for seq := uint16(1); seq <= eventsPerDevice; seq++ {
				r.Forward(analogsdk.Connected, analogsdk.DeviceInfo{DeviceID: deviceID, VendorID: seq})
			}
		}(analogsdk.DeviceID(d + 1))
	}

	produced.Wait()
	waitOrTimeout(t, &received)

	assert.False(t, violated, "events for a single device were delivered out of order")
}

// TestForwardIsRaceSafeForConcurrentProducersOnTheSameDevice calls
// Forward from many goroutines at once for the same DeviceID, as a
// hot-plug storm on one device might. It exists to be run with -race:
// every event must be enqueued and delivered exactly once with no
// corruption of the shared queue, even though Forward gives no ordering
// guarantee between independent, unsynchronized callers.
func TestForwardIsRaceSafeForConcurrentProducersOnTheSameDevice(t *testing.T) {
	const (
		producers       = 8
		eventsPerGoroutine = 100
	)

	var r = registry.NewRouter(zap.NewNop().Sugar())

	var seen sync.Map

	var received sync.WaitGroup
	received.Add(producers * eventsPerGoroutine)

	r.SetCallback(func(event analogsdk.DeviceEventType, info analogsdk.DeviceInfo) {
		defer received.Done()

		seen.Store(info.VendorID, true)
	})

	var seq uint32

	var produced sync.WaitGroup
	produced.Add(producers)

	for p := 0; p < producers; p++ {
		go func() {
			defer produced.Done()

			for i := 0; i < eventsPerGoroutine; i++ {
				var n = atomic.AddUint32(&seq, 1)

				r.Forward(analogsdk.Connected, analogsdk.DeviceInfo{DeviceID: 1, VendorID: uint16(n)})
			}
		}()
	}

	produced.Wait()
	waitOrTimeout(t, &received)

	var count int
	seen.Range(func(key, value any) bool {
		count++

		return true
	})

	assert.Equal(t, producers*eventsPerGoroutine, count, "every forwarded event must be delivered exactly once")
}

// TestForwardWithoutCallbackDoesNotBlockProducer checks that Forward
// returns immediately even when no consumer callback is installed yet,
// since the dispatch goroutine drops (rather than blocks on) events with
// no callback registered.
func TestForwardWithoutCallbackDoesNotBlockProducer(t *testing.T) {
	var r = registry.NewRouter(zap.NewNop().Sugar())

	var done = make(chan struct{})

	go func() {
		for i := 0; i < 1000; i++ {
			r.Forward(analogsdk.Connected, analogsdk.DeviceInfo{DeviceID: 1, VendorID: uint16(i)})
		}

		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Forward blocked with no callback registered")
	}
}
