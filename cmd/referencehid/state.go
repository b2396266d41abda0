package main

import (
	"sync"
	"time"

	"github.com/andrieee44/analogsdk"
	"github.com/karalabe/hid"
)

// scanInterval is how often the supervising timer thread re-enumerates
// HID devices looking for newly connected known models.
const scanInterval = 2 * time.Second

// reportTimeoutMillis bounds each HID report read so a worker wakes
// periodically to check done even when its device goes quiet, per
// spec.md §4.8's "blocking-ish HID report read (short timeout)".
const reportTimeoutMillis = 250

// openDevice is one currently-open device: its HID handle, the model
// it matched, and the mutex-guarded state its worker publishes into.
type openDevice struct {
	id    analogsdk.DeviceID
	info  analogsdk.DeviceInfo
	model knownModel
	hid   hid.Device

	mu        sync.Mutex
	connected bool
	snapshot  map[uint16]float32

	// prevKeys is the key set reported by the previous read_full_buffer
	// call, guarded separately from snapshot since it is touched only by
	// ReadFullBuffer (a reader), never by the worker goroutine.
	prevMu   sync.Mutex
	prevKeys map[uint16]struct{}

	done chan struct{}
}

// pluginState is the process-wide state of this reference plugin. Since
// a foreign-flavor plugin is its own shared library, one process-wide
// instance is correct here the same way the core ABI facade (capi) is a
// singleton: there is exactly one copy of this library loaded per core
// process.
type pluginState struct {
	mu sync.Mutex

	initialised bool
	cb          func(event uint32, info *wireDeviceInfo)

	devices map[analogsdk.DeviceID]*openDevice

	scanDone chan struct{}
	wg       sync.WaitGroup
}

var runtimeState = &pluginState{
	devices: make(map[analogsdk.DeviceID]*openDevice),
}

func (p *pluginState) start(cb func(event uint32, info *wireDeviceInfo)) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialised {
		return len(p.devices)
	}

	p.cb = cb
	p.scanDone = make(chan struct{})

	var count = p.rescanLocked()

	p.wg.Add(1)

	go p.scanLoop()

	p.initialised = true

	return count
}

func (p *pluginState) scanLoop() {
	defer p.wg.Done()

	var ticker = time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.scanDone:
			return
		case <-ticker.C:
			p.mu.Lock()
			p.rescanLocked()
			p.mu.Unlock()
		}
	}
}

// rescanLocked enumerates HID devices, opens any newly matched known
// model, and registers a reader worker for it. Callers must hold p.mu.
func (p *pluginState) rescanLocked() int {
	var infos, err = hid.Enumerate(0, 0)
	if err != nil {
		return len(p.devices)
	}

	for _, info := range infos {
		model, ok := matchModel(info.VendorID, info.ProductID, info.UsagePage, info.Usage)
		if !ok {
			continue
		}

		var id = deriveDeviceID(info.VendorID, info.ProductID, info.Serial)
		if _, open := p.devices[id]; open {
			continue
		}

		var dev, openErr = info.Open()
		if openErr != nil {
			continue
		}

		var od = &openDevice{
			id:    id,
			model: model,
			hid:   dev,
			info: analogsdk.DeviceInfo{
				VendorID:     info.VendorID,
				ProductID:    info.ProductID,
				Manufacturer: fallback(info.Manufacturer, "Reference"),
				ProductName:  fallback(info.Product, model.name),
				DeviceID:     id,
				DeviceType:   model.deviceType,
			},
			connected: true,
			snapshot:  make(map[uint16]float32),
			prevKeys:  make(map[uint16]struct{}),
			done:      make(chan struct{}),
		}

		p.devices[id] = od

		p.wg.Add(1)

		go p.readLoop(od)

		p.emit(analogsdk.Connected, od)
	}

	return len(p.devices)
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}

	return s
}

// readLoop is the per-device worker thread of spec.md §4.8: it loops on
// a short-timeout HID report read, parses (code_be16, analog_u8)
// triples, scales and clamps each sample, and publishes a fresh
// snapshot. A read error marks the device disconnected and exits; a
// plain timeout with no data is not an error and just loops again,
// giving the worker a chance to notice done.
func (p *pluginState) readLoop(od *openDevice) {
	defer p.wg.Done()

	var buf = make([]byte, 64)

	for {
		select {
		case <-od.done:
			return
		default:
		}

		var n, err = od.hid.ReadTimeout(buf, reportTimeoutMillis)
		if err != nil {
			od.mu.Lock()
			od.connected = false
			od.mu.Unlock()

			p.mu.Lock()
			if _, stillTracked := p.devices[od.id]; stillTracked {
				p.emit(analogsdk.Disconnected, od)
				delete(p.devices, od.id)
			}
			p.mu.Unlock()

			return
		}

		if n == 0 {
			continue
		}

		var next = parseReport(buf[:n], od.model.scale)

		od.mu.Lock()
		od.snapshot = next
		od.mu.Unlock()
	}
}

// parseReport reads (code_be16, analog_u8) triples out of report,
// scaling each sample by scale and clamping to 1.0.
func parseReport(report []byte, scale float32) map[uint16]float32 {
	var out = make(map[uint16]float32)

	for i := 0; i+2 < len(report); i += 3 {
		var (
			code   = uint16(report[i])<<8 | uint16(report[i+1])
			sample = float32(report[i+2]) * scale
		)

		if sample > 1.0 {
			sample = 1.0
		}

		out[code] = sample
	}

	return out
}

func (p *pluginState) emit(event analogsdk.DeviceEventType, od *openDevice) {
	if p.cb == nil {
		return
	}

	var wire = newWireDeviceInfo(od.info)
	defer freeWireDeviceInfo(wire)

	p.cb(uint32(event), wire)
}

func (p *pluginState) unload() {
	p.mu.Lock()

	if !p.initialised {
		p.mu.Unlock()

		return
	}

	close(p.scanDone)

	for _, od := range p.devices {
		close(od.done)
		_ = od.hid.Close()
	}

	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	p.devices = make(map[analogsdk.DeviceID]*openDevice)
	p.initialised = false
	p.cb = nil
	p.mu.Unlock()
}

func (p *pluginState) isInitialised() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.initialised
}

func (p *pluginState) deviceInfos() []analogsdk.DeviceInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out = make([]analogsdk.DeviceInfo, 0, len(p.devices))

	for _, od := range p.devices {
		out = append(out, od.info)
	}

	return out
}

// readAnalog implements the single-key read path: any_device takes the
// max across every open device's current snapshot, a specific device
// reads only that device's snapshot.
func (p *pluginState) readAnalog(code uint16, deviceID analogsdk.DeviceID) (float32, analogsdk.ErrorKind) {
	p.mu.Lock()
	var devices = make([]*openDevice, 0, len(p.devices))

	for _, od := range p.devices {
		if deviceID == analogsdk.AnyDevice || od.id == deviceID {
			devices = append(devices, od)
		}
	}
	p.mu.Unlock()

	if len(devices) == 0 {
		return 0, analogsdk.NoDevices
	}

	var best float32 = -1.0

	for _, od := range devices {
		od.mu.Lock()
		v, ok := od.snapshot[code]
		od.mu.Unlock()

		if ok && v > best {
			best = v
		}
	}

	if best < 0 {
		return 0, analogsdk.NoDevices
	}

	return best, analogsdk.Ok
}

// readFullBuffer implements the whole-buffer read path with the
// plugin-local sticky-release bookkeeping of spec.md §4.8: keys present
// in the previous call's snapshot but absent now are reported once more
// at 0.0, then dropped from the tracked set.
func (p *pluginState) readFullBuffer(maxItems uint, deviceID analogsdk.DeviceID) (map[uint16]float32, analogsdk.ErrorKind) {
	p.mu.Lock()
	var devices = make([]*openDevice, 0, len(p.devices))

	for _, od := range p.devices {
		if deviceID == analogsdk.AnyDevice || od.id == deviceID {
			devices = append(devices, od)
		}
	}
	p.mu.Unlock()

	if len(devices) == 0 {
		return nil, analogsdk.NoDevices
	}

	var acc = make(map[uint16]float32)

	for _, od := range devices {
		od.mu.Lock()
		var current = od.snapshot
		od.mu.Unlock()

		od.prevMu.Lock()

		for code, value := range current {
			if existing, present := acc[code]; !present || value > existing {
				acc[code] = value
			}
		}

		for code := range od.prevKeys {
			if _, stillDown := current[code]; !stillDown {
				if _, present := acc[code]; !present {
					acc[code] = 0.0
				}
			}
		}

		od.prevKeys = make(map[uint16]struct{}, len(current))
		for code := range current {
			od.prevKeys[code] = struct{}{}
		}

		od.prevMu.Unlock()

		if uint(len(acc)) >= maxItems {
			break
		}
	}

	if uint(len(acc)) > maxItems {
		var trimmed = make(map[uint16]float32, maxItems)

		var i uint

		for code, value := range acc {
			if i >= maxItems {
				break
			}

			trimmed[code] = value
			i++
		}

		acc = trimmed
	}

	return acc, analogsdk.Ok
}
