// Package device provides the leaf commands of the default namespace. They
// drive a simulated board: an RGB LED, a potentiometer and a toggle switch.
package device

import (
	"math/rand"
	"sync"
	"time"
)

// PotmeterMax is the full-scale reading of the 12-bit potentiometer ADC.
const PotmeterMax = 4095

// Device holds the simulated board state shared by the commands.
type Device struct {
	mu       sync.Mutex
	red      uint8
	green    uint8
	blue     uint8
	switchOn bool
	toggles  int
	reboots  int
	started  time.Time
	now      func() time.Time
	potmeter func() int
}

// Option configures a Device.
type Option func(*Device)

// WithClock replaces time.Now, for uptime.
func WithClock(now func() time.Time) Option {
	return func(d *Device) {
		d.now = now
	}
}

// WithPotmeter replaces the potentiometer source. Readings are clamped to 0..PotmeterMax.
func WithPotmeter(read func() int) Option {
	return func(d *Device) {
		d.potmeter = read
	}
}

// New creates a board with the LED off and the switch open.
func New(opts ...Option) *Device {
	d := &Device{
		now:      time.Now,
		potmeter: func() int { return rand.Intn(PotmeterMax + 1) },
	}
	for _, opt := range opts {
		opt(d)
	}
	d.started = d.now()
	return d
}

// SetLED sets the LED colour.
func (d *Device) SetLED(r, g, b uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.red, d.green, d.blue = r, g, b
}

// LED returns the LED colour.
func (d *Device) LED() (r, g, b uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.red, d.green, d.blue
}

// Potmeter samples the potentiometer.
func (d *Device) Potmeter() int {
	v := d.potmeter()
	switch {
	case v < 0:
		return 0
	case v > PotmeterMax:
		return PotmeterMax
	}
	return v
}

// ToggleSwitch flips the switch and returns its new position.
func (d *Device) ToggleSwitch() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.switchOn = !d.switchOn
	d.toggles++
	return d.switchOn
}

// Switch returns the switch position.
func (d *Device) Switch() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.switchOn
}

// Reboot resets the board state and the uptime.
func (d *Device) Reboot() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.red, d.green, d.blue = 0, 0, 0
	d.switchOn = false
	d.reboots++
	d.started = d.now()
}

// Uptime returns the time since start or the last reboot.
func (d *Device) Uptime() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.now().Sub(d.started)
}

// Counters returns the number of switch toggles and reboots.
func (d *Device) Counters() (toggles, reboots int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.toggles, d.reboots
}
