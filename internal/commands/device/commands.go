package device

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"devcli/internal/version"
	"devcli/pkg/clitypes"
)

// LEDSetCommand sets the LED colour from three 0-255 components.
type LEDSetCommand struct {
	Device *Device
}

// Description returns a brief description of the command.
func (c *LEDSetCommand) Description() string { return "Set the LED colour" }

// Usage returns the argument syntax.
func (c *LEDSetCommand) Usage() string { return "<r> <g> <b>" }

// Execute parses the colour components and applies them.
func (c *LEDSetCommand) Execute(args []string) clitypes.Response {
	if len(args) != 3 {
		return clitypes.InvalidArguments("usage: set <r> <g> <b>")
	}
	var rgb [3]uint8
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return clitypes.InvalidArguments(fmt.Sprintf("invalid colour component %q: expected 0-255", arg))
		}
		rgb[i] = uint8(v)
	}
	c.Device.SetLED(rgb[0], rgb[1], rgb[2])
	return clitypes.Success(fmt.Sprintf("LED set to %d %d %d", rgb[0], rgb[1], rgb[2]))
}

// LEDGetCommand reports the LED colour.
type LEDGetCommand struct {
	Device *Device
}

// Description returns a brief description of the command.
func (c *LEDGetCommand) Description() string { return "Show the LED colour" }

// Usage returns the argument syntax.
func (c *LEDGetCommand) Usage() string { return "" }

// Execute reports the current colour.
func (c *LEDGetCommand) Execute(args []string) clitypes.Response {
	if len(args) != 0 {
		return clitypes.InvalidArguments("usage: get")
	}
	r, g, b := c.Device.LED()
	return clitypes.Success(fmt.Sprintf("LED: %d %d %d", r, g, b))
}

// PotmeterReadCommand samples the potentiometer.
type PotmeterReadCommand struct {
	Device *Device
}

// Description returns a brief description of the command.
func (c *PotmeterReadCommand) Description() string { return "Read the potentiometer" }

// Usage returns the argument syntax.
func (c *PotmeterReadCommand) Usage() string { return "" }

// Execute reports the raw reading and its percentage of full scale.
func (c *PotmeterReadCommand) Execute(args []string) clitypes.Response {
	if len(args) != 0 {
		return clitypes.InvalidArguments("usage: read")
	}
	v := c.Device.Potmeter()
	return clitypes.Success(fmt.Sprintf("Potmeter: %d (%d%%)", v, v*100/PotmeterMax))
}

// SwitchToggleCommand flips the switch.
type SwitchToggleCommand struct {
	Device *Device
}

// Description returns a brief description of the command.
func (c *SwitchToggleCommand) Description() string { return "Toggle the switch" }

// Usage returns the argument syntax.
func (c *SwitchToggleCommand) Usage() string { return "" }

// Execute flips the switch.
func (c *SwitchToggleCommand) Execute(args []string) clitypes.Response {
	if len(args) != 0 {
		return clitypes.InvalidArguments("usage: toggle")
	}
	return clitypes.Success("Switch is now " + onOff(c.Device.ToggleSwitch()))
}

// SwitchStateCommand reports the switch position.
type SwitchStateCommand struct {
	Device *Device
}

// Description returns a brief description of the command.
func (c *SwitchStateCommand) Description() string { return "Show the switch position" }

// Usage returns the argument syntax.
func (c *SwitchStateCommand) Usage() string { return "" }

// Execute reports the switch position.
func (c *SwitchStateCommand) Execute(args []string) clitypes.Response {
	if len(args) != 0 {
		return clitypes.InvalidArguments("usage: state")
	}
	return clitypes.Success("Switch is " + onOff(c.Device.Switch()))
}

// HeapCommand reports memory statistics of the running process.
type HeapCommand struct{}

// Description returns a brief description of the command.
func (c *HeapCommand) Description() string { return "Show heap usage" }

// Usage returns the argument syntax.
func (c *HeapCommand) Usage() string { return "" }

// Execute reads the runtime memory statistics.
func (c *HeapCommand) Execute(args []string) clitypes.Response {
	if len(args) != 0 {
		return clitypes.InvalidArguments("usage: heap")
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	lines := []string{
		"Heap in use: " + humanize.IBytes(m.HeapInuse),
		"Heap free:   " + humanize.IBytes(m.HeapIdle-m.HeapReleased),
		"Objects:     " + humanize.Comma(int64(m.HeapObjects)),
	}
	return clitypes.Success(strings.Join(lines, "\n"))
}

// RebootCommand resets the simulated board.
type RebootCommand struct {
	Device *Device
}

// Description returns a brief description of the command.
func (c *RebootCommand) Description() string { return "Reboot the device" }

// Usage returns the argument syntax.
func (c *RebootCommand) Usage() string { return "" }

// Execute reboots the board.
func (c *RebootCommand) Execute(args []string) clitypes.Response {
	if len(args) != 0 {
		return clitypes.InvalidArguments("usage: reboot")
	}
	c.Device.Reboot()
	return clitypes.Success("Rebooting device")
}

// UptimeCommand reports the time since boot.
type UptimeCommand struct {
	Device *Device
}

// Description returns a brief description of the command.
func (c *UptimeCommand) Description() string { return "Show the time since boot" }

// Usage returns the argument syntax.
func (c *UptimeCommand) Usage() string { return "" }

// Execute reports the uptime rounded to seconds.
func (c *UptimeCommand) Execute(args []string) clitypes.Response {
	if len(args) != 0 {
		return clitypes.InvalidArguments("usage: uptime")
	}
	return clitypes.Success("Uptime: " + c.Device.Uptime().Round(time.Second).String())
}

// VersionCommand reports the firmware version.
type VersionCommand struct{}

// Description returns a brief description of the command.
func (c *VersionCommand) Description() string { return "Show the firmware version" }

// Usage returns the argument syntax.
func (c *VersionCommand) Usage() string { return "" }

// Execute returns the build version.
func (c *VersionCommand) Execute(_ []string) clitypes.Response {
	return clitypes.Success(version.Short())
}

// StatsCommand reports board counters.
type StatsCommand struct {
	Device *Device
}

// Description returns a brief description of the command.
func (c *StatsCommand) Description() string { return "Show switch and reboot counters" }

// Usage returns the argument syntax.
func (c *StatsCommand) Usage() string { return "" }

// Execute reports the counters.
func (c *StatsCommand) Execute(_ []string) clitypes.Response {
	toggles, reboots := c.Device.Counters()
	return clitypes.Success(fmt.Sprintf("Switch toggles: %s\nReboots: %s",
		humanize.Comma(int64(toggles)), humanize.Comma(int64(reboots))))
}

// EchoCommand writes its arguments back.
type EchoCommand struct{}

// Description returns a brief description of the command.
func (c *EchoCommand) Description() string { return "Print the arguments" }

// Usage returns the argument syntax.
func (c *EchoCommand) Usage() string { return "[text...]" }

// Execute joins the arguments with single spaces.
func (c *EchoCommand) Execute(args []string) clitypes.Response {
	return clitypes.Success(strings.Join(args, " "))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
