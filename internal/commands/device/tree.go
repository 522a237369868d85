package device

import (
	"devcli/internal/tree"
	"devcli/pkg/clitypes"
)

// BuildTree assembles the default namespace over d and freezes it:
//
//	/led/{set,get}  /potmeter/read  /switch/{toggle,state}
//	/system/{heap,uptime,version,reboot}  /system/admin/{stats,echo}  /echo
//
// reboot and the admin directory require AccessAdmin. The echo command value
// is shared by two nodes.
func BuildTree(d *Device) *tree.Tree {
	t := tree.New()
	root := tree.RootID
	user, admin := clitypes.AccessUser, clitypes.AccessAdmin

	led := t.MustAddDirectory(root, "led", user)
	t.MustAddCommand(led, "set", user, &LEDSetCommand{Device: d})
	t.MustAddCommand(led, "get", user, &LEDGetCommand{Device: d})

	pot := t.MustAddDirectory(root, "potmeter", user)
	t.MustAddCommand(pot, "read", user, &PotmeterReadCommand{Device: d})

	sw := t.MustAddDirectory(root, "switch", user)
	t.MustAddCommand(sw, "toggle", user, &SwitchToggleCommand{Device: d})
	t.MustAddCommand(sw, "state", user, &SwitchStateCommand{Device: d})

	system := t.MustAddDirectory(root, "system", user)
	t.MustAddCommand(system, "heap", user, &HeapCommand{})
	t.MustAddCommand(system, "uptime", user, &UptimeCommand{Device: d})
	t.MustAddCommand(system, "version", user, &VersionCommand{})
	t.MustAddCommand(system, "reboot", admin, &RebootCommand{Device: d})

	echo := &EchoCommand{}
	adminDir := t.MustAddDirectory(system, "admin", admin)
	t.MustAddCommand(adminDir, "stats", admin, &StatsCommand{Device: d})
	t.MustAddCommand(adminDir, "echo", user, echo)

	t.MustAddCommand(root, "echo", user, echo)

	t.Freeze()
	return t
}
