package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		path string
		args []string
		err  bool
	}{
		{name: "path only", line: "dir1/test", path: "dir1/test", args: []string{}},
		{name: "absolute", line: "/dir2/echo", path: "/dir2/echo", args: []string{}},
		{name: "arguments", line: "led/set 1 2 3", path: "led/set", args: []string{"1", "2", "3"}},
		{name: "extra spaces", line: "  echo   a   b ", path: "echo", args: []string{"a", "b"}},
		{name: "trailing slash", line: "dir1/", path: "dir1", args: []string{}},
		{name: "trailing slash with args", line: "dir1/ x", path: "dir1", args: []string{"x"}, err: true},
		{name: "escaped space", line: `my\ dir/cmd arg`, path: "my dir/cmd", args: []string{"arg"}},
		{name: "parent", line: "../..", path: "../..", args: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseCommandLine(tt.line)
			assert.Equal(t, KindAction, req.Kind)
			assert.Equal(t, tt.line, req.Line)
			assert.Equal(t, tt.path, req.Path.String())
			if len(tt.args) == 0 {
				assert.Empty(t, req.Args)
			} else {
				assert.Equal(t, tt.args, req.Args)
			}
			if tt.err {
				assert.ErrorIs(t, req.Err, ErrTrailingSlashWithArgs)
			} else {
				assert.NoError(t, req.Err)
			}
		})
	}
}

func TestParseLogin(t *testing.T) {
	req := ParseLogin("admin:pa:ss")
	assert.Equal(t, KindLogin, req.Kind)
	assert.Equal(t, "admin", req.Username)
	assert.Equal(t, "pa:ss", req.Password)

	assert.Equal(t, KindInvalidLogin, ParseLogin("nocolon").Kind)
	assert.Equal(t, KindInvalidLogin, ParseLogin(":x").Kind)
	assert.Equal(t, KindInvalidLogin, ParseLogin("x:").Kind)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "tab", TriggerTab.String())
	assert.Equal(t, "history_navigation", KindHistoryNavigation.String())
}
