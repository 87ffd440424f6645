//go:build !windows

package main

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellCommandStringIncludesArgs(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-l")
	got := shellCommandString(cmd)
	assert.True(t, strings.Contains(got, "/bin/sh"))
	assert.True(t, strings.Contains(got, "-l"))
}

func TestDefaultShellFallsBackWhenUnset(t *testing.T) {
	t.Setenv("SHELL", "")
	got := defaultShell()
	assert.NotEmpty(t, got)
}

func TestDefaultShellHonorsEnv(t *testing.T) {
	t.Setenv("SHELL", "/opt/custom/shell")
	assert.Equal(t, "/opt/custom/shell", defaultShell())
}
