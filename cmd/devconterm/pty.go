// Command devconterm drives the internal/term core against a real shell
// (or SSH session), exercising the parser/page/history pipeline the way a
// kernel developer console would, from an ordinary host terminal.
package main

import (
	"fmt"
	"os/exec"
)

// PTYInterface abstracts the local-PTY and ConPTY backends so the main
// read loop doesn't care which platform it's running on.
type PTYInterface interface {
	Write([]byte) (int, error)
	Read([]byte) (int, error)
	Close() error
	Resize(cols, rows int) error
}

func shellCommandString(cmd *exec.Cmd) string {
	return fmt.Sprintf("%s %v", cmd.Path, cmd.Args[1:])
}
