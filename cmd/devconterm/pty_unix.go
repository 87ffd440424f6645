//go:build !windows

package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"syscall"
	"time"

	"github.com/creack/pty"
)

// UnixPTY spawns a shell under a real PTY via creack/pty.
type UnixPTY struct {
	ptyFile *os.File
	cmd     *exec.Cmd
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	switch runtime.GOOS {
	case "darwin":
		return "/bin/zsh"
	default:
		return "/bin/bash"
	}
}

// StartShell launches the user's shell attached to a new PTY sized cols x
// rows, with a terminal-capable environment.
func StartShell(cols, rows int) (*UnixPTY, error) {
	shell := defaultShell()
	cmd := exec.Command(shell, "-l")
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
	)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to start shell: %w", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
		log.Printf("warning: initial Setsize failed: %v", err)
	}
	log.Printf("started %s under PTY (%dx%d)", shellCommandString(cmd), cols, rows)
	return &UnixPTY{ptyFile: ptmx, cmd: cmd}, nil
}

func (u *UnixPTY) Write(p []byte) (int, error) { return u.ptyFile.Write(p) }
func (u *UnixPTY) Read(p []byte) (int, error)  { return u.ptyFile.Read(p) }

func (u *UnixPTY) Resize(cols, rows int) error {
	return pty.Setsize(u.ptyFile, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

// Close terminates the child shell, escalating from SIGTERM to Kill if it
// doesn't exit promptly, then releases the PTY file.
func (u *UnixPTY) Close() error {
	if u.cmd.Process != nil {
		done := make(chan error, 1)
		go func() { done <- u.cmd.Wait() }()

		_ = u.cmd.Process.Signal(syscall.SIGTERM)
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			_ = u.cmd.Process.Kill()
			<-done
		}
	}
	return u.ptyFile.Close()
}
