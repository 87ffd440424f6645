//go:build windows

package main

import (
	"fmt"
	"log"
	"os"
	"syscall"

	activeConpty "github.com/ActiveState/termtest/conpty"
	userConpty "github.com/UserExistsError/conpty"
)

// WindowsPTY spawns cmd.exe under a Windows pseudo-console, preferring
// ActiveState/termtest's conpty binding and falling back to
// UserExistsError/conpty if the primary fails to spawn (older builds of
// Windows expose ConPTY slightly differently between the two bindings).
type WindowsPTY struct {
	active   *activeConpty.ConPty
	fallback *userConpty.ConPty
	pid      int
}

func windowsShell() string {
	root := os.Getenv("SYSTEMROOT")
	if root == "" {
		root = os.Getenv("WINDIR")
	}
	if root == "" {
		root = `C:\Windows`
	}
	return root + `\System32\cmd.exe`
}

// StartShell launches cmd.exe under a new ConPTY sized cols x rows.
func StartShell(cols, rows int) (*WindowsPTY, error) {
	shell := windowsShell()
	env := append(os.Environ(), "TERM=xterm-256color")

	cpty, err := activeConpty.New(int16(cols), int16(rows))
	if err == nil {
		pid, _, spawnErr := cpty.Spawn(shell, []string{}, &syscall.ProcAttr{Env: env})
		if spawnErr == nil {
			log.Printf("started %s under ActiveState ConPTY (%dx%d)", shell, cols, rows)
			return &WindowsPTY{active: cpty, pid: pid}, nil
		}
		log.Printf("ActiveState ConPTY spawn failed, falling back: %v", spawnErr)
		_ = cpty.Close()
	} else {
		log.Printf("ActiveState ConPTY unavailable, falling back: %v", err)
	}

	fb, err := userConpty.Start(shell, userConpty.ConPtyDimensions(cols, rows))
	if err != nil {
		return nil, fmt.Errorf("failed to start shell under any ConPTY backend: %w", err)
	}
	log.Printf("started %s under fallback ConPTY (%dx%d)", shell, cols, rows)
	return &WindowsPTY{fallback: fb}, nil
}

func (w *WindowsPTY) Write(p []byte) (int, error) {
	if w.active != nil {
		return w.active.Write(p)
	}
	return w.fallback.Write(p)
}

func (w *WindowsPTY) Read(p []byte) (int, error) {
	if w.active != nil {
		return w.active.OutPipe().Read(p)
	}
	return w.fallback.Read(p)
}

func (w *WindowsPTY) Resize(cols, rows int) error {
	if w.active != nil {
		return w.active.Resize(int16(cols), int16(rows))
	}
	return w.fallback.Resize(cols, rows)
}

func (w *WindowsPTY) Close() error {
	if w.active != nil {
		if w.pid != 0 {
			if proc, err := os.FindProcess(w.pid); err == nil {
				_ = proc.Kill()
			}
		}
		return w.active.Close()
	}
	return w.fallback.Close()
}
