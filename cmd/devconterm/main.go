package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	termcore "github.com/scottpeterman/devcon/internal/term"
)

// guestSource is whatever is feeding the terminal core: a local shell PTY
// or a remote SSH session. Both implement PTYInterface.
type guestSource = PTYInterface

func main() {
	sshTarget := flag.String("ssh", "", "connect to host:port over SSH instead of spawning a local shell")
	sshUser := flag.String("user", "", "SSH username (required with -ssh)")
	configPath := flag.String("config", "", "path to a devconterm.yaml config (default: ./config/devconterm.yaml)")
	flag.Parse()

	sessionID := uuid.New()
	log.Printf("devconterm session %s starting", sessionID)

	path := *configPath
	if path == "" {
		path = termcore.DefaultConfigPath()
	}
	cfg, err := termcore.LoadConfig(path)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 && rows > 0 {
		cfg.Columns, cfg.Rows = cols, rows
	}

	screen := cfg.NewScreen()

	var guest guestSource
	if *sshTarget != "" {
		if *sshUser == "" {
			log.Fatal("-user is required with -ssh")
		}
		guest, err = DialSSH(*sshTarget, *sshUser, cfg.Columns, cfg.Rows)
	} else {
		guest, err = StartShell(cfg.Columns, cfg.Rows)
	}
	if err != nil {
		log.Fatalf("starting guest source: %v", err)
	}
	defer guest.Close()

	oldState, rawErr := term.MakeRaw(int(os.Stdin.Fd()))
	if rawErr == nil {
		defer term.Restore(int(os.Stdin.Fd()), oldState)
	} else {
		log.Printf("warning: could not put host terminal in raw mode: %v", rawErr)
	}

	done := make(chan struct{})
	var closeDone sync.Once
	stop := func() { closeDone.Do(func() { close(done) }) }

	go pumpGuestToScreen(guest, screen, stop)
	go pumpStdinToGuest(guest)
	go watchResize(guest, screen)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		stop()
	}()

	<-done
	fmt.Println()
	log.Printf("devconterm session %s ended", sessionID)
}

// pumpGuestToScreen feeds raw guest output through the terminal core and
// repaints the host terminal after each chunk.
func pumpGuestToScreen(guest guestSource, screen *termcore.Screen, stop func()) {
	buf := make([]byte, 4096)
	for {
		n, err := guest.Read(buf)
		if n > 0 {
			screen.Write(buf[:n])
			redraw(screen)
		}
		if err != nil {
			stop()
			return
		}
	}
}

// pumpStdinToGuest forwards raw host keystrokes straight to the guest; the
// terminal core never sees host input directly, only what the guest echoes
// back.
func pumpStdinToGuest(guest guestSource) {
	in := bufio.NewReader(os.Stdin)
	b := make([]byte, 1)
	for {
		if _, err := in.Read(b); err != nil {
			return
		}
		if _, err := guest.Write(b); err != nil {
			return
		}
	}
}

// watchResize polls the host terminal's size and propagates changes to
// both the guest PTY and the page's dimensions; SIGWINCH isn't portable
// enough across the backends this harness targets to rely on exclusively.
func watchResize(guest guestSource, screen *termcore.Screen) {
	lastCols, lastRows := screen.Page().Width(), screen.Page().Height()
	t := time.NewTicker(250 * time.Millisecond)
	defer t.Stop()
	for range t.C {
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || cols <= 0 || rows <= 0 {
			continue
		}
		if cols == lastCols && rows == lastRows {
			continue
		}
		lastCols, lastRows = cols, rows
		_ = guest.Resize(cols, rows)
		page := screen.Page()
		page.Reserve(cols, rows, termcore.DefaultAttr, 0)
		page.Resize(cols, rows, termcore.DefaultAttr, 0, screen.History())
		redraw(screen)
	}
}

func redraw(screen *termcore.Screen) {
	os.Stdout.WriteString("\x1b[2J\x1b[H")
	for _, line := range screen.RenderLines() {
		os.Stdout.WriteString(line)
		os.Stdout.WriteString("\r\n")
	}
	if x, y := screen.Cursor(); screen.CursorVisible() {
		fmt.Fprintf(os.Stdout, "\x1b[%d;%dH", y+1, x+1)
	}
}
