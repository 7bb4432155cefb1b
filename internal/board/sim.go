package board

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
)

// simHold is how long a simulator keypress keeps the button reading as
// held. Longer than one engine poll, shorter than the debounce window,
// so one keypress acts exactly once.
const simHold = 150 * time.Millisecond

var (
	simDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	simLegendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Sim renders the ring as a line of colored dots on stdout and maps
// keyboard input to the buttons and the slide switch.
//
// Keys: a presses button A, b presses button B, s toggles the switch,
// q (or ctrl-c) raises SIGINT so the daemon shuts down normally.
type Sim struct {
	logger logging.Logger
	out    io.Writer

	mu           sync.Mutex
	frame        Frame
	pressedUntil [2]time.Time
	switchOn     bool
	closed       bool

	restore func()
}

// NewSim creates a simulator bound to the current terminal. The terminal
// stays in raw mode until Close.
func NewSim(logger logging.Logger) (*Sim, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	s := newSimWriter(logger, os.Stdout)
	s.restore = func() { _ = term.Restore(fd, oldState) }

	fmt.Fprint(os.Stdout, "cpx-pomodoro simulator | a: start/pause  b: cancel  s: switch  q: quit\r\n")
	s.render()

	go s.readKeys()
	return s, nil
}

// newSimWriter creates a simulator that renders to w without touching
// the terminal. Used by tests.
func newSimWriter(logger logging.Logger, w io.Writer) *Sim {
	return &Sim{logger: logger, out: w}
}

func (s *Sim) readKeys() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		switch buf[0] {
		case 'a', 'A':
			s.press(ButtonA)
		case 'b', 'B':
			s.press(ButtonB)
		case 's', 'S':
			s.toggleSwitch()
		case 'q', 'Q', 0x03:
			// Raw mode eats ctrl-c, so deliver the signal ourselves.
			_ = syscall.Kill(syscall.Getpid(), syscall.SIGINT)
			return
		}
	}
}

func (s *Sim) press(b Button) {
	s.mu.Lock()
	s.pressedUntil[b] = time.Now().Add(simHold)
	s.mu.Unlock()
	s.logger.Debug("Simulated button press", "button", b.String())
}

func (s *Sim) toggleSwitch() {
	s.mu.Lock()
	s.switchOn = !s.switchOn
	on := s.switchOn
	s.mu.Unlock()
	s.logger.Debug("Simulated switch toggle", "on", on)
	s.render()
}

// SetPixel sets one ring pixel and redraws the status line.
func (s *Sim) SetPixel(index int, color RGB) error {
	if index < 0 || index >= NumPixels {
		return fmt.Errorf("pixel index %d out of range [0, %d)", index, NumPixels)
	}
	s.mu.Lock()
	s.frame[index] = color
	s.mu.Unlock()
	s.render()
	return nil
}

// SetAll replaces the whole ring and redraws the status line.
func (s *Sim) SetAll(frame Frame) error {
	s.mu.Lock()
	s.frame = frame
	s.mu.Unlock()
	s.render()
	return nil
}

// Pixels returns the currently displayed frame.
func (s *Sim) Pixels() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Pressed reports whether a keypress for the button is still active.
func (s *Sim) Pressed(b Button) bool {
	if b != ButtonA && b != ButtonB {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().Before(s.pressedUntil[b])
}

// SwitchOn reports the simulated slide switch position.
func (s *Sim) SwitchOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.switchOn
}

// PlayTone rings the terminal bell. The closest thing to a speaker here.
func (s *Sim) PlayTone(freqHz float64, d time.Duration) error {
	_, err := fmt.Fprint(s.out, "\a")
	return err
}

// Close blanks the display and restores the terminal.
func (s *Sim) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.frame = Frame{}
	restore := s.restore
	s.mu.Unlock()

	fmt.Fprint(s.out, "\r\x1b[K")
	if restore != nil {
		restore()
		fmt.Fprint(s.out, "\n")
	}
	return nil
}

// render redraws the single status line. Caller must not hold mu.
func (s *Sim) render() {
	s.mu.Lock()
	frame := s.frame
	switchOn := s.switchOn
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return
	}
	fmt.Fprint(s.out, "\r"+renderLine(frame, switchOn)+"\x1b[K")
}

// renderLine draws the ring as colored dots plus the switch position.
func renderLine(frame Frame, switchOn bool) string {
	var b strings.Builder
	for i, c := range frame {
		if i > 0 {
			b.WriteString(" ")
		}
		if c == Off {
			b.WriteString(simDimStyle.Render("·"))
		} else {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(c)))
			b.WriteString(style.Render("●"))
		}
	}
	label := "sw:off"
	if switchOn {
		label = "sw:ON"
	}
	b.WriteString("  ")
	b.WriteString(simLegendStyle.Render(label))
	return b.String()
}

// hexColor maps the hardware brightness scale to a visible terminal color.
func hexColor(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", scale(c.R), scale(c.G), scale(c.B))
}

func scale(v uint8) uint8 {
	n := int(v) * 16
	if n > 255 {
		n = 255
	}
	return uint8(n)
}
