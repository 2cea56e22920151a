// Package debugger is an interactive, terminal-based single-stepper built
// on top of cpu.CPU. It is deliberately external to package cpu: it drives
// the interpreter exactly the way any other caller would, one Step at a
// time, and has no access to unexported interpreter state.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"go6502/cpu"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is a bubbletea model wrapping a live *cpu.CPU. Pressing space or j
// advances one instruction; q quits.
type Model struct {
	CPU *cpu.CPU

	prevPC uint16
	last   cpu.State
	err    error
}

// New returns a Model ready to step c. c should already be constructed
// (cpu.New, with its program loaded into the backing bus.Memory) before
// being handed to the debugger.
func New(c *cpu.CPU) Model {
	return Model{CPU: c}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if m.err != nil {
				return m, nil
			}
			m.prevPC = m.CPU.PC
			_, err := m.CPU.Step(func(s cpu.State) bool {
				m.last = s
				return false
			})
			if err != nil {
				m.err = err
			}
		}
	}
	return m, nil
}

const bytesPerRow = 16

// renderPage renders one 16-byte row of memory starting at start, bracketing
// the byte at the CPU's current PC.
func (m Model) renderPage(start uint16) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04X | ", start)
	for i := 0; i < bytesPerRow; i++ {
		addr := start + uint16(i)
		v := m.CPU.PeekByte(addr)
		if addr == m.CPU.PC {
			b.WriteString(currentStyle.Render(fmt.Sprintf("[%02X]", v)))
			b.WriteByte(' ')
		} else {
			fmt.Fprintf(&b, " %02X  ", v)
		}
	}
	return b.String()
}

func (m Model) pageTable() string {
	rows := []string{headerStyle.Render("addr | " + strings.Repeat(" xx  ", bytesPerRow))}
	base := m.CPU.PC &^ (bytesPerRow - 1)
	for row := -2; row <= 2; row++ {
		start := uint16(int(base) + row*bytesPerRow)
		rows = append(rows, m.renderPage(start))
	}
	return strings.Join(rows, "\n")
}

func (m Model) status() string {
	flags := []struct {
		name string
		set  bool
	}{
		{"N", m.CPU.P.Negative()},
		{"V", m.CPU.P.Overflow()},
		{"B", m.CPU.P.Break()},
		{"D", m.CPU.P.Decimal()},
		{"I", m.CPU.P.Interrupt()},
		{"Z", m.CPU.P.Zero()},
		{"C", m.CPU.P.Carry()},
	}
	var names, bits strings.Builder
	for _, f := range flags {
		fmt.Fprintf(&names, "%s ", f.name)
		if f.set {
			bits.WriteString("1 ")
		} else {
			bits.WriteString("0 ")
		}
	}

	return fmt.Sprintf(
		"PC %04X (was %04X)\nA  %02X\nX  %02X\nY  %02X\nSP %04X\nCycles %d\n\n%s\n%s",
		m.CPU.PC, m.prevPC,
		m.CPU.A, m.CPU.X, m.CPU.Y,
		m.CPU.SP, m.CPU.Cycles,
		names.String(), bits.String(),
	)
}

func (m Model) View() string {
	bottom := m.CPU.Disassemble(m.CPU.PC)
	if m.err != nil {
		bottom = errorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), "   ", m.status()),
		"",
		"next: "+bottom,
		"",
		spew.Sdump(m.last),
	)
}

// Run loads no program of its own -- the caller is expected to have placed
// one in c's memory and pointed the reset vector at it before calling this
// -- and blocks until the user quits.
func Run(c *cpu.CPU) error {
	_, err := tea.NewProgram(New(c)).Run()
	return err
}
