// Package emu provides functional R3000A emulation.
package emu

// IRQLine is the external interrupt request line, sampled between
// instructions. Implementations are typically the masked output of a
// platform interrupt controller; Pending reports the current level.
type IRQLine interface {
	Pending() bool
}

// StaticLine is a manually driven interrupt line for test harnesses and
// bring-up tools that have no interrupt controller model.
type StaticLine struct {
	asserted bool
}

// Assert raises the line.
func (l *StaticLine) Assert() {
	l.asserted = true
}

// Deassert lowers the line.
func (l *StaticLine) Deassert() {
	l.asserted = false
}

// Pending reports the line level.
func (l *StaticLine) Pending() bool {
	return l.asserted
}
