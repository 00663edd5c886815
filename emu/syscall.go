// Package emu provides functional R3000A emulation.
package emu

import (
	"fmt"
	"io"
)

// Argument registers of the syscall convention.
const (
	regV0 = 2
	regA0 = 4
)

// SyscallResult describes how a SYSCALL instruction was disposed of.
type SyscallResult struct {
	// Handled is true when a host debug service consumed the call.
	// When false the core raises the architectural syscall exception
	// so the guest's own handler runs.
	Handled bool
}

// SyscallHandler intercepts SYSCALL instructions before they trap.
type SyscallHandler interface {
	Handle() SyscallResult
}

// DefaultSyscallHandler implements the host debug services, selected by
// the low 16 bits of v0:
//
//	0xFF00  print a0 as unsigned decimal and hex
//	0xFF02  write the low byte of a0
//	0xFF03  write the NUL-terminated string at a0 (capped at 1 KiB)
//
// The 16-bit comparison tolerates loaders that materialize the selector
// with a sign-extending ADDIU. Every other selector is left to the
// architectural trap.
type DefaultSyscallHandler struct {
	regFile *RegFile
	lsu     *LoadStoreUnit
	stdout  io.Writer
}

// NewDefaultSyscallHandler creates a syscall handler writing to the
// given output stream.
func NewDefaultSyscallHandler(regFile *RegFile, lsu *LoadStoreUnit, stdout io.Writer) *DefaultSyscallHandler {
	return &DefaultSyscallHandler{regFile: regFile, lsu: lsu, stdout: stdout}
}

// Handle dispatches on v0 and reports whether the call was consumed.
func (h *DefaultSyscallHandler) Handle() SyscallResult {
	switch h.regFile.ReadReg(regV0) & 0xFFFF {
	case 0xFF00:
		v := h.regFile.ReadReg(regA0)
		fmt.Fprintf(h.stdout, "%d (0x%08X)\n", v, v)
		return SyscallResult{Handled: true}

	case 0xFF02:
		h.stdout.Write([]byte{byte(h.regFile.ReadReg(regA0))})
		return SyscallResult{Handled: true}

	case 0xFF03:
		h.printString(h.regFile.ReadReg(regA0))
		return SyscallResult{Handled: true}
	}

	return SyscallResult{}
}

// printString copies guest memory to the output until a NUL, an
// unreadable address, or the length cap.
func (h *DefaultSyscallHandler) printString(addr uint32) {
	var buf []byte
	for i := uint32(0); i < 1024; i++ {
		v, fault := h.lsu.LoadByteUnsigned(addr + i)
		if fault != nil || v == 0 {
			break
		}
		buf = append(buf, byte(v))
	}
	h.stdout.Write(buf)
}
