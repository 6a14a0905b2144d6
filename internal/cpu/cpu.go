// Package cpu implements the SM83 fetch/decode/execute loop: the
// non-prefixed and CB-prefixed instruction tables, cycle accounting in
// M-cycles, and interrupt servicing.
package cpu

import (
	"github.com/FabianRolfMatthiasNoll/GameBoyEmulator/internal/interrupt"
	"github.com/FabianRolfMatthiasNoll/GameBoyEmulator/internal/register"
)

// Memory is the bus contract the CPU needs: byte-addressed reads/writes,
// the interrupt-enable/flag registers, and interrupt acknowledgement. A
// *bus.Bus satisfies this without the cpu package importing bus directly.
type Memory interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
	IE() byte
	IF() byte
	AcknowledgeInterrupt(s interrupt.Source)
}

// Config adjusts behavior the spec leaves as an implementation choice.
type Config struct {
	// HaltOnUndefined makes an undefined opcode panic-free but halted
	// (diagnostic stop) instead of the default treat-as-NOP policy.
	HaltOnUndefined bool
}

// CPU is the SM83 interpreter: register file, interrupt-master-enable
// state, and the bus it fetches from and executes against.
type CPU struct {
	reg register.File

	ime     bool
	eiDelay int // instructions remaining before EI's pending enable takes effect
	halted  bool

	bus Memory
	cfg Config
}

// New builds a CPU wired to mem, with registers at their DMG power-on
// values.
func New(mem Memory) *CPU {
	c := &CPU{bus: mem}
	c.reg.Reset()
	return c
}

// NewWithConfig is New with explicit undefined-opcode behavior.
func NewWithConfig(mem Memory, cfg Config) *CPU {
	c := New(mem)
	c.cfg = cfg
	return c
}

// SetPC overrides the program counter; used by tests and boot-ROM setup.
func (c *CPU) SetPC(pc uint16) { c.reg.PC = pc }

// ResetForBootROM zeroes every register so execution can start at 0x0000
// and let the staged boot ROM establish the post-boot hand-off state
// itself, instead of New's power-on values.
func (c *CPU) ResetForBootROM() {
	c.reg = register.File{}
	c.ime = false
	c.eiDelay = 0
	c.halted = false
}

// PC returns the current program counter.
func (c *CPU) PC() uint16 { return c.reg.PC }

// Registers exposes the register file read-only for tests/tools.
func (c *CPU) Registers() register.File { return c.reg }

// Halted reports whether the CPU is in the HALT state.
func (c *CPU) Halted() bool { return c.halted }

// IME reports the interrupt-master-enable flag.
func (c *CPU) IME() bool { return c.ime }

// Step executes one instruction, or services one pending interrupt, and
// returns the number of M-cycles consumed.
func (c *CPU) Step() int {
	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.ime = true
		}
	}

	if c.halted {
		if interrupt.AnyPending(c.bus.IE(), c.bus.IF()) {
			c.halted = false
		} else {
			return 1
		}
	}

	if c.ime {
		if src, ok := interrupt.Pending(c.bus.IE(), c.bus.IF()); ok {
			return c.serviceInterrupt(src)
		}
	}

	op := c.fetch8()
	if op == 0xCB {
		return c.executeCB(c.fetch8())
	}
	return c.execute(op)
}

func (c *CPU) serviceInterrupt(src interrupt.Source) int {
	c.ime = false
	c.bus.AcknowledgeInterrupt(src)
	c.push16(c.reg.PC)
	c.reg.PC = src.Vector()
	return 5
}

func (c *CPU) fetch8() byte {
	v := c.bus.Read(c.reg.PC)
	c.reg.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) fetchSigned8() int8 { return int8(c.fetch8()) }

func (c *CPU) push16(v uint16) {
	c.reg.SP--
	c.bus.Write(c.reg.SP, byte(v>>8))
	c.reg.SP--
	c.bus.Write(c.reg.SP, byte(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.bus.Read(c.reg.SP)
	c.reg.SP++
	hi := c.bus.Read(c.reg.SP)
	c.reg.SP++
	return uint16(lo) | uint16(hi)<<8
}

// getR8/setR8 index the 8-bit operand table B,C,D,E,H,L,(HL),A that both
// the main and CB-prefixed decoders use for r[y]/r[z].
func (c *CPU) getR8(idx byte) byte {
	switch idx {
	case 0:
		return c.reg.B
	case 1:
		return c.reg.C
	case 2:
		return c.reg.D
	case 3:
		return c.reg.E
	case 4:
		return c.reg.H
	case 5:
		return c.reg.L
	case 6:
		return c.bus.Read(c.reg.HL())
	default:
		return c.reg.A
	}
}

func (c *CPU) setR8(idx byte, v byte) {
	switch idx {
	case 0:
		c.reg.B = v
	case 1:
		c.reg.C = v
	case 2:
		c.reg.D = v
	case 3:
		c.reg.E = v
	case 4:
		c.reg.H = v
	case 5:
		c.reg.L = v
	case 6:
		c.bus.Write(c.reg.HL(), v)
	default:
		c.reg.A = v
	}
}

func isHLIdx(idx byte) bool { return idx == 6 }

// getRP/setRP index the BC,DE,HL,SP register-pair table selected by p.
func (c *CPU) getRP(p byte) uint16 {
	switch p {
	case 0:
		return c.reg.BC()
	case 1:
		return c.reg.DE()
	case 2:
		return c.reg.HL()
	default:
		return c.reg.SP
	}
}

func (c *CPU) setRP(p byte, v uint16) {
	switch p {
	case 0:
		c.reg.SetBC(v)
	case 1:
		c.reg.SetDE(v)
	case 2:
		c.reg.SetHL(v)
	default:
		c.reg.SP = v
	}
}

// getRP2/setRP2 index the BC,DE,HL,AF table PUSH/POP use.
func (c *CPU) getRP2(p byte) uint16 {
	switch p {
	case 0:
		return c.reg.BC()
	case 1:
		return c.reg.DE()
	case 2:
		return c.reg.HL()
	default:
		return c.reg.AF()
	}
}

func (c *CPU) setRP2(p byte, v uint16) {
	switch p {
	case 0:
		c.reg.SetBC(v)
	case 1:
		c.reg.SetDE(v)
	case 2:
		c.reg.SetHL(v)
	default:
		c.reg.SetAF(v)
	}
}

// condTrue evaluates the four-entry condition-code table NZ,Z,NC,C.
func (c *CPU) condTrue(idx byte) bool {
	switch idx {
	case 0:
		return !c.reg.Flag(register.FlagZ)
	case 1:
		return c.reg.Flag(register.FlagZ)
	case 2:
		return !c.reg.Flag(register.FlagC)
	default:
		return c.reg.Flag(register.FlagC)
	}
}

// execute dispatches a non-prefixed opcode by its x/y/z/p/q octal fields.
func (c *CPU) execute(op byte) int {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return c.execX0(op, y, z, p, q)
	case 1:
		return c.execX1(y, z)
	case 2:
		return c.execX2(y, z)
	default:
		return c.execX3(op, y, z, p, q)
	}
}
