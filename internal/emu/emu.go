// Package emu wires the CPU, bus, and cartridge into the frame-paced loop
// a host drives: load a ROM, step whole frames, and read back the
// framebuffer, joypad, and serial surfaces.
package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/FabianRolfMatthiasNoll/GameBoyEmulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/GameBoyEmulator/internal/cart"
	"github.com/FabianRolfMatthiasNoll/GameBoyEmulator/internal/cpu"
)

// Buttons is the host-facing joypad state for one frame.
type Buttons struct {
	A, B, Start, Select   bool
	Up, Down, Left, Right bool
}

func (b Buttons) mask() byte {
	var m byte
	if b.Right {
		m |= bus.JoypRight
	}
	if b.Left {
		m |= bus.JoypLeft
	}
	if b.Up {
		m |= bus.JoypUp
	}
	if b.Down {
		m |= bus.JoypDown
	}
	if b.A {
		m |= bus.JoypA
	}
	if b.B {
		m |= bus.JoypB
	}
	if b.Select {
		m |= bus.JoypSelectBtn
	}
	if b.Start {
		m |= bus.JoypStart
	}
	return m
}

// maxStepsPerFrame bounds a single StepFrame call so a ROM that never
// reaches VBlank (LCD disabled, runaway HALT loop) can't hang the host.
const maxStepsPerFrame = 1_000_000

// Machine is the Context that owns one running Game Boy instance: the bus,
// the CPU stepping it, and the cartridge/boot-ROM it was loaded from.
type Machine struct {
	cfg Config

	bus *bus.Bus
	cpu *cpu.CPU

	romPath string
	header  *cart.Header
	bootROM []byte
}

// New builds an unloaded Machine; LoadCartridge/LoadROMFromFile wires a ROM
// in before StepFrame can usefully run.
func New(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// SetBootROM stages boot ROM bytes used by the next LoadCartridge or
// ResetWithBoot call.
func (m *Machine) SetBootROM(data []byte) {
	if len(data) >= 0x100 {
		m.bootROM = data
	}
}

// LoadCartridge wires a fresh bus and CPU around rom. If a boot ROM is
// staged (via SetBootROM or the boot parameter) the CPU starts at 0x0000
// with every register zeroed, letting the boot ROM establish the
// post-boot hand-off state itself; otherwise the CPU starts directly at
// the DMG power-on register values. A ROM whose header is too short or
// whose header checksum does not match is rejected with an error.
func (m *Machine) LoadCartridge(rom []byte, boot []byte) error {
	h, err := cart.ParseHeader(rom)
	if err != nil {
		return fmt.Errorf("parse ROM header: %w", err)
	}
	if !cart.HeaderChecksumOK(rom) {
		return fmt.Errorf("ROM header checksum mismatch")
	}
	if len(boot) >= 0x100 {
		m.bootROM = boot
	}

	b := bus.New(rom)
	c := cpu.NewWithConfig(b, cpu.Config{HaltOnUndefined: m.cfg.HaltOnUndefinedOpcode})
	if len(m.bootROM) >= 0x100 {
		b.SetBootROM(m.bootROM)
		c.ResetForBootROM()
	}

	m.header = h
	m.bus = b
	m.cpu = c
	return nil
}

// LoadROMFromFile reads path and loads it as the cartridge, recording the
// path for save-RAM and window-title use.
func (m *Machine) LoadROMFromFile(path string) error {
	rom, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := m.LoadCartridge(rom, nil); err != nil {
		return err
	}
	m.romPath = path
	return nil
}

// ROMPath returns the path LoadROMFromFile was last called with, or "".
func (m *Machine) ROMPath() string { return m.romPath }

// ROMTitle returns the cartridge header's title, or "" if no ROM is loaded.
func (m *Machine) ROMTitle() string {
	if m.header == nil {
		return ""
	}
	return m.header.Title
}

// Header returns the parsed cartridge header, or nil if no ROM is loaded.
func (m *Machine) Header() *cart.Header { return m.header }

// ResetPostBoot restarts the currently loaded cartridge directly at the
// DMG power-on register values, bypassing any staged boot ROM.
func (m *Machine) ResetPostBoot() {
	if m.bus == nil {
		return
	}
	m.cpu = cpu.NewWithConfig(m.bus, cpu.Config{HaltOnUndefined: m.cfg.HaltOnUndefinedOpcode})
}

// ResetWithBoot restarts execution from 0x0000 through the staged boot ROM.
func (m *Machine) ResetWithBoot() {
	if m.bus == nil || len(m.bootROM) < 0x100 {
		return
	}
	m.bus.SetBootROM(m.bootROM)
	m.cpu = cpu.NewWithConfig(m.bus, cpu.Config{HaltOnUndefined: m.cfg.HaltOnUndefinedOpcode})
	m.cpu.ResetForBootROM()
}

// SetButtons replaces the joypad state for the next CPU steps.
func (m *Machine) SetButtons(b Buttons) {
	if m.bus == nil {
		return
	}
	m.bus.SetJoypadState(b.mask())
}

// SetSerialWriter routes bytes written to the serial port (FF01/FF02) to w;
// used by test-ROM harnesses that report pass/fail over serial.
func (m *Machine) SetSerialWriter(w io.Writer) {
	if m.bus != nil {
		m.bus.SetSerialWriter(w)
	}
}

// LoadBattery restores external RAM from data if the loaded mapper supports
// battery-backed save RAM. Returns false if there's nothing to load onto.
func (m *Machine) LoadBattery(data []byte) bool {
	if m.bus == nil {
		return false
	}
	bb, ok := m.bus.Cart().(cart.BatteryBacked)
	if !ok {
		return false
	}
	bb.LoadRAM(data)
	return true
}

// SaveBattery returns the current external RAM contents if the loaded
// mapper supports battery-backed save RAM.
func (m *Machine) SaveBattery() ([]byte, bool) {
	if m.bus == nil {
		return nil, false
	}
	bb, ok := m.bus.Cart().(cart.BatteryBacked)
	if !ok {
		return nil, false
	}
	return bb.SaveRAM(), true
}

// StepFrame runs the CPU until a fresh frame is available in the
// framebuffer (the CPU-step/timer/LCD fan-out, repeated until
// VBlank), or until maxStepsPerFrame instructions have run.
func (m *Machine) StepFrame() {
	if m.cpu == nil || m.bus == nil {
		return
	}
	for i := 0; i < maxStepsPerFrame; i++ {
		mCycles := m.cpu.Step()
		m.bus.Tick(mCycles * 4)
		if m.bus.FrameReady() {
			return
		}
	}
}

// StepFrameNoRender is StepFrame under a different name for callers (test
// harnesses driving serial-output ROMs) that don't care about the
// framebuffer but want the same per-frame pacing.
func (m *Machine) StepFrameNoRender() { m.StepFrame() }

// Framebuffer returns the most recently rendered RGBA frame, or nil if no
// ROM has produced one yet.
func (m *Machine) Framebuffer() []byte {
	if m.bus == nil {
		return nil
	}
	return m.bus.Framebuffer()
}
