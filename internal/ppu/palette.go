package ppu

// systemPalette is the fixed set of four RGBA shades a DMG colour id maps
// to after going through BGP, from near-white to near-black. The exact hex
// values are a display choice, not part of any wire format.
var systemPalette = [4][4]byte{
	{0xE0, 0xF8, 0xD0, 0xFF},
	{0x88, 0xC0, 0x70, 0xFF},
	{0x34, 0x68, 0x56, 0xFF},
	{0x08, 0x18, 0x20, 0xFF},
}

// applyBGP maps a 2-bit colour id through the BGP palette register, which
// packs four 2-bit shade selections (id 0 in bits 1-0, id 1 in bits 3-2,
// and so on).
func applyBGP(bgp, colorID byte) byte {
	return (bgp >> (colorID * 2)) & 0x03
}

func (p *PPU) renderFrame() {
	if p.lcdc&0x01 == 0 {
		blank := systemPalette[0]
		for i := 0; i < ScreenWidth*ScreenHeight; i++ {
			copy(p.fb[i*4:i*4+4], blank[:])
		}
		return
	}

	mapBase := uint16(0x9800)
	if p.lcdc&0x08 != 0 {
		mapBase = 0x9C00
	}
	tileData8000 := p.lcdc&0x10 != 0

	for y := 0; y < ScreenHeight; y++ {
		row := RenderBGScanline(p, mapBase, tileData8000, p.scx, p.scy, byte(y))
		for x := 0; x < ScreenWidth; x++ {
			shade := applyBGP(p.bgp, row[x])
			rgba := systemPalette[shade]
			off := (y*ScreenWidth + x) * 4
			copy(p.fb[off:off+4], rgba[:])
		}
	}
}

// Read implements VRAMReader against the live VRAM array, bypassing the
// CPU-facing mode gating in CPURead: the renderer runs once per frame at
// VBlank entry, after mode 3 contention no longer applies.
func (p *PPU) Read(addr uint16) byte {
	if addr >= 0x8000 && addr <= 0x9FFF {
		return p.vram[addr-0x8000]
	}
	return 0xFF
}
