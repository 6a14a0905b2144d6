package ppu

import "testing"

func TestRenderBGScanline_SCXOffsetAndTileWrap(t *testing.T) {
	mapBase := uint16(0x9800)
	mem := mockVRAM{}
	fineY := byte(0)
	for tile := 0; tile < 32; tile++ {
		mem[mapBase+uint16(tile)] = byte(tile)
		base := uint16(0x8000+tile*16) + uint16(fineY)*2
		mem[base] = byte(tile)
		mem[base+1] = ^byte(tile)
	}

	out := RenderBGScanline(mem, mapBase, true, 5, 0, 0)

	lo0, hi0 := byte(0), ^byte(0)
	for i := 0; i < 3; i++ {
		b := 2 - byte(i)
		want := (hi0>>b)&1<<1 | (lo0>>b)&1
		if out[i] != want {
			t.Fatalf("px %d got %d want %d", i, out[i], want)
		}
	}
	lo1, hi1 := byte(1), ^byte(1)
	for i := 0; i < 8; i++ {
		b := 7 - byte(i)
		want := (hi1>>b)&1<<1 | (lo1>>b)&1
		if out[3+i] != want {
			t.Fatalf("tile1 px %d got %d want %d", i, out[3+i], want)
		}
	}
}

func TestRenderBGScanline_SCYRowSelectAndMapWrap(t *testing.T) {
	mapBase := uint16(0x9800)
	mem := mockVRAM{}
	fineY := byte(3) // ly=0, scy=11 -> bgY=11 -> mapRow=1, fineY=3

	mem[mapBase+32+0] = 0
	mem[mapBase+32+1] = 1
	base0 := uint16(0x8000) + uint16(fineY)*2
	mem[base0] = 0x12
	mem[base0+1] = 0x34
	base1 := uint16(0x8000+16) + uint16(fineY)*2
	mem[base1] = 0x56
	mem[base1+1] = 0x78

	out := RenderBGScanline(mem, mapBase, true, 0, 11, 0)

	lo0, hi0 := byte(0x12), byte(0x34)
	for i := 0; i < 8; i++ {
		b := 7 - byte(i)
		want := (hi0>>b)&1<<1 | (lo0>>b)&1
		if out[i] != want {
			t.Fatalf("tile0 px %d got %d want %d", i, out[i], want)
		}
	}
	lo1, hi1 := byte(0x56), byte(0x78)
	for i := 0; i < 8; i++ {
		b := 7 - byte(i)
		want := (hi1>>b)&1<<1 | (lo1>>b)&1
		if out[8+i] != want {
			t.Fatalf("tile1 px %d got %d want %d", i, out[8+i], want)
		}
	}
}

func TestRenderFrame_LCDOffYieldsBlankFramebuffer(t *testing.T) {
	p := New(&irqLog{})
	p.CPUWrite(0xFF47, 0xE4)
	p.renderFrame()
	fb := p.Framebuffer()
	want := systemPalette[0]
	for i := 0; i < ScreenWidth*ScreenHeight; i++ {
		off := i * 4
		for c := 0; c < 4; c++ {
			if fb[off+c] != want[c] {
				t.Fatalf("pixel %d channel %d got %d want %d", i, c, fb[off+c], want[c])
			}
		}
	}
}

func TestRenderFrame_ProducesFullBuffer(t *testing.T) {
	p := New(&irqLog{})
	p.CPUWrite(0xFF40, 0x91) // LCD on, BG on, 0x8000 addressing, 0x9800 map
	p.CPUWrite(0xFF47, 0xE4) // identity-ish BGP
	// fill tile 0 with colour id 3 everywhere (lo=hi=0xFF)
	for row := 0; row < 8; row++ {
		p.vram[0x0000+row*2] = 0xFF
		p.vram[0x0001+row*2] = 0xFF
	}
	p.renderFrame()
	fb := p.Framebuffer()
	want := systemPalette[applyBGP(0xE4, 3)]
	for c := 0; c < 4; c++ {
		if fb[c] != want[c] {
			t.Fatalf("top-left pixel channel %d got %d want %d", c, fb[c], want[c])
		}
	}
}
