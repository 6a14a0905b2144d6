package ppu

// RenderBGScanline decodes 160 background colour indices (0-3) for
// scanline ly, applying SCX/SCY wraparound over the 32x32-tile, 256x256
// pixel background plane. mem supplies raw VRAM bytes; mapBase is 0x9800
// or 0x9C00 per LCDC bit 3; tileData8000 is LCDC bit 4.
func RenderBGScanline(mem VRAMReader, mapBase uint16, tileData8000 bool, scx, scy, ly byte) [ScreenWidth]byte {
	var out [ScreenWidth]byte

	bgY := uint16(ly) + uint16(scy)
	fineY := byte(bgY & 7)
	mapRow := (bgY >> 3) & 31

	fineX := int(scx & 7)
	tileCol := uint16(scx>>3) & 31

	f := newBGFetcher(mem, tileData8000)
	f.fetch(mapBase+mapRow*32+tileCol, fineY)
	for i := 0; i < fineX; i++ {
		f.fifo.Pop()
	}

	for x := 0; x < ScreenWidth; x++ {
		if f.fifo.Len() == 0 {
			tileCol = (tileCol + 1) & 31
			f.fetch(mapBase+mapRow*32+tileCol, fineY)
		}
		out[x] = f.fifo.Pop()
	}
	return out
}
