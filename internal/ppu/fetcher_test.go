package ppu

import "testing"

func TestFIFOPushPop(t *testing.T) {
	var q fifo
	if q.Len() != 0 {
		t.Fatal("new fifo not empty")
	}
	for i := 0; i < 8; i++ {
		q.Push(byte(i))
	}
	if q.Len() != 8 {
		t.Fatalf("expected 8, got %d", q.Len())
	}
	for i := 0; i < 8; i++ {
		if v := q.Pop(); v != byte(i)&3 {
			t.Fatalf("got %d want %d", v, byte(i)&3)
		}
	}
	if q.Len() != 0 {
		t.Fatal("fifo should be drained")
	}
}

type mockVRAM map[uint16]byte

func (m mockVRAM) Read(addr uint16) byte { return m[addr] }

func TestBGFetcherUnsigned8000Addressing(t *testing.T) {
	mem := mockVRAM{}
	mem[0x9800] = 0 // tile index 0
	mem[0x8000] = 0x55
	mem[0x8001] = 0x33

	f := newBGFetcher(mem, true)
	f.fetch(0x9800, 0)
	if f.fifo.Len() != 8 {
		t.Fatalf("expected 8 pixels, got %d", f.fifo.Len())
	}
	lo, hi := byte(0x55), byte(0x33)
	for i := 0; i < 8; i++ {
		b := 7 - byte(i)
		want := (hi>>b)&1<<1 | (lo>>b)&1
		if got := f.fifo.Pop(); got != want {
			t.Fatalf("px %d got %d want %d", i, got, want)
		}
	}
}

func TestBGFetcherSigned9000Addressing(t *testing.T) {
	mem := mockVRAM{}
	mapBase := uint16(0x9C00)
	mem[mapBase] = 0xFF // index -1 -> tile at 0x8FF0
	fineY := byte(5)
	rowAddr := uint16(0x8FF0) + uint16(fineY)*2
	lo, hi := byte(0xA5), byte(0x5A)
	mem[rowAddr] = lo
	mem[rowAddr+1] = hi

	f := newBGFetcher(mem, false)
	f.fetch(mapBase, fineY)
	if f.fifo.Len() != 8 {
		t.Fatalf("expected 8 pixels, got %d", f.fifo.Len())
	}
	for i := 0; i < 8; i++ {
		b := 7 - byte(i)
		want := (hi>>b)&1<<1 | (lo>>b)&1
		if got := f.fifo.Pop(); got != want {
			t.Fatalf("px %d got %d want %d", i, got, want)
		}
	}
}
