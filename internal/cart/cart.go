// Package cart owns the immutable cartridge ROM bytes, the parsed header,
// and the mapper that translates CPU addresses in 0x0000-0x7FFF and
// 0xA000-0xBFFF into ROM/external-RAM bytes.
package cart

// Mapper is the address-translation contract the Bus depends on. Every
// concrete cartridge type (ROM-only, MBC1, MBC3, MBC5) implements it the
// same way: Read/Write take CPU addresses, not bank-relative offsets.
type Mapper interface {
	// Read returns a byte for ROM (0x0000-0x7FFF) or external RAM (0xA000-0xBFFF).
	Read(addr uint16) byte
	// Write handles bank-select control writes (0x0000-0x7FFF) and external
	// RAM writes (0xA000-0xBFFF).
	Write(addr uint16, value byte)
}

// BatteryBacked is implemented by mappers with persistable external RAM.
// This core doesn't drive persistence itself; the interface lets a host
// load/save it without reshaping any mapper.
type BatteryBacked interface {
	SaveRAM() []byte
	LoadRAM(data []byte)
}

// New picks a Mapper implementation from the ROM's header cartridge-type
// byte. Cartridges with a header too short or malformed to parse fall back
// to ROM-only rather than failing: a malformed header is not a reason to
// refuse booting a ROM that otherwise decodes fine.
func New(rom []byte) Mapper {
	h, err := ParseHeader(rom)
	if err != nil {
		return NewROMOnly(rom)
	}
	switch h.CartType {
	case 0x00:
		return NewROMOnly(rom)
	case 0x01, 0x02, 0x03:
		return NewMBC1(rom, h.RAMSizeBytes)
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return NewMBC3(rom, h.RAMSizeBytes)
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return NewMBC5(rom, h.RAMSizeBytes)
	default:
		return NewROMOnly(rom)
	}
}
