package cpu

import "github.com/FabianRolfMatthiasNoll/GameBoyEmulator/internal/register"

// execX0 handles the x=0 family: NOP/STOP/JR, 16-bit LD/ADD/INC/DEC on
// register pairs, (BC)/(DE)/(HLI)/(HLD) A transfers, 8-bit INC/DEC/LD r,d8,
// and the accumulator/flag rotate-and-misc group.
func (c *CPU) execX0(op, y, z, p, q byte) int {
	switch z {
	case 0:
		switch {
		case y == 0: // NOP
			return 1
		case y == 1: // LD (a16),SP
			addr := c.fetch16()
			c.bus.Write(addr, byte(c.reg.SP))
			c.bus.Write(addr+1, byte(c.reg.SP>>8))
			return 5
		case y == 2: // STOP
			c.fetch8()
			return 1
		case y == 3: // JR d8
			d := c.fetchSigned8()
			c.reg.PC = uint16(int32(c.reg.PC) + int32(d))
			return 3
		default: // JR cc,d8
			d := c.fetchSigned8()
			if c.condTrue(y - 4) {
				c.reg.PC = uint16(int32(c.reg.PC) + int32(d))
				return 3
			}
			return 2
		}

	case 1:
		if q == 0 { // LD rp[p],d16
			c.setRP(p, c.fetch16())
			return 3
		}
		c.addHL16(c.getRP(p)) // ADD HL,rp[p]
		return 2

	case 2:
		addr := c.reg.HL()
		if q == 0 {
			switch p {
			case 0:
				c.bus.Write(c.reg.BC(), c.reg.A)
			case 1:
				c.bus.Write(c.reg.DE(), c.reg.A)
			case 2:
				c.bus.Write(addr, c.reg.A)
				c.reg.SetHL(addr + 1)
			default:
				c.bus.Write(addr, c.reg.A)
				c.reg.SetHL(addr - 1)
			}
		} else {
			switch p {
			case 0:
				c.reg.A = c.bus.Read(c.reg.BC())
			case 1:
				c.reg.A = c.bus.Read(c.reg.DE())
			case 2:
				c.reg.A = c.bus.Read(addr)
				c.reg.SetHL(addr + 1)
			default:
				c.reg.A = c.bus.Read(addr)
				c.reg.SetHL(addr - 1)
			}
		}
		return 2

	case 3:
		if q == 0 {
			c.setRP(p, c.getRP(p)+1)
		} else {
			c.setRP(p, c.getRP(p)-1)
		}
		return 2

	case 4: // INC r[y]
		if isHLIdx(y) {
			c.bus.Write(c.reg.HL(), c.inc8(c.bus.Read(c.reg.HL())))
			return 3
		}
		c.setR8(y, c.inc8(c.getR8(y)))
		return 1

	case 5: // DEC r[y]
		if isHLIdx(y) {
			c.bus.Write(c.reg.HL(), c.dec8(c.bus.Read(c.reg.HL())))
			return 3
		}
		c.setR8(y, c.dec8(c.getR8(y)))
		return 1

	case 6: // LD r[y],d8
		v := c.fetch8()
		if isHLIdx(y) {
			c.bus.Write(c.reg.HL(), v)
			return 3
		}
		c.setR8(y, v)
		return 2

	default: // z==7: rotate-A / DAA / CPL / SCF / CCF
		switch y {
		case 0:
			c.reg.A = c.rlc(c.reg.A)
			c.reg.SetFlag(register.FlagZ, false)
		case 1:
			c.reg.A = c.rrc(c.reg.A)
			c.reg.SetFlag(register.FlagZ, false)
		case 2:
			c.reg.A = c.rl(c.reg.A)
			c.reg.SetFlag(register.FlagZ, false)
		case 3:
			c.reg.A = c.rr(c.reg.A)
			c.reg.SetFlag(register.FlagZ, false)
		case 4:
			c.daa()
		case 5:
			c.reg.A = ^c.reg.A
			c.reg.SetFlag(register.FlagN, true)
			c.reg.SetFlag(register.FlagH, true)
		case 6:
			c.reg.SetFlag(register.FlagN, false)
			c.reg.SetFlag(register.FlagH, false)
			c.reg.SetFlag(register.FlagC, true)
		default:
			c.reg.SetFlag(register.FlagN, false)
			c.reg.SetFlag(register.FlagH, false)
			c.reg.SetFlag(register.FlagC, !c.reg.Flag(register.FlagC))
		}
		return 1
	}
}

// execX1 handles the x=1 family: LD r[y],r[z], with HALT at the (HL),(HL)
// slot that would otherwise be LD (HL),(HL).
func (c *CPU) execX1(y, z byte) int {
	if y == 6 && z == 6 {
		c.halted = true
		return 1
	}
	v := c.getR8(z)
	c.setR8(y, v)
	if isHLIdx(y) || isHLIdx(z) {
		return 2
	}
	return 1
}

// execX2 handles the x=2 family: ALU op[y] A,r[z].
func (c *CPU) execX2(y, z byte) int {
	c.aluOp(y, c.getR8(z))
	if isHLIdx(z) {
		return 2
	}
	return 1
}

// execX3 handles the x=3 family: conditional/unconditional RET/JP/CALL,
// PUSH/POP, the LDH/(C) I/O forms, RST, DI/EI, and ALU op[y] A,d8.
func (c *CPU) execX3(op, y, z, p, q byte) int {
	switch z {
	case 0:
		switch {
		case y <= 3: // RET cc[y]
			if c.condTrue(y) {
				c.reg.PC = c.pop16()
				return 5
			}
			return 2
		case y == 4: // LDH (a8),A
			addr := 0xFF00 + uint16(c.fetch8())
			c.bus.Write(addr, c.reg.A)
			return 3
		case y == 5: // ADD SP,d8
			d := c.fetchSigned8()
			res, h, cy := c.addSPSigned(d)
			c.reg.SetFlag(register.FlagZ, false)
			c.reg.SetFlag(register.FlagN, false)
			c.reg.SetFlag(register.FlagH, h)
			c.reg.SetFlag(register.FlagC, cy)
			c.reg.SP = res
			return 4
		case y == 6: // LDH A,(a8)
			addr := 0xFF00 + uint16(c.fetch8())
			c.reg.A = c.bus.Read(addr)
			return 3
		default: // LD HL,SP+d8
			d := c.fetchSigned8()
			res, h, cy := c.addSPSigned(d)
			c.reg.SetFlag(register.FlagZ, false)
			c.reg.SetFlag(register.FlagN, false)
			c.reg.SetFlag(register.FlagH, h)
			c.reg.SetFlag(register.FlagC, cy)
			c.reg.SetHL(res)
			return 3
		}

	case 1:
		if q == 0 { // POP rp2[p]
			c.setRP2(p, c.pop16())
			return 3
		}
		switch p {
		case 0: // RET
			c.reg.PC = c.pop16()
			return 4
		case 1: // RETI
			c.reg.PC = c.pop16()
			c.ime = true
			c.eiDelay = 0
			return 4
		case 2: // JP (HL)
			c.reg.PC = c.reg.HL()
			return 1
		default: // LD SP,HL
			c.reg.SP = c.reg.HL()
			return 2
		}

	case 2:
		switch {
		case y <= 3: // JP cc[y],a16
			addr := c.fetch16()
			if c.condTrue(y) {
				c.reg.PC = addr
				return 4
			}
			return 3
		case y == 4: // LD (C),A
			c.bus.Write(0xFF00+uint16(c.reg.C), c.reg.A)
			return 2
		case y == 5: // LD (a16),A
			c.bus.Write(c.fetch16(), c.reg.A)
			return 4
		case y == 6: // LD A,(C)
			c.reg.A = c.bus.Read(0xFF00 + uint16(c.reg.C))
			return 2
		default: // LD A,(a16)
			c.reg.A = c.bus.Read(c.fetch16())
			return 4
		}

	case 3:
		switch y {
		case 0: // JP a16
			c.reg.PC = c.fetch16()
			return 4
		case 1: // CB prefix handled in Step; unreachable here
			return 1
		case 6: // DI
			c.ime = false
			c.eiDelay = 0
			return 1
		case 7: // EI
			c.eiDelay = 2
			return 1
		default: // undefined opcode (0xD3,0xDB,0xE3,0xEB)
			return c.undefined()
		}

	case 4:
		if y <= 3 { // CALL cc[y],a16
			addr := c.fetch16()
			if c.condTrue(y) {
				c.push16(c.reg.PC)
				c.reg.PC = addr
				return 6
			}
			return 3
		}
		return c.undefined() // 0xE4,0xEC,0xF4,0xFC

	case 5:
		if q == 0 { // PUSH rp2[p]
			c.push16(c.getRP2(p))
			return 4
		}
		if p == 0 { // CALL a16
			addr := c.fetch16()
			c.push16(c.reg.PC)
			c.reg.PC = addr
			return 6
		}
		return c.undefined() // 0xDD,0xED,0xFD

	case 6: // ALU op[y] A,d8
		c.aluOp(y, c.fetch8())
		return 2

	default: // RST y*8
		c.push16(c.reg.PC)
		c.reg.PC = uint16(y) * 8
		return 4
	}
}

// undefined implements the configured policy for opcodes the SM83 never
// defines: by default a 1-cycle no-op, or a diagnostic halt when
// HaltOnUndefined is set.
func (c *CPU) undefined() int {
	if c.cfg.HaltOnUndefined {
		c.halted = true
	}
	return 1
}

// executeCB dispatches a CB-prefixed opcode: rotate/shift, BIT, RES, SET on
// the r[z] operand table, all keyed by the opcode's x/y/z fields.
func (c *CPU) executeCB(op byte) int {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7

	switch x {
	case 0: // rotate/shift group
		v := c.getR8(z)
		var res byte
		switch y {
		case 0:
			res = c.rlc(v)
		case 1:
			res = c.rrc(v)
		case 2:
			res = c.rl(v)
		case 3:
			res = c.rr(v)
		case 4:
			res = c.sla(v)
		case 5:
			res = c.sra(v)
		case 6:
			res = c.swap(v)
		default:
			res = c.srl(v)
		}
		c.setR8(z, res)
		if isHLIdx(z) {
			return 4
		}
		return 2

	case 1: // BIT y,r[z]
		v := c.getR8(z)
		c.reg.SetFlag(register.FlagZ, v&(1<<y) == 0)
		c.reg.SetFlag(register.FlagN, false)
		c.reg.SetFlag(register.FlagH, true)
		if isHLIdx(z) {
			return 3
		}
		return 2

	case 2: // RES y,r[z]
		c.setR8(z, c.getR8(z)&^(1<<y))
		if isHLIdx(z) {
			return 4
		}
		return 2

	default: // SET y,r[z]
		c.setR8(z, c.getR8(z)|(1<<y))
		if isHLIdx(z) {
			return 4
		}
		return 2
	}
}
