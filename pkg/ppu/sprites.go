package ppu

// spriteEvaluation scans all 64 OAM entries against the *next* scanline
// and copies up to 8 visible ones into secondary OAM, setting the sprite
// overflow flag on the 9th hit. Runs at cycle 257 of every pre-render and
// visible scanline.
func (p *PPU) spriteEvaluation() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	p.spriteCount = 0
	p.sprite0Present = false

	if !p.mask.IsRenderingEnabled() {
		return
	}

	spriteHeight := uint16(8)
	if p.control.SpriteSize() != 0 {
		spriteHeight = 16
	}

	for i := uint8(0); i < 64; i++ {
		oamIndex := uint16(i) * 4
		spriteY := uint16(p.oam[oamIndex])

		if diff := uint16(p.scanline) - spriteY; diff < spriteHeight {
			if p.spriteCount >= 8 {
				p.status.SetSpriteOverflow(true)
				break
			}

			secondaryIndex := uint16(p.spriteCount) * 4
			copy(p.secondaryOAM[secondaryIndex:secondaryIndex+4], p.oam[oamIndex:oamIndex+4])

			if i == 0 {
				p.sprite0Present = true
			}
			p.spriteCount++
		}
	}
}

// spriteFetching fetches pattern bytes for every sprite secondary OAM
// picked up this scanline, applies vertical/horizontal flip, and loads the
// result into the per-sprite shifters renderSprites reads from. Runs at
// cycle 320, once secondary OAM for the scanline is final.
func (p *PPU) spriteFetching() {
	spriteHeight := uint16(8)
	if p.control.SpriteSize() != 0 {
		spriteHeight = 16
	}
	spritePatternTable := p.control.SpritePatternTable()

	for i := uint8(0); i < p.spriteCount; i++ {
		secondaryIndex := uint16(i) * 4
		spriteY := p.secondaryOAM[secondaryIndex+0]
		tileIndex := p.secondaryOAM[secondaryIndex+1]
		attributes := p.secondaryOAM[secondaryIndex+2]
		spriteX := p.secondaryOAM[secondaryIndex+3]

		p.spriteAttributes[i] = attributes
		p.spritePositions[i] = spriteX

		row := uint16(p.scanline) - uint16(spriteY)
		if attributes&0x80 != 0 { // vertical flip
			row = spriteHeight - 1 - row
		}

		var patternAddress uint16
		if spriteHeight == 16 {
			// 8x16: bit 0 of the tile index selects the pattern table,
			// bits 1-7 select the tile pair.
			if row < 8 {
				patternAddress = (uint16(tileIndex&0x01) << 12) | (uint16(tileIndex&0xFE) << 4) | (row & 0x07)
			} else {
				patternAddress = (uint16(tileIndex&0x01) << 12) | ((uint16(tileIndex&0xFE) + 1) << 4) | ((row - 8) & 0x07)
			}
		} else {
			patternAddress = spritePatternTable | (uint16(tileIndex) << 4) | (row & 0x07)
		}

		lo := p.ppuRead(patternAddress)
		hi := p.ppuRead(patternAddress + 8)
		if attributes&0x40 != 0 { // horizontal flip
			lo, hi = reverseByte(lo), reverseByte(hi)
		}

		p.spriteShifterPatternLo[i] = lo
		p.spriteShifterPatternHi[i] = hi
	}
}

// reverseByte reverses the bit order of a byte, used to flip a sprite row
// horizontally without re-fetching it.
func reverseByte(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

// renderSprites returns the sprite pixel, palette, priority, and
// sprite-0-ness active at screen column x, scanning shifters in OAM order
// so a lower-indexed sprite wins ties. Returns pixel 0 when no sprite
// shifter has an opaque pixel there.
func (p *PPU) renderSprites(x uint16) (pixel uint8, palette uint8, priority bool, isSprite0 bool) {
	if !p.mask.RenderSprites() {
		return 0, 0, false, false
	}
	if x < 8 && !p.mask.RenderSpritesLeft() {
		return 0, 0, false, false
	}

	for i := uint8(0); i < p.spriteCount; i++ {
		offset := int16(x) - int16(p.spritePositions[i])
		if offset < 0 || offset >= 8 {
			continue
		}

		shift := uint8(7 - offset)
		lo := (p.spriteShifterPatternLo[i] >> shift) & 0x01
		hi := (p.spriteShifterPatternHi[i] >> shift) & 0x01
		value := (hi << 1) | lo
		if value == 0 {
			continue
		}

		return value, p.spriteAttributes[i] & 0x03, (p.spriteAttributes[i] & 0x20) == 0, i == 0 && p.sprite0Present
	}

	return 0, 0, false, false
}
