package ppu

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// HardwarePalette is the NES's 64-entry NTSC color palette. Palette RAM
// stores indices (0x00-0x3F) into this table; several entries are the
// unused "black" slots real 2C02 hardware also leaves unpopulated.
var HardwarePalette = [64]Color{
	{84, 84, 84}, {0, 30, 116}, {8, 16, 144}, {48, 0, 136},
	{68, 0, 100}, {92, 0, 48}, {84, 4, 0}, {60, 24, 0},
	{32, 42, 0}, {8, 58, 0}, {0, 64, 0}, {0, 60, 0},
	{0, 50, 60}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},

	{152, 150, 152}, {8, 76, 196}, {48, 50, 236}, {92, 30, 228},
	{136, 20, 176}, {160, 20, 100}, {152, 34, 32}, {120, 60, 0},
	{84, 90, 0}, {40, 114, 0}, {8, 124, 0}, {0, 118, 40},
	{0, 102, 120}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},

	{236, 238, 236}, {76, 154, 236}, {120, 124, 236}, {176, 98, 236},
	{228, 84, 236}, {236, 88, 180}, {236, 106, 100}, {212, 136, 32},
	{160, 170, 0}, {116, 196, 0}, {76, 208, 32}, {56, 204, 108},
	{56, 180, 204}, {60, 60, 60}, {0, 0, 0}, {0, 0, 0},

	{236, 238, 236}, {168, 204, 236}, {188, 188, 236}, {212, 178, 236},
	{236, 174, 236}, {236, 174, 212}, {236, 180, 176}, {228, 196, 144},
	{204, 210, 120}, {180, 222, 120}, {168, 226, 144}, {152, 226, 180},
	{160, 214, 228}, {160, 162, 160}, {0, 0, 0}, {0, 0, 0},
}

// GetColorFromPalette looks up the RGB color for a palette (0-3
// background, 4-7 sprite) and a 2-bit pixel value within it.
func (p *PPU) GetColorFromPalette(paletteIndex uint8, pixelValue uint8) Color {
	address := uint16((paletteIndex << 2) | (pixelValue & 0x03))
	colorIndex := p.ppuRead(0x3F00+address) & 0x3F
	return HardwarePalette[colorIndex]
}

// renderPixel composites the background and sprite pipelines into a single
// palette index and writes it to the frame buffer. Called for every
// on-screen dot of every visible scanline (cycles 1-256 of scanlines
// 0-239).
func (p *PPU) renderPixel() {
	x := p.cycle - 1
	y := uint16(p.scanline)
	if x >= ScreenWidth || y >= ScreenHeight {
		return
	}

	if !p.mask.IsRenderingEnabled() {
		p.frameBuffer[y*ScreenWidth+x] = p.ppuRead(0x3F00) & 0x3F
		return
	}

	bgPixel, bgPalette := p.backgroundPixel()
	spritePixel, spritePalette, spritePriority, isSprite0 := p.renderSprites(x)

	var finalPixel, finalPalette uint8
	switch {
	case bgPixel == 0 && spritePixel == 0:
		finalPixel, finalPalette = 0, 0

	case bgPixel == 0 && spritePixel > 0:
		finalPixel, finalPalette = spritePixel, spritePalette+4

	case bgPixel > 0 && spritePixel == 0:
		finalPixel, finalPalette = bgPixel, bgPalette

	default: // both opaque: priority bit decides which wins
		if spritePriority {
			finalPixel, finalPalette = spritePixel, spritePalette+4
		} else {
			finalPixel, finalPalette = bgPixel, bgPalette
		}

		// Sprite 0 hit requires both layers opaque at this dot, both
		// enabled, x != 255, and not masked out of the leftmost 8 pixels.
		if isSprite0 && x >= 1 && x < 255 &&
			p.mask.RenderBackground() && p.mask.RenderSprites() &&
			(p.mask.RenderBackgroundLeft() || x >= 8) {
			p.status.SetSprite0Hit(true)
		}
	}

	colorMask := uint8(0x3F)
	if p.mask.Grayscale() {
		colorMask = 0x30
	}
	address := uint16((finalPalette << 2) | (finalPixel & 0x03))
	p.frameBuffer[y*ScreenWidth+x] = p.ppuRead(0x3F00+address) & colorMask
}
