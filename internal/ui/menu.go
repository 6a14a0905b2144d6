package ui

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var mainMenuItems = []string{"Load ROM", "Settings", "Keybindings", "Close"}

// updateMenu dispatches to the handler for the currently active menu screen.
func (a *App) updateMenu() {
	switch a.menuMode {
	case "rom":
		a.updateROMMenu()
	case "keys":
		a.updateKeysMenu()
	case "settings":
		a.updateSettingsMenu()
	default:
		a.updateMainMenu()
	}
}

func (a *App) updateMainMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		a.menuIdx = (a.menuIdx + 1) % len(mainMenuItems)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		a.menuIdx = (a.menuIdx - 1 + len(mainMenuItems)) % len(mainMenuItems)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		switch mainMenuItems[a.menuIdx] {
		case "Load ROM":
			a.romList = a.findROMs()
			a.romSel, a.romOff = 0, 0
			a.menuMode = "rom"
		case "Settings":
			a.settingsOff = 0
			a.menuMode = "settings"
		case "Keybindings":
			a.menuMode = "keys"
		case "Close":
			if a.m.ROMPath() != "" {
				a.showMenu = false
			}
		}
	}
}

func (a *App) updateROMMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if a.m.ROMPath() != "" {
			a.menuMode = "main"
		}
		return
	}
	if len(a.romList) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		a.romSel = (a.romSel + 1) % len(a.romList)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		a.romSel = (a.romSel - 1 + len(a.romList)) % len(a.romList)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		path := a.romList[a.romSel]
		if err := a.m.LoadROMFromFile(path); err == nil {
			a.updateWindowTitle()
			a.showMenu = false
			a.menuMode = "main"
			a.toast("Loaded " + filepath.Base(path))
		} else {
			a.toast("Load failed: " + err.Error())
		}
	}
}

func (a *App) updateKeysMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.menuMode = "main"
	}
}

var settingsItems = []string{"Scale", "ROMs Dir", "Back"}

func (a *App) updateSettingsMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.menuMode = "main"
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		a.settingsOff = (a.settingsOff + 1) % len(settingsItems)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		a.settingsOff = (a.settingsOff - 1 + len(settingsItems)) % len(settingsItems)
	}
	left := inpututil.IsKeyJustPressed(ebiten.KeyLeft)
	right := inpututil.IsKeyJustPressed(ebiten.KeyRight)
	enter := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyZ)
	switch settingsItems[a.settingsOff] {
	case "Scale":
		if left && a.cfg.Scale > 1 {
			a.cfg.Scale--
			ebiten.SetWindowSize(160*a.cfg.Scale, 144*a.cfg.Scale)
		}
		if right && a.cfg.Scale < 8 {
			a.cfg.Scale++
			ebiten.SetWindowSize(160*a.cfg.Scale, 144*a.cfg.Scale)
		}
	case "Back":
		if enter {
			a.saveSettings()
			a.menuMode = "main"
		}
	}
}

// drawMenu renders whichever menu screen is active over the dimmed frame.
func (a *App) drawMenu(screen *ebiten.Image) {
	switch a.menuMode {
	case "rom":
		a.drawROMMenu(screen)
	case "keys":
		a.drawKeysMenu(screen)
	case "settings":
		a.drawSettingsMenu(screen)
	default:
		a.drawMainMenu(screen)
	}
}

func (a *App) drawMainMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "gbemu", 8, 8)
	for i, item := range mainMenuItems {
		prefix := "  "
		if i == a.menuIdx {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+item, 8, 28+i*14)
	}
}

func (a *App) drawROMMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Load ROM (Esc to cancel)", 8, 8)
	if len(a.romList) == 0 {
		ebitenutil.DebugPrintAt(screen, "No .gb files found in "+a.cfg.ROMsDir, 8, 28)
		return
	}
	const visible = 8
	start := a.romOff
	if a.romSel < start {
		start = a.romSel
	}
	if a.romSel >= start+visible {
		start = a.romSel - visible + 1
	}
	a.romOff = start
	max := a.maxCharsForText(10)
	for i := start; i < len(a.romList) && i < start+visible; i++ {
		prefix := "  "
		if i == a.romSel {
			prefix = "> "
		}
		name := filepath.Base(a.romList[i])
		ebitenutil.DebugPrintAt(screen, prefix+a.truncateText(name, max), 8, 24+(i-start)*14)
	}
}

func (a *App) drawKeysMenu(screen *ebiten.Image) {
	lines := []string{
		"Arrows: D-Pad   Z: A   X: B",
		"Enter: Start    RShift: Select",
		"P: Pause   N: Step (paused)",
		"Tab: Hold Fast   F6/F7: Turbo -/+",
		"F4: Toggle Frame Skip",
		"R: Reset   B: Reset+BootROM",
		"F8: Stats   F11: Fullscreen",
		"F12: Screenshot   Esc: Menu",
	}
	ebitenutil.DebugPrintAt(screen, "Keybindings (Esc/Enter to close)", 8, 8)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 8, 26+i*12)
	}
}

func (a *App) drawSettingsMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Settings (Esc to close)", 8, 8)
	vals := []string{
		fmt.Sprintf("%d", a.cfg.Scale),
		a.truncateText(a.cfg.ROMsDir, a.maxCharsForText(60)),
		"",
	}
	for i, item := range settingsItems {
		prefix := "  "
		if i == a.settingsOff {
			prefix = "> "
		}
		line := prefix + item
		if vals[i] != "" {
			line += ": " + vals[i]
		}
		ebitenutil.DebugPrintAt(screen, line, 8, 26+i*14)
	}
}
