package control

import (
	"testing"

	"github.com/eiannone/keyboard"
)

func TestFromKey(t *testing.T) {
	tests := map[string]struct {
		key  keyboard.KeyEvent
		want Command
	}{
		"space":       {keyboard.KeyEvent{Key: keyboard.KeySpace}, Command{Kind: TogglePause}},
		"escape":      {keyboard.KeyEvent{Key: keyboard.KeyEsc}, Command{Kind: TogglePause}},
		"left":        {keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, Command{Kind: Seek, StepSec: -5}},
		"right":       {keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, Command{Kind: Seek, StepSec: 5}},
		"fine back":   {keyboard.KeyEvent{Rune: ','}, Command{Kind: Seek, StepSec: -0.1}},
		"fine ahead":  {keyboard.KeyEvent{Rune: '>'}, Command{Kind: Seek, StepSec: 0.1}},
		"quit":        {keyboard.KeyEvent{Rune: 'q'}, Command{Kind: Quit}},
		"interrupted": {keyboard.KeyEvent{Key: keyboard.KeyCtrlC}, Command{Kind: Quit}},
	}
	for name, tt := range tests {
		got, ok := FromKey(tt.key)
		if !ok || got != tt.want {
			t.Errorf("%s: %+v %v, want %+v", name, got, ok, tt.want)
		}
	}
}

func TestFromKeyIgnoresOthers(t *testing.T) {
	for _, r := range "azQ1" {
		if cmd, ok := FromKey(keyboard.KeyEvent{Rune: r}); ok {
			t.Errorf("%q mapped to %+v", r, cmd)
		}
	}
	if _, ok := FromKey(keyboard.KeyEvent{Key: keyboard.KeyArrowUp}); ok {
		t.Error("up arrow mapped")
	}
}
