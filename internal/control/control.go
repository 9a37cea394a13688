package control

import (
	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Kind uint8

const (
	TogglePause Kind = iota
	Seek
	Quit
)

// Seek steps in seconds. Terminals do not report shift on its own, so the
// fine step has its own keys.
const (
	Step     = 5.0
	FineStep = 0.1
)

// Command is what a key press asks of the player.
type Command struct {
	Kind    Kind
	StepSec float64 // for Seek, negative is backwards
}

// FromKey maps a key press to a command.
func FromKey(ev keyboard.KeyEvent) (Command, bool) {
	switch ev.Key {
	case keyboard.KeySpace, keyboard.KeyEsc:
		return Command{Kind: TogglePause}, true
	case keyboard.KeyArrowLeft:
		return Command{Kind: Seek, StepSec: -Step}, true
	case keyboard.KeyArrowRight:
		return Command{Kind: Seek, StepSec: Step}, true
	case keyboard.KeyCtrlC:
		return Command{Kind: Quit}, true
	}
	switch ev.Rune {
	case ',', '<':
		return Command{Kind: Seek, StepSec: -FineStep}, true
	case '.', '>':
		return Command{Kind: Seek, StepSec: FineStep}, true
	case 'q':
		return Command{Kind: Quit}, true
	}
	return Command{}, false
}

// Keyboard reads commands from the terminal.
type Keyboard struct {
	keys <-chan keyboard.KeyEvent
	log  *zap.Logger
}

func Open(log *zap.Logger) (*Keyboard, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	return &Keyboard{keys: keys, log: log}, nil
}

// Poll returns the commands pressed since the last call without blocking.
func (k *Keyboard) Poll() []Command {
	var cmds []Command
	for i := 0; i < len(k.keys); i++ {
		key := <-k.keys
		if nil != key.Err {
			k.log.Warn("unable to read key", zap.Error(key.Err))
			continue
		}
		if cmd, ok := FromKey(key); ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (k *Keyboard) Close() error {
	return errors.Wrap(keyboard.Close(), "unable to close keyboard")
}
