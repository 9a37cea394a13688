package parser

import (
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"github.com/pkg/errors"
)

var ErrUnknownFormat = errors.New("unknown chart format")

type Parser interface {
	Parse(file string) ([]*game.Chart, error)
}

// ForFile picks a parser by file extension.
func ForFile(file string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".sm":
		return &DefaultParser{}, nil
	case ".json":
		return &JSONParser{}, nil
	}
	return nil, errors.Wrap(ErrUnknownFormat, file)
}
