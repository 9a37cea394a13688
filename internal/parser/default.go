package parser

import (
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/input"
	"git.lost.host/meutraa/beatjudge/internal/tempo"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// DefaultParser reads StepMania .sm files. Every column becomes a position
// along a single horizontal judgment line.
type DefaultParser struct{}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

func (p *DefaultParser) mapToNote(ch byte) (game.Kind, bool) {
	switch ch {
	case '1', 'F':
		return game.Instant, true
	case '2', '4':
		return game.Held, true
	}
	return 0, false
}

// ColumnX is where column i of n sits along the line.
func ColumnX(i, n int) float64 {
	return (float64(i) - float64(n-1)/2) * input.VirtualWidth / float64(n+1)
}

// decode returns the file as UTF-8. Older simfiles are often Shift-JIS.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	ret, err := io.ReadAll(transform.NewReader(strings.NewReader(string(data)), japanese.ShiftJIS.NewDecoder()))
	if nil != err {
		return "", errors.Wrap(err, "unable to decode as Shift-JIS")
	}
	return string(ret), nil
}

type smSection struct {
	difficulty game.Difficulty
	body       string
}

func (p *DefaultParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to read %s", file)
	}
	charts, err := p.Decode(data)
	if nil != err {
		return nil, errors.Wrap(err, file)
	}
	return charts, nil
}

func (p *DefaultParser) Decode(data []byte) ([]*game.Chart, error) {
	text, err := decode(data)
	if nil != err {
		return nil, err
	}

	str := strings.ReplaceAll(text, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	difficulties := []smSection{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			return nil, errors.New("truncated #NOTES header")
		}
		chartType := strings.TrimSpace(lines[1])
		chartType = strings.TrimSuffix(chartType, ":")
		nKeys, ok := game.NKeyMap[chartType]
		if !ok {
			continue
		}
		difficulties = append(difficulties, smSection{
			difficulty: game.Difficulty{
				Name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
				Level:   strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
				Columns: nKeys,
			},
			body: lines[6],
		})
	}

	title := ""
	offset := 0.0
	bpms := []tempo.Point{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		switch {
		case strings.HasPrefix(mdl, "TITLE:"):
			title = strings.TrimSuffix(strings.TrimPrefix(mdl, "TITLE:"), ";")
		case strings.HasPrefix(mdl, "OFFSET:"):
			mdl = strings.TrimPrefix(mdl, "OFFSET:")
			mdl = strings.TrimSuffix(mdl, ";")
			offs, err := strconv.ParseFloat(strings.TrimSpace(mdl), 64)
			if nil != err {
				return nil, errors.Wrap(err, "bad #OFFSET")
			}
			// beat 0 is OFFSET seconds before the song starts
			offset = -offs
		case strings.HasPrefix(mdl, "BPMS:"):
			mdl = strings.TrimPrefix(mdl, "BPMS:")
			mdl = strings.ReplaceAll(mdl, "\n", "")
			bbs := strings.Split(strings.TrimSuffix(mdl, ";"), ",")
			for _, bpm := range bbs {
				as := strings.Split(strings.TrimSpace(bpm), "=")
				if len(as) != 2 {
					return nil, errors.Errorf("bad #BPMS entry %q", bpm)
				}
				sb, err := strconv.ParseFloat(as[0], 64)
				if nil != err {
					return nil, errors.Wrap(err, "bad #BPMS beat")
				}
				bbbs, err := strconv.ParseFloat(as[1], 64)
				if nil != err {
					return nil, errors.Wrap(err, "bad #BPMS value")
				}
				bpms = append(bpms, tempo.Point{Beat: sb, BPM: bbbs})
			}
		}
	}

	charts := []*game.Chart{}
	for _, section := range difficulties {
		nKeys := int(section.difficulty.Columns)
		currentBeat := 0.0
		notes := []game.Note{}

		body := strings.TrimSpace(section.body)
		body = strings.TrimSuffix(body, ";")
		blocks := strings.Split(body, "\n,")

		for _, block := range blocks {
			lines := []string{}
			for _, l := range strings.Split(block, "\n") {
				l = strings.TrimSpace(l)
				if i := strings.Index(l, "//"); i >= 0 {
					l = strings.TrimSpace(l[:i])
				}
				l = strings.Trim(l, ",;")
				if len(l) >= nKeys {
					lines = append(lines, l)
				}
			}
			if len(lines) == 0 {
				currentBeat += 4
				continue
			}

			// Beat count is 4 per block
			beatsPerNote := 4.0 / float64(len(lines)) // 1/4, 1/8, 1/16, 1/24 etc

			for _, line := range lines {
				for col := 0; col < nKeys; col++ {
					c := line[col]
					if kind, ok := p.mapToNote(c); ok {
						notes = append(notes, game.Note{
							Kind:      kind,
							StartBeat: currentBeat,
							EndBeat:   currentBeat,
							PositionX: ColumnX(col, nKeys),
							IsFake:    c == 'F',
							Above:     true,
						})
					} else if c == '3' {
						// close the last head in this column
						x := ColumnX(col, nKeys)
						for j := len(notes) - 1; j >= 0; j-- {
							if notes[j].PositionX == x && notes[j].Kind == game.Held {
								notes[j].EndBeat = currentBeat
								break
							}
						}
					}
				}
				currentBeat += beatsPerNote
			}
		}

		chart := &game.Chart{
			Title:      title,
			Difficulty: section.difficulty,
			OffsetSec:  offset,
			Tempo:      bpms,
			Notes:      notes,
		}
		if err := chart.Validate(); nil != err {
			return nil, errors.Wrapf(err, "%s %s", section.difficulty.Name, section.difficulty.Level)
		}
		charts = append(charts, chart)
	}

	return charts, nil
}
