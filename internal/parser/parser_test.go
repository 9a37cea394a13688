package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.lost.host/meutraa/beatjudge/internal/game"
	"git.lost.host/meutraa/beatjudge/internal/testdata"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func TestParseSM(t *testing.T) {
	p := &DefaultParser{}
	charts, err := p.Decode(testdata.ChartSM)
	if nil != err {
		t.Fatal(err)
	}
	if len(charts) != 1 {
		t.Fatalf("%d charts, want 1 (pump-single is skipped)", len(charts))
	}
	c := charts[0]
	if c.Title != "Fixture" || c.Difficulty.Name != "Hard" || c.Difficulty.Level != "9" || c.OffsetSec != 0.5 {
		t.Errorf("chart %+v", c)
	}
	if len(c.Tempo) != 2 || c.Tempo[1].Beat != 8 || c.Tempo[1].BPM != 240 {
		t.Errorf("tempo %+v", c.Tempo)
	}

	expected := []game.Note{
		{Kind: game.Instant, StartBeat: 0, EndBeat: 0, PositionX: ColumnX(0, 4)},
		{Kind: game.Instant, StartBeat: 1, EndBeat: 1, PositionX: ColumnX(1, 4)},
		{Kind: game.Instant, StartBeat: 2, EndBeat: 2, PositionX: ColumnX(2, 4)},
		{Kind: game.Instant, StartBeat: 3, EndBeat: 3, PositionX: ColumnX(3, 4)},
		{Kind: game.Held, StartBeat: 4, EndBeat: 6, PositionX: ColumnX(0, 4)},
		{Kind: game.Instant, StartBeat: 7, EndBeat: 7, PositionX: ColumnX(0, 4), IsFake: true},
	}
	if len(c.Notes) != len(expected) {
		t.Fatalf("%d notes, want %d", len(c.Notes), len(expected))
	}
	for i, n := range c.Notes {
		n.Above = false
		if n != expected[i] {
			t.Log("note    ", i, n)
			t.Log("expected", i, expected[i])
			t.Fail()
		}
	}
	if c.NoteCount() != 5 {
		t.Errorf("NoteCount = %d, want 5", c.NoteCount())
	}
}

func TestColumnX(t *testing.T) {
	if ColumnX(0, 4) != -405 || ColumnX(3, 4) != 405 || ColumnX(1, 4)+ColumnX(2, 4) != 0 {
		t.Errorf("columns %v %v %v %v", ColumnX(0, 4), ColumnX(1, 4), ColumnX(2, 4), ColumnX(3, 4))
	}
}

func TestParseShiftJIS(t *testing.T) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, japanese.ShiftJIS.NewEncoder())
	sm := strings.Replace(string(testdata.ChartSM), "#TITLE:Fixture;", "#TITLE:東方;", 1)
	if _, err := w.Write([]byte(sm)); nil != err {
		t.Fatal(err)
	}
	if err := w.Close(); nil != err {
		t.Fatal(err)
	}

	charts, err := (&DefaultParser{}).Decode(buf.Bytes())
	if nil != err {
		t.Fatal(err)
	}
	if charts[0].Title != "東方" {
		t.Errorf("title %q", charts[0].Title)
	}
}

func TestParseSMErrors(t *testing.T) {
	tests := map[string]string{
		"bad offset": "#OFFSET:abc;\n",
		"bad bpms":   "#BPMS:0=;\n",
		"no tempo":   "#OFFSET:0;\n#NOTES:\n dance-single:\n a:\n Hard:\n 1:\n 0:\n1000\n;\n",
		"header":     "#BPMS:0=120;\n#NOTES:\n dance-single:\n",
	}
	for name, sm := range tests {
		if _, err := (&DefaultParser{}).Decode([]byte(sm)); nil == err {
			t.Errorf("%s: accepted", name)
		}
	}
}

func TestParseJSON(t *testing.T) {
	c, err := (&JSONParser{}).Decode(testdata.ChartJSON)
	if nil != err {
		t.Fatal(err)
	}
	if c.Title != "Fixture" || len(c.Lines) != 2 || len(c.Notes) != 8 || c.NoteCount() != 7 {
		t.Errorf("chart %q lines %d notes %d", c.Title, len(c.Lines), len(c.Notes))
	}
	if n := c.Notes[0]; n.EndBeat != n.StartBeat {
		t.Errorf("instant note end %v", n.EndBeat)
	}
	if n := c.Notes[2]; n.Kind != game.Held || n.EndBeat != 8 {
		t.Errorf("held note %+v", n)
	}
	if c.Lines[0].Extended == nil || len(c.Lines[0].Extended.Color) != 1 {
		t.Errorf("extended %+v", c.Lines[0].Extended)
	}
}

func TestParseJSONRejects(t *testing.T) {
	_, err := (&JSONParser{}).Decode([]byte(`{"bpm":[{"beat":0,"bpm":120}],"notes":[{"type":2,"startBeat":4,"endBeat":2}]}`))
	if errors.Cause(err) != game.ErrNoteSpan {
		t.Errorf("got %v, want %v", err, game.ErrNoteSpan)
	}
}

func TestForFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.JSON")
	if err := os.WriteFile(path, testdata.ChartJSON, 0o644); nil != err {
		t.Fatal(err)
	}
	p, err := ForFile(path)
	if nil != err {
		t.Fatal(err)
	}
	charts, err := p.Parse(path)
	if nil != err || len(charts) != 1 {
		t.Fatalf("charts %v err %v", charts, err)
	}
	if _, err := ForFile("song.ogg"); errors.Cause(err) != ErrUnknownFormat {
		t.Errorf("got %v", err)
	}
}
