package score

import (
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/beatjudge/internal/game"
)

func TestStoreRoundTrip(t *testing.T) {
	s := &DefaultStore{Path: filepath.Join(t.TempDir(), "scores.db")}
	if err := s.Init(); nil != err {
		t.Fatal(err)
	}
	defer s.Deinit()

	sum := Sum([]byte("chart"))
	first := Calculate(judged(2, game.Perfect, game.Miss))
	second := Calculate(judged(2, game.Perfect, game.Perfect))
	for _, snap := range []Snapshot{first, second} {
		if err := s.Save(sum, "Hard", snap); nil != err {
			t.Fatal(err)
		}
	}
	if err := s.Save(Sum([]byte("other")), "Easy", first); nil != err {
		t.Fatal(err)
	}

	results, err := s.Load(sum)
	if nil != err {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("%d results, want 2", len(results))
	}
	if results[0].Snapshot != second || results[1].Snapshot != first {
		t.Errorf("results out of order: %+v", results)
	}
	if results[0].Difficulty != "Hard" || results[0].Sum != sum {
		t.Errorf("result %+v", results[0])
	}
}

func TestSumIsStable(t *testing.T) {
	if Sum([]byte("a")) != Sum([]byte("a")) || Sum([]byte("a")) == Sum([]byte("b")) {
		t.Error("sum is not a content hash")
	}
}
