package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type DefaultStore struct {
	Path string
	Log  *zap.Logger

	db *sql.DB
}

// Sum identifies a chart by the hash of its source bytes.
func Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultStore) Init() error {
	if nil == s.Log {
		s.Log = zap.NewNop()
	}
	path := s.Path
	if path == "" {
		path = "./scores.db"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", path)
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  sum text,
		  difficulty text,
		  played_at integer,
		  snapshot blob
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create results table")
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultStore) Save(sum string, difficulty string, snapshot Snapshot) error {
	data, err := json.Marshal(snapshot)
	if nil != err {
		return errors.Wrap(err, "unable to marshal snapshot")
	}
	_, err = s.db.Exec(
		"insert into results(sum, difficulty, played_at, snapshot) values(?, ?, ?, ?)",
		sum, difficulty, time.Now().UnixNano(), data,
	)
	if nil != err {
		return errors.Wrap(err, "unable to save result")
	}
	s.Log.Debug("saved result", zap.String("sum", sum), zap.Int("score", snapshot.Score))
	return nil
}

func (s *DefaultStore) Load(sum string) ([]Result, error) {
	results := []Result{}
	rows, err := s.db.Query(
		"select sum, difficulty, played_at, snapshot from results where sum = ? order by played_at desc, id desc",
		sum,
	)
	if nil != err {
		return results, errors.Wrap(err, "unable to load results")
	}
	defer rows.Close()
	for rows.Next() {
		var r Result
		var playedAt int64
		var data []byte
		if err := rows.Scan(&r.Sum, &r.Difficulty, &playedAt, &data); nil != err {
			return results, errors.Wrap(err, "unable to scan result")
		}
		if err := json.Unmarshal(data, &r.Snapshot); nil != err {
			s.Log.Warn("unable to unmarshal result", zap.Error(err))
			continue
		}
		r.PlayedAt = time.Unix(0, playedAt)
		results = append(results, r)
	}
	return results, rows.Err()
}
