package store

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"daidelog/internal/domain"
)

var (
	bucketGames = []byte("games")
	bucketMeta  = []byte("meta")
)

// BoltStore is the catalog of converted games, keyed by source log path.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketGames, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type gameMeta struct {
	Output      string `json:"output"`
	ModTime     int64  `json:"mod_time"`
	ConvertedAt int64  `json:"converted_at"`
	Phases      int    `json:"phases"`
	Moves       int    `json:"moves"`
	Messages    int    `json:"messages"`
	Status      string `json:"status,omitempty"`
}

func toMeta(rec domain.GameRecord) gameMeta {
	return gameMeta{
		Output:      rec.Output,
		ModTime:     rec.ModTime.UnixNano(),
		ConvertedAt: rec.ConvertedAt.Unix(),
		Phases:      rec.Phases,
		Moves:       rec.Moves,
		Messages:    rec.Messages,
		Status:      rec.Status,
	}
}

func (m gameMeta) record(source string) domain.GameRecord {
	return domain.GameRecord{
		Source:      source,
		Output:      m.Output,
		ModTime:     time.Unix(0, m.ModTime),
		ConvertedAt: time.Unix(m.ConvertedAt, 0),
		Phases:      m.Phases,
		Moves:       m.Moves,
		Messages:    m.Messages,
		Status:      m.Status,
	}
}

func (s *BoltStore) PutGame(rec domain.GameRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(toMeta(rec))
		if err != nil {
			return err
		}
		return tx.Bucket(bucketGames).Put([]byte(rec.Source), data)
	})
}

// GetGame returns the record for source and whether it exists.
func (s *BoltStore) GetGame(source string) (domain.GameRecord, bool, error) {
	var rec domain.GameRecord
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketGames).Get([]byte(source))
		if data == nil {
			return nil
		}
		var meta gameMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("corrupt record for %s: %w", source, err)
		}
		rec = meta.record(source)
		found = true
		return nil
	})
	return rec, found, err
}

func (s *BoltStore) DeleteGame(source string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketGames).Delete([]byte(source))
	})
}

// ListGames returns every record ordered by source path.
func (s *BoltStore) ListGames() ([]domain.GameRecord, error) {
	var recs []domain.GameRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketGames).ForEach(func(k, v []byte) error {
			var meta gameMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return fmt.Errorf("corrupt record for %s: %w", k, err)
			}
			recs = append(recs, meta.record(string(k)))
			return nil
		})
	})
	return recs, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
