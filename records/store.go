// Package records keeps the best solve of every level in BadgerDB
package records

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"gopkg.in/yaml.v3"
)

const keyPrefix = "best/"

// Record is the fewest-turn solve of a level
type Record struct {
	Level    string    `yaml:"level"`
	Turns    int       `yaml:"turns"`
	SolvedAt time.Time `yaml:"solved_at"`
}

// Config selects the database location
type Config struct {
	Path     string // Directory for database files; required unless InMemory
	InMemory bool
	Logger   *slog.Logger
}

// Store is the record database
type Store struct {
	db *badger.DB
}

// Open opens or creates the record database
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent records")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create records directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger.With("component", "badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open records database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Best returns the record of a level
func (s *Store) Best(level string) (Record, bool, error) {
	var rec Record
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		r, ok, err := get(txn, level)
		rec, found = r, ok
		return err
	})
	return rec, found, err
}

// Submit stores a solve if it beats the current record
// improved reports whether the record changed
func (s *Store) Submit(level string, turns int, at time.Time) (improved bool, err error) {
	err = s.db.Update(func(txn *badger.Txn) error {
		cur, ok, err := get(txn, level)
		if err != nil {
			return err
		}
		if ok && cur.Turns <= turns {
			return nil
		}

		data, err := yaml.Marshal(&Record{Level: level, Turns: turns, SolvedAt: at.UTC()})
		if err != nil {
			return err
		}
		improved = true
		return txn.Set([]byte(keyPrefix+level), data)
	})
	return improved, err
}

// All returns every record ordered by level name
func (s *Store) All() ([]Record, error) {
	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return yaml.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}

func get(txn *badger.Txn, level string) (Record, bool, error) {
	item, err := txn.Get([]byte(keyPrefix + level))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	var rec Record
	err = item.Value(func(val []byte) error {
		return yaml.Unmarshal(val, &rec)
	})
	if err != nil {
		return Record{}, false, fmt.Errorf("decode record %s: %w", level, err)
	}
	return rec, true, nil
}

// badgerLogger routes badger's logging through slog
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
