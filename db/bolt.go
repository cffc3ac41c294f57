package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/user/vidnotes/notes"
)

var bucketVideoNotes = []byte("video_notes")

// BoltStore implements notes.Persistence in a bbolt file. Each video is one key
// whose value is the JSON array of its notes.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens or creates the bbolt database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("bolt store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVideoNotes)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the database file.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get implements notes.Persistence.
func (s *BoltStore) Get(_ context.Context, videoID string) ([]notes.Note, bool, error) {
	var result []notes.Note
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketVideoNotes).Get([]byte(videoID))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &result)
	})
	if err != nil {
		return nil, false, fmt.Errorf("read notes for %s: %w", videoID, err)
	}
	return result, found, nil
}

// Set implements notes.Persistence.
func (s *BoltStore) Set(_ context.Context, videoID string, list []notes.Note) error {
	if list == nil {
		list = []notes.Note{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVideoNotes).Put([]byte(videoID), data)
	})
}

// Delete implements notes.Persistence.
func (s *BoltStore) Delete(_ context.Context, videoID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVideoNotes).Delete([]byte(videoID))
	})
}

// Videos implements notes.Persistence. Keys iterate in byte order.
func (s *BoltStore) Videos(_ context.Context) ([]string, error) {
	ids := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVideoNotes).ForEach(func(k, v []byte) error {
			if string(v) == "[]" {
				return nil
			}
			ids = append(ids, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return ids, nil
}
