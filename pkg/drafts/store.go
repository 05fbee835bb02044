// Package drafts persists in-progress form values so that a form can be
// restored after the host restarts.
package drafts

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/go-drift/formidable/pkg/form"
)

// ErrNoDraft is returned by (*Store).Load when there is no draft for a form.
var ErrNoDraft = stderrors.New("no such draft")

const bucketDrafts = "drafts"

// Store is a bbolt-backed draft store. It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Draft is a stored snapshot of a form.
type Draft struct {
	FormID  string      `json:"-"`
	Values  form.Values `json:"values"`
	Status  form.Status `json:"status"`
	SavedAt time.Time   `json:"savedAt"`
}

// Open opens or creates the store at path, creating its directory if
// needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create draft store directory: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open draft store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDrafts))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize draft store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the values and status of a form, replacing any previous draft.
// []byte values, such as uploaded images, are kept as binary.
func (s *Store) Save(formID string, values form.Values, status form.Status) error {
	data, err := json.Marshal(Draft{Values: encodeValues(values), Status: status, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode draft %q: %w", formID, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDrafts)).Put([]byte(formID), data)
	})
}

// Load returns the draft of a form. Numbers are decoded as json.Number and
// binary values as []byte.
func (s *Store) Load(formID string) (*Draft, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketDrafts)).Get([]byte(formID))
		if v == nil {
			return ErrNoDraft
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var d Draft
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode draft %q: %w", formID, err)
	}
	decodeValues(d.Values)
	d.FormID = formID
	return &d, nil
}

// Delete removes the draft of a form. Deleting a missing draft is not an
// error.
func (s *Store) Delete(formID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDrafts)).Delete([]byte(formID))
	})
}

// List returns the IDs of all stored drafts in key order.
func (s *Store) List() ([]string, error) {
	var ids []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDrafts)).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	return ids, err
}

// State returns the draft as a seed for form.Options.InitialState.
func (d *Draft) State() *form.State {
	return &form.State{Values: d.Values, Status: d.Status}
}
