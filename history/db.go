// Package history records every Portfile update seaport prepares, so a
// pull request can be sent later and past runs can be reviewed.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"go-seaport/checksums"
)

// Bucket names for the bbolt database
const (
	BucketUpdates = "updates"
	BucketPorts   = "ports"
)

// Update statuses
const (
	StatusRunning   = "running"
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusSubmitted = "submitted"
)

// DB wraps a bbolt database of update records
type DB struct {
	db   *bolt.DB
	path string
}

// UpdateRecord is one seaport run against a port.
type UpdateRecord struct {
	UUID     string `json:"uuid"`
	Port     string `json:"port"`
	Category string `json:"category"`
	IsNew    bool   `json:"is_new,omitempty"`

	OldVersion string        `json:"old_version"`
	NewVersion string        `json:"new_version"`
	Old        checksums.Set `json:"old"`
	New        checksums.Set `json:"new"`

	// Contents is the patched Portfile
	Contents string `json:"contents,omitempty"`

	Lint    bool `json:"lint"`
	Test    bool `json:"test"`
	Install bool `json:"install"`

	Status      string    `json:"status"`
	Reason      string    `json:"reason,omitempty"`
	PullRequest string    `json:"pull_request,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// Duration is the wall time of the run, zero while it is running.
func (r *UpdateRecord) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

// OpenDB opens or creates the database at path, creating parent
// directories and buckets as needed.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}

	bdb, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{BucketUpdates, BucketPorts} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return &DatabaseError{Op: "create bucket", Bucket: name, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}

	return &DB{db: bdb, path: path}, nil
}

// Path returns the database file location.
func (db *DB) Path() string { return db.path }

// Close closes the database. It is safe to call Close multiple times.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	err := db.db.Close()
	db.db = nil
	return err
}

func bucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(name))
	if b == nil {
		return nil, &DatabaseError{Op: "get bucket", Bucket: name, Err: ErrBucketNotFound}
	}
	return b, nil
}

// SaveRecord stores rec under its UUID. Successful and submitted records
// also become the port's latest update.
func (db *DB) SaveRecord(rec *UpdateRecord) error {
	if rec.UUID == "" {
		return &ValidationError{Field: "record.UUID", Err: ErrEmptyUUID}
	}
	if rec.Port == "" {
		return &ValidationError{Field: "record.Port", Err: ErrEmptyPort}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return &RecordError{Op: "marshal", UUID: rec.UUID, Err: err}
	}

	err = db.db.Update(func(tx *bolt.Tx) error {
		updates, err := bucket(tx, BucketUpdates)
		if err != nil {
			return err
		}
		if err := updates.Put([]byte(rec.UUID), data); err != nil {
			return err
		}
		return indexPort(tx, rec)
	})
	if err != nil {
		return &RecordError{Op: "save", UUID: rec.UUID, Err: err}
	}
	return nil
}

func indexPort(tx *bolt.Tx, rec *UpdateRecord) error {
	if rec.Status != StatusSuccess && rec.Status != StatusSubmitted {
		return nil
	}
	ports, err := bucket(tx, BucketPorts)
	if err != nil {
		return err
	}
	return ports.Put([]byte(rec.Port), []byte(rec.UUID))
}

// GetRecord retrieves a record by UUID.
func (db *DB) GetRecord(uuid string) (*UpdateRecord, error) {
	if uuid == "" {
		return nil, &ValidationError{Field: "uuid", Err: ErrEmptyUUID}
	}

	var rec UpdateRecord
	err := db.db.View(func(tx *bolt.Tx) error {
		updates, err := bucket(tx, BucketUpdates)
		if err != nil {
			return err
		}
		data := updates.Get([]byte(uuid))
		if data == nil {
			return &RecordError{Op: "get", UUID: uuid, Err: ErrRecordNotFound}
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Modify applies fn to the stored record in a single transaction.
func (db *DB) Modify(uuid string, fn func(rec *UpdateRecord)) error {
	if uuid == "" {
		return &ValidationError{Field: "uuid", Err: ErrEmptyUUID}
	}

	err := db.db.Update(func(tx *bolt.Tx) error {
		updates, err := bucket(tx, BucketUpdates)
		if err != nil {
			return err
		}
		data := updates.Get([]byte(uuid))
		if data == nil {
			return ErrRecordNotFound
		}

		var rec UpdateRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		fn(&rec)

		updated, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		if err := updates.Put([]byte(uuid), updated); err != nil {
			return err
		}
		return indexPort(tx, &rec)
	})
	if err != nil {
		return &RecordError{Op: "update", UUID: uuid, Err: err}
	}
	return nil
}

// LatestFor returns the most recent successful update of a port, or nil
// when there is none.
func (db *DB) LatestFor(port string) (*UpdateRecord, error) {
	if port == "" {
		return nil, &ValidationError{Field: "port", Err: ErrEmptyPort}
	}

	var rec *UpdateRecord
	err := db.db.View(func(tx *bolt.Tx) error {
		ports, err := bucket(tx, BucketPorts)
		if err != nil {
			return err
		}
		uuid := ports.Get([]byte(port))
		if uuid == nil {
			return nil
		}

		updates, err := bucket(tx, BucketUpdates)
		if err != nil {
			return err
		}
		data := updates.Get(uuid)
		if data == nil {
			return &RecordError{Op: "latest", UUID: string(uuid), Err: ErrOrphanedRecord}
		}

		rec = &UpdateRecord{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns records newest first. An empty port lists every port;
// limit <= 0 means no limit.
func (db *DB) List(port string, limit int) ([]*UpdateRecord, error) {
	var recs []*UpdateRecord
	err := db.db.View(func(tx *bolt.Tx) error {
		updates, err := bucket(tx, BucketUpdates)
		if err != nil {
			return err
		}
		return updates.ForEach(func(k, v []byte) error {
			var rec UpdateRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return &RecordError{Op: "unmarshal", UUID: string(k), Err: err}
			}
			if port == "" || rec.Port == port {
				recs = append(recs, &rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].StartTime.After(recs[j].StartTime)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}
