// SPDX-License-Identifier: MIT

// Package store persists a friendship graph and its latest score snapshot in
// a single bbolt file, so `connect` and `serve` survive restarts.
//
// Layout (one bucket each):
//
//	nodes   key = NodeID (8 bytes, order-preserving)      value = empty
//	edges   key = From‖To (16 bytes, From < To)            value = empty
//	meta    key = "scores"                                 value = JSON Snapshot
//
// The snapshot always describes the stored graph: any write that changes the
// graph deletes it in the same transaction.
//
// Keys encode identifiers so that a cursor walks them in ascending order,
// which keeps LoadGraph deterministic.
package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/pagerank"
)

// Sentinel errors.
var (
	// ErrNotFound is returned by LoadScores when no snapshot was saved yet.
	ErrNotFound = errors.New("store: not found")

	// ErrCorrupt is returned when stored bytes cannot be decoded.
	ErrCorrupt = errors.New("store: corrupt record")
)

var (
	bucketNodes = []byte("nodes")
	bucketEdges = []byte("edges")
	bucketMeta  = []byte("meta")
	keyScores   = []byte("scores")
)

const (
	fileMode    = 0o600
	openTimeout = time.Second
)

// Snapshot is the persisted outcome of one PageRank run.
type Snapshot struct {
	Scores     pagerank.ScoreMap `json:"scores"`
	Iterations int               `json:"iterations"`
	Converged  bool              `json:"converged"`
	ComputedAt time.Time         `json:"computed_at"`
}

// Store wraps an open bbolt database.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, fileMode, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketNodes, bucketEdges, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// SaveGraph replaces the stored graph with g in one transaction and drops
// the score snapshot of the previous graph.
func (s *Store) SaveGraph(g *core.Graph) error {
	nodes := g.Nodes()
	edges := g.Edges()

	return s.db.Update(func(tx *bbolt.Tx) error {
		nb, err := resetBucket(tx, bucketNodes)
		if err != nil {
			return err
		}
		for _, id := range nodes {
			if err = nb.Put(nodeKey(id), nil); err != nil {
				return err
			}
		}

		eb, err := resetBucket(tx, bucketEdges)
		if err != nil {
			return err
		}
		for _, e := range edges {
			if err = eb.Put(edgeKey(e.From, e.To), nil); err != nil {
				return err
			}
		}

		return tx.Bucket(bucketMeta).Delete(keyScores)
	})
}

// AddEdge records one friendship (and its endpoints) without rewriting the
// whole graph. a and b are normalized so the key matches SaveGraph's.
// A new friendship drops the score snapshot; re-adding a stored one keeps it.
func (s *Store) AddEdge(a, b core.NodeID) error {
	if a > b {
		a, b = b, a
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		eb := tx.Bucket(bucketEdges)
		key := edgeKey(a, b)
		if k, _ := eb.Cursor().Seek(key); bytes.Equal(k, key) {
			return nil
		}

		nb := tx.Bucket(bucketNodes)
		if err := nb.Put(nodeKey(a), nil); err != nil {
			return err
		}
		if err := nb.Put(nodeKey(b), nil); err != nil {
			return err
		}
		if err := eb.Put(key, nil); err != nil {
			return err
		}

		return tx.Bucket(bucketMeta).Delete(keyScores)
	})
}

// RemoveEdge deletes one friendship. Both endpoints stay stored. Removing a
// friendship that was never stored is a no-op; otherwise the score snapshot
// is dropped.
func (s *Store) RemoveEdge(a, b core.NodeID) error {
	if a > b {
		a, b = b, a
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		eb := tx.Bucket(bucketEdges)
		key := edgeKey(a, b)
		if k, _ := eb.Cursor().Seek(key); !bytes.Equal(k, key) {
			return nil
		}
		if err := eb.Delete(key); err != nil {
			return err
		}

		return tx.Bucket(bucketMeta).Delete(keyScores)
	})
}

// LoadGraph rebuilds the stored graph. An empty store yields an empty graph.
func (s *Store) LoadGraph() (*core.Graph, error) {
	g := core.NewGraph()
	err := s.db.View(func(tx *bbolt.Tx) error {
		err := tx.Bucket(bucketNodes).ForEach(func(k, _ []byte) error {
			id, ok := decodeNode(k)
			if !ok {
				return fmt.Errorf("%w: node key %x", ErrCorrupt, k)
			}
			g.AddNode(id)
			return nil
		})
		if err != nil {
			return err
		}

		return tx.Bucket(bucketEdges).ForEach(func(k, _ []byte) error {
			if len(k) != 16 {
				return fmt.Errorf("%w: edge key %x", ErrCorrupt, k)
			}
			a, _ := decodeNode(k[:8])
			b, _ := decodeNode(k[8:])
			if _, err := g.Connect(a, b); err != nil {
				return fmt.Errorf("%w: edge %d-%d: %w", ErrCorrupt, a, b, err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// SaveScores stores snap as the latest snapshot.
func (s *Store) SaveScores(snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: encode snapshot: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(keyScores, raw)
	})
}

// LoadScores returns the latest snapshot or ErrNotFound.
func (s *Store) LoadScores() (*Snapshot, error) {
	var snap *Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketMeta).Get(keyScores)
		if raw == nil {
			return ErrNotFound
		}
		snap = &Snapshot{}
		if err := json.Unmarshal(raw, snap); err != nil {
			return fmt.Errorf("%w: scores: %w", ErrCorrupt, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// resetBucket drops and recreates name inside tx.
func resetBucket(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
		return nil, err
	}

	return tx.CreateBucket(name)
}

// nodeKey flips the sign bit so big-endian byte order matches int64 order.
func nodeKey(id core.NodeID) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id)^(1<<63))

	return k
}

func edgeKey(a, b core.NodeID) []byte {
	return append(nodeKey(a), nodeKey(b)...)
}

func decodeNode(k []byte) (core.NodeID, bool) {
	if len(k) != 8 {
		return 0, false
	}

	return core.NodeID(binary.BigEndian.Uint64(k) ^ (1 << 63)), true
}
