// Package knowledge is the local embedded replacement for the teacher's
// routing-vector cache (services/trace/agent/routing/router_cache.go):
// same idea — BadgerDB over a network vector service, because the
// corpus here is a few hundred example commands, not millions of
// documents, so brute-force cosine similarity over vectors pulled from
// an embedded KV store is strictly simpler and has no availability
// dependency (spec §6, knowledge base).
package knowledge

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"math"
	"sort"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// recordKeyPrefix namespaces every stored example under one key prefix,
// versioned so a future encoding change cannot collide with v1 records.
const recordKeyPrefix = "knowledge/example/v1/"

// Example is one retrievable (goal, command) pair plus its embedding.
type Example struct {
	Goal    string
	Command string
	Vector  []float32
}

// Options configures a Store.
type Options struct {
	// Dir is the BadgerDB data directory.
	Dir string
	// Embedder computes a vector for a piece of text. Defaults to
	// FallbackEmbedder when nil (no network embedding model available).
	Embedder Embedder
	// Threshold is a reserved minimum-similarity cutoff. It is not yet
	// enforced: search currently always returns its top-k candidates
	// regardless of score, matching the source behavior the spec leaves
	// unspecified on this point. Kept here so a future revision can wire
	// it without changing the Store's public shape.
	Threshold float32
}

// Embedder turns text into a fixed-size embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Store is a badger-backed, brute-force-search local knowledge base.
type Store struct {
	db       *badger.DB
	embedder Embedder
}

// Open opens (creating if needed) the BadgerDB store at opts.Dir.
func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Dir).WithLogger(nil)
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("knowledge: opening store: %w", err)
	}
	embedder := opts.Embedder
	if embedder == nil {
		embedder = FallbackEmbedder{}
	}
	return &Store{db: db, embedder: embedder}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add embeds goal and persists the (goal, command) pair under a key
// derived from goal, overwriting any existing entry for the same goal.
func (s *Store) Add(ctx context.Context, goal, command string) error {
	vec, err := s.embedder.Embed(ctx, goal)
	if err != nil {
		return fmt.Errorf("knowledge: embedding example: %w", err)
	}
	rec := Example{Goal: goal, Command: command, Vector: vec}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return fmt.Errorf("knowledge: encoding example: %w", err)
	}

	key := []byte(recordKeyPrefix + goal)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf.Bytes())
	})
}

// scored pairs an Example with its similarity to a query vector.
type scored struct {
	Example
	score float32
}

// TopK returns the k examples whose embeddings are most cosine-similar
// to query's embedding, highest similarity first. Embedding or storage
// failures are returned to the caller; Search below degrades them to a
// best-effort empty result instead.
func (s *Store) TopK(ctx context.Context, query string, k int) ([]Example, error) {
	qvec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("knowledge: embedding query: %w", err)
	}

	var candidates []scored
	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(recordKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var rec Example
				if err := gob.NewDecoder(bytes.NewReader(val)).Decode(&rec); err != nil {
					return nil // skip malformed entries rather than aborting the scan
				}
				candidates = append(candidates, scored{Example: rec, score: cosine(qvec, rec.Vector)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("knowledge: scanning store: %w", err)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]Example, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].Example
	}
	return out, nil
}

// cosine computes cosine similarity between two equal-length vectors,
// returning 0 for mismatched lengths or zero-magnitude vectors rather
// than dividing by zero.
func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(magA) * math.Sqrt(magB)))
}

// Search formats the k nearest examples to query as the prompt-ready
// block the generate node appends to its context, or "No examples
// found." if the store is empty, unreachable, or k is 0 (spec §6:
// best-effort degrade on any failure).
func Search(ctx context.Context, s *Store, query string, k int) string {
	if s == nil || k <= 0 {
		return "No examples found."
	}
	examples, err := s.TopK(ctx, query, k)
	if err != nil || len(examples) == 0 {
		return "No examples found."
	}

	blocks := make([]string, 0, len(examples))
	for _, e := range examples {
		blocks = append(blocks, fmt.Sprintf("User Goal: %s\nReference Command: %s", e.Goal, e.Command))
	}
	return strings.Join(blocks, "\n---\n")
}
