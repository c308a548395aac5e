// knowledge_dump inspects ShellMaster's local knowledge-base store.
//
// The knowledge store persists (goal, command, embedding) examples used
// by the retrieve node (spec §6) in BadgerDB between CLI invocations.
// This tool opens the store read-only and prints a human-readable
// summary: goal text, command text, vector dimensions, and an L2 norm
// for each stored example.
//
// Usage:
//
//	knowledge_dump [--path /path/to/knowledge/dir]
//
// If --path is not given, reads SHELLMASTER_KNOWLEDGE_DIR from the
// environment, falling back to ~/.config/shellmaster/knowledge.
//
// Exit codes:
//
//	0 — success (including "empty store" which prints a message and exits 0)
//	1 — error opening or reading the database
package main

import (
	"bytes"
	"encoding/gob"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// recordKeyPrefix must match internal/knowledge/knowledge.go exactly.
const recordKeyPrefix = "knowledge/example/v1/"

// record mirrors internal/knowledge.Example for standalone gob decoding.
type record struct {
	Goal    string
	Command string
	Vector  []float32
}

func main() {
	pathFlag := flag.String("path", "", "Path to the knowledge BadgerDB directory (overrides SHELLMASTER_KNOWLEDGE_DIR)")
	flag.Parse()

	dbPath := *pathFlag
	if dbPath == "" {
		dbPath = os.Getenv("SHELLMASTER_KNOWLEDGE_DIR")
	}
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fatalf("cannot resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, ".config", "shellmaster", "knowledge")
	}

	fmt.Printf("Knowledge store path: %s\n", dbPath)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Store directory does not exist. No examples have been added yet.")
		os.Exit(0)
	}

	opts := badger.DefaultOptions(dbPath).
		WithLogger(nil).
		WithReadOnly(true)

	db, err := badger.Open(opts)
	if err != nil {
		fatalf("open BadgerDB at %s: %v", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	var records []record
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(recordKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			raw, err := it.Item().ValueCopy(nil)
			if err != nil {
				continue
			}
			var rec record
			if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
				continue
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		fatalf("read BadgerDB: %v", err)
	}

	if len(records) == 0 {
		fmt.Println("\nNo knowledge examples found.")
		os.Exit(0)
	}

	fmt.Printf("\nFound %d example%s:\n", len(records), plural(len(records)))
	fmt.Println(strings.Repeat("─", 80))

	for i, r := range records {
		fmt.Printf("\n[%d] Goal:    %s\n", i+1, r.Goal)
		fmt.Printf("    Command: %s\n", r.Command)
		fmt.Printf("    Vector:  %d dims, L2 norm %.4f, sample %s\n", len(r.Vector), l2Norm(r.Vector), formatSample(r.Vector, 4))
	}

	fmt.Printf("\n%s\n", strings.Repeat("─", 80))
	fmt.Printf("Summary: %d example%s, store path: %s\n", len(records), plural(len(records)), dbPath)
}

func l2Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func formatSample(v []float32, n int) string {
	if len(v) == 0 {
		return "[]"
	}
	if n > len(v) {
		n = len(v)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%+.4f", v[i])
	}
	suffix := ""
	if len(v) > n {
		suffix = " ..."
	}
	return "[" + strings.Join(parts, ", ") + suffix + "]"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "knowledge_dump: "+format+"\n", args...)
	os.Exit(1)
}
