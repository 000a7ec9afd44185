// Command geoscene-inspect audits a cache's write-only Badger eviction
// mirror (see pkg/cache's WithDiskMirror) after the fact: it never feeds
// results back into a live Cache, matching the mirror's diagnostic-only
// contract.
//
// © 2025 geoscene-runtime authors. MIT License.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

type evictionRecord struct {
	Dataset    string `json:"dataset"`
	ResourceID string `json:"resource_id"`
	LastState  string `json:"last_state"`
	SizeBytes  int64  `json:"size_bytes"`
}

type options struct {
	dbPath string
	json   bool
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.dbPath, "db", "", "path to the cache's Badger eviction mirror directory")
	flag.BoolVar(&opts.json, "json", false, "emit JSON instead of a text table")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()
	if opts.dbPath == "" {
		fatal(fmt.Errorf("-db is required"))
	}

	records, err := readEvictionLog(opts.dbPath)
	if err != nil {
		fatal(err)
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			fatal(err)
		}
		return
	}
	printTable(records)
}

func readEvictionLog(path string) ([]evictionRecord, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil).WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("opening badger mirror at %s: %w", path, err)
	}
	defer db.Close()

	var records []evictionRecord
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			var val []byte
			if err := item.Value(func(b []byte) error {
				val = append(val, b...)
				return nil
			}); err != nil {
				return err
			}
			rec, err := parseRecord(key, val)
			if err != nil {
				continue
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func parseRecord(key, val []byte) (evictionRecord, error) {
	parts := strings.SplitN(string(key), "\x00", 2)
	if len(parts) != 2 {
		return evictionRecord{}, fmt.Errorf("malformed key %q", key)
	}
	valParts := strings.SplitN(string(val), "|", 2)
	if len(valParts) != 2 {
		return evictionRecord{}, fmt.Errorf("malformed value %q", val)
	}
	size, err := strconv.ParseInt(valParts[1], 10, 64)
	if err != nil {
		return evictionRecord{}, err
	}
	return evictionRecord{
		Dataset:    parts[0],
		ResourceID: parts[1],
		LastState:  valParts[0],
		SizeBytes:  size,
	}, nil
}

func printTable(records []evictionRecord) {
	fmt.Printf("%-20s %-20s %-12s %10s\n", "DATASET", "RESOURCE", "LAST STATE", "BYTES")
	for _, r := range records {
		fmt.Printf("%-20s %-20s %-12s %10d\n", r.Dataset, r.ResourceID, r.LastState, r.SizeBytes)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "geoscene-inspect:", err)
	os.Exit(1)
}
