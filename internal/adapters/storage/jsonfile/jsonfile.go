// Package jsonfile implements the repository ports over plain JSON documents
// on local disk. The documents are the system of record: each one is loaded
// whole at the start of an operation and rewritten whole on success, using a
// temp-file-then-rename swap so a reader never observes a torn write and a
// crash mid-write leaves the previous document intact.
//
// There is no cross-process locking; two concurrent writers race on a
// last-write-wins basis. That is an accepted limitation of the design.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// readDocument loads a JSON document into v. A missing, unreadable or corrupt
// file reports ok=false: persistent state always cold-starts, it never fails.
func readDocument(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}

// writeDocumentAtomic serializes v to a temporary file in the target
// directory and renames it over the canonical path.
func writeDocumentAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize document for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
