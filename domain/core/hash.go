package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// SpecSetKey identifies one full-replace set of visualization specs.
// Spec records are keyed by (dataset, field selection, conditionals); any
// change to the key produces a new set and the prior set is deleted.
type SpecSetKey Hash

// String returns the string representation
func (k SpecSetKey) String() string { return Hash(k).String() }

// ComputeSpecSetKey builds a stable key from a dataset ID, the selected
// field names, and the JSON-serializable conditional clause tree. Selection
// order does not affect the key. Conditionals that report themselves empty
// hash identically to an absent conditional, so a nil interface, a typed
// nil pointer, and a clause tree with no clauses all produce the same key.
func ComputeSpecSetKey(datasetID DatasetID, selection []string, conditionals interface{}) SpecSetKey {
	sorted := make([]string, len(selection))
	copy(sorted, selection)
	sort.Strings(sorted)

	if c, ok := conditionals.(interface{ IsEmpty() bool }); ok && c.IsEmpty() {
		conditionals = nil
	}

	var data strings.Builder
	data.WriteString(datasetID.String())
	for _, name := range sorted {
		data.WriteString("|")
		data.WriteString(name)
	}
	if conditionals != nil {
		if raw, err := json.Marshal(conditionals); err == nil {
			data.WriteString("|")
			data.Write(raw)
		}
	}

	return SpecSetKey(NewHash([]byte(data.String())))
}
