package server

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// StableJSONHash produces a deterministic ETag for any JSON-encodable
// value. Callers must hand it pre-sorted collections; the directory
// keeps stations ordered by identifier for exactly this reason.
func StableJSONHash(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal for hashing: %w", err)
	}
	return fmt.Sprintf(`"%x"`, xxhash.Sum64(data)), nil
}
