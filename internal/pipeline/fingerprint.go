package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ndmitriev/caseline/internal/model"
)

// Fingerprint returns a stable hex digest of the complete case material.
// Go's JSON encoder writes struct fields in declaration order and map keys
// sorted, so identical inputs always produce identical digests.
func Fingerprint(input model.CaseInput) string {
	data, err := json.Marshal(input)
	if err != nil {
		// Marshal of CaseInput cannot fail with the types it contains,
		// but a digest of nothing must never collide with real input.
		data = []byte(input.CaseID)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
