package memory

import (
	"time"

	"github.com/google/uuid"
)

// ValidateCandidates filters candidates down to storable memories: the fact
// text must be non-empty and the category must belong to the closed set.
// Failing candidates are dropped silently, surviving ones keep their input
// order. No deduplication against previously stored memories happens here
// or anywhere else — repeated facts produce repeated rows.
func ValidateCandidates(candidates []Candidate) []Memory {
	validated := make([]Memory, 0, len(candidates))
	now := time.Now().UTC()
	for _, c := range candidates {
		if c.Memory == "" || !IsValidCategory(c.Category) {
			continue
		}
		validated = append(validated, Memory{
			ID:        uuid.New().String(),
			Owner:     DefaultOwner,
			Fact:      c.Memory,
			Category:  Category(c.Category),
			CreatedAt: now,
		})
	}
	return validated
}
