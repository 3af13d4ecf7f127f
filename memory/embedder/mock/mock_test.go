package mock

import (
	"context"
	"math"
	"testing"
)

func TestEmbedDeterministic(t *testing.T) {
	m := New()
	a, err := m.Embed(context.Background(), "Jake loves pizza")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	b, err := m.Embed(context.Background(), "Jake loves pizza")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(a) != m.Dimensions() {
		t.Fatalf("expected %d dimensions, got %d", m.Dimensions(), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embeddings differ at %d for identical input", i)
		}
	}

	c, _ := m.Embed(context.Background(), "different text")
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different inputs produced identical embeddings")
	}
}

func TestEmbedUnitNorm(t *testing.T) {
	m := New()
	emb, err := m.Embed(context.Background(), "Kendall is allergic to tree nuts")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	var norm float64
	for _, v := range emb {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-4 {
		t.Errorf("embedding not unit length: %f", math.Sqrt(norm))
	}
}
