package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kermartin/jurisearch/internal/db"
)

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	return m.vec, m.err
}

type mockStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string][]byte{}}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func newCached(inner Embedder, s store) *CachedEmbedder {
	return New(inner, s, "test:", "text-embedding-3-small", time.Hour, nil, zap.NewNop())
}

func TestEmbed_MissThenHit(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{0.25, -1.5}}
	s := newMockStore()
	c := newCached(inner, s)

	first, err := c.Embed(context.Background(), "habeas corpus")
	if err != nil {
		t.Fatalf("first Embed: %v", err)
	}
	second, err := c.Embed(context.Background(), "habeas corpus")
	if err != nil {
		t.Fatalf("second Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
	if len(second) != len(first) || second[0] != first[0] || second[1] != first[1] {
		t.Errorf("cached vector differs: %v vs %v", first, second)
	}
}

func TestEmbed_ModelScopesKey(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{1}}
	s := newMockStore()

	a := New(inner, s, "test:", "model-a", time.Hour, nil, zap.NewNop())
	b := New(inner, s, "test:", "model-b", time.Hour, nil, zap.NewNop())

	if _, err := a.Embed(context.Background(), "q"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Embed(context.Background(), "q"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("different models must not share cache entries: inner calls = %d", inner.calls)
	}
}

func TestEmbed_StoreFailureFallsThrough(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{2}}
	s := newMockStore()
	s.getErr = errors.New("redis down")
	s.setErr = errors.New("redis down")
	c := newCached(inner, s)

	vec, err := c.Embed(context.Background(), "q")
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if len(vec) != 1 || vec[0] != 2 {
		t.Errorf("vec = %v", vec)
	}
}

func TestEmbed_InnerErrorPropagates(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("provider down")}
	c := newCached(inner, newMockStore())
	if _, err := c.Embed(context.Background(), "q"); err == nil {
		t.Error("expected inner error to propagate")
	}
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0.1, -2.5, 3e6}
	out, err := bytesToVector(vectorToCacheBytes(in))
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("round trip mismatch at %d: %v vs %v", i, in[i], out[i])
		}
	}
	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Error("truncated data must error")
	}
}
