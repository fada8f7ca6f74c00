package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/attorney-tools/codesearch/internal/db"
	"github.com/attorney-tools/codesearch/internal/domain"
)

type mockSource struct {
	descriptors []domain.CodeDescriptor
	err         error
	calls       atomic.Int64
}

func (m *mockSource) Descriptors() ([]domain.CodeDescriptor, error) {
	m.calls.Add(1)
	out := make([]domain.CodeDescriptor, len(m.descriptors))
	copy(out, m.descriptors)
	return out, m.err
}

type mockProber struct {
	fn    func(code string) (bool, error)
	calls atomic.Int64
	gate  chan struct{}
}

func (m *mockProber) Probe(_ context.Context, code string) (bool, error) {
	m.calls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	if m.fn != nil {
		return m.fn(code)
	}
	return true, nil
}

type mockCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockCache) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func descriptors() []domain.CodeDescriptor {
	return []domain.CodeDescriptor{
		{Code: "BC", CodeName: "Texas Business Organizations Code", CodeShortName: "Business Organizations", Version: "1.0.0"},
		{Code: "PE", CodeName: "Texas Penal Code", CodeShortName: "Penal", Version: "1.0.0"},
	}
}

func TestListCodes_RebuildProbesAndCaches(t *testing.T) {
	source := &mockSource{descriptors: descriptors()}
	prober := &mockProber{fn: func(code string) (bool, error) {
		return code == "BC", nil
	}}
	cache := newMockCache()
	svc := New(source, prober, cache, "codesearch:", 30*time.Minute, zap.NewNop())

	got, err := svc.ListCodes(context.Background())
	if err != nil {
		t.Fatalf("ListCodes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d codes, want 2", len(got))
	}
	if got[0].Searchable != domain.SearchableYes {
		t.Errorf("BC searchable = %q, want %q", got[0].Searchable, domain.SearchableYes)
	}
	if got[1].Searchable != domain.SearchableNo {
		t.Errorf("PE searchable = %q, want %q", got[1].Searchable, domain.SearchableNo)
	}
	if n := prober.calls.Load(); n != 2 {
		t.Errorf("probe calls = %d, want 2", n)
	}
	if _, ok := cache.data["codesearch:list"]; !ok {
		t.Error("listing was not written to cache")
	}
}

func TestListCodes_CacheHitSkipsProbes(t *testing.T) {
	cached := descriptors()
	cached[0].Searchable = domain.SearchableYes
	cached[1].Searchable = domain.SearchableYes
	data, _ := json.Marshal(cached)

	cache := newMockCache()
	cache.data["codesearch:list"] = data

	source := &mockSource{descriptors: descriptors()}
	prober := &mockProber{}
	svc := New(source, prober, cache, "codesearch:", 30*time.Minute, zap.NewNop())

	got, err := svc.ListCodes(context.Background())
	if err != nil {
		t.Fatalf("ListCodes: %v", err)
	}
	if n := prober.calls.Load(); n != 0 {
		t.Errorf("probe calls = %d, want 0 on cache hit", n)
	}
	if n := source.calls.Load(); n != 0 {
		t.Errorf("descriptor reads = %d, want 0 on cache hit", n)
	}
	if got[1].Searchable != domain.SearchableYes {
		t.Errorf("cached searchable flag not returned as stored: %q", got[1].Searchable)
	}
}

func TestListCodes_CacheReadFailureDegradesToRebuild(t *testing.T) {
	cache := newMockCache()
	cache.getErr = errors.New("connection refused")

	source := &mockSource{descriptors: descriptors()}
	prober := &mockProber{}
	svc := New(source, prober, cache, "codesearch:", 30*time.Minute, zap.NewNop())

	got, err := svc.ListCodes(context.Background())
	if err != nil {
		t.Fatalf("ListCodes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d codes, want 2", len(got))
	}
	if n := prober.calls.Load(); n != 2 {
		t.Errorf("probe calls = %d, want 2 after degraded cache read", n)
	}
}

func TestListCodes_CacheWriteFailureStillReturnsListing(t *testing.T) {
	cache := newMockCache()
	cache.setErr = errors.New("connection refused")

	source := &mockSource{descriptors: descriptors()}
	svc := New(source, &mockProber{}, cache, "codesearch:", 30*time.Minute, zap.NewNop())

	got, err := svc.ListCodes(context.Background())
	if err != nil {
		t.Fatalf("ListCodes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d codes, want 2", len(got))
	}
}

func TestListCodes_ConcurrentRebuildsCoalesce(t *testing.T) {
	source := &mockSource{descriptors: descriptors()}
	prober := &mockProber{gate: make(chan struct{})}
	cache := newMockCache()
	svc := New(source, prober, cache, "codesearch:", 30*time.Minute, zap.NewNop())

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ListCodes(context.Background())
		}(i)
	}

	// Wait until the first rebuild is blocked inside the prober, then
	// release everyone at once.
	for prober.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	close(prober.gate)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: %v", i, err)
		}
	}
	if n := source.calls.Load(); n != 1 {
		t.Errorf("descriptor reads = %d, want 1 coalesced rebuild", n)
	}
	if n := prober.calls.Load(); n != 2 {
		t.Errorf("probe calls = %d, want 2 for a single rebuild", n)
	}
}

func TestListCodes_ProbeErrorMarksUnsearchable(t *testing.T) {
	source := &mockSource{descriptors: descriptors()}
	prober := &mockProber{fn: func(code string) (bool, error) {
		if code == "PE" {
			return false, errors.New("index closed")
		}
		return true, nil
	}}
	svc := New(source, prober, newMockCache(), "codesearch:", 30*time.Minute, zap.NewNop())

	got, err := svc.ListCodes(context.Background())
	if err != nil {
		t.Fatalf("ListCodes: %v", err)
	}
	if got[1].Searchable != domain.SearchableNo {
		t.Errorf("PE searchable = %q, want %q after probe error", got[1].Searchable, domain.SearchableNo)
	}
}
