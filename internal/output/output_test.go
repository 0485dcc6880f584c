package output

import (
	"errors"
	"testing"

	"routined/internal/emitter"
	"routined/internal/execctx"
	"routined/pkg/types"
)

type memStore struct {
	names []string
	kinds []types.ArtifactKind
	err   error
}

func (s *memStore) LogArtifact(name string, kind types.ArtifactKind, value any) error {
	if s.err != nil {
		return s.err
	}
	s.names = append(s.names, name)
	s.kinds = append(s.kinds, kind)
	return nil
}

func TestUnitIsNoop(t *testing.T) {
	c := execctx.New(execctx.Seed[int]{})
	if err := Apply(c, Unit[int]()); err != nil {
		t.Fatalf("unit: %v", err)
	}
	if err := Apply[int](c, nil); err != nil {
		t.Fatalf("nil output: %v", err)
	}
}

func TestItemRoutesToEmitter(t *testing.T) {
	col := emitter.NewCollector[int]()
	c := execctx.New(execctx.Seed[int]{Emitter: col})
	if err := Apply(c, Item(9)); err != nil {
		t.Fatalf("item: %v", err)
	}
	got := col.Drain()
	if len(got) != 1 || got[0] != 9 {
		t.Fatalf("collected %v", got)
	}
}

func TestItemWithoutEmitterFails(t *testing.T) {
	c := execctx.New(execctx.Seed[int]{})
	if err := Apply(c, Item(9)); !IsNoSink(err) {
		t.Fatalf("expected no-sink error, got %v", err)
	}
}

func TestItemStopIsNotAnError(t *testing.T) {
	ch := emitter.NewChannel[int](1)
	c := execctx.New(execctx.Seed[int]{Emitter: ch})
	if err := Apply(c, Item(1)); err != nil {
		t.Fatalf("first item: %v", err)
	}
	// Queue now full; the item is dropped with a Stop, not an error.
	if err := Apply(c, Item(2)); err != nil {
		t.Fatalf("stopped item: %v", err)
	}
}

func TestRecordRoutesToArtifactStore(t *testing.T) {
	store := &memStore{}
	c := execctx.New(execctx.Seed[int]{Artifacts: store})
	if err := Apply(c, Record[int]("weights", types.ArtifactModel, []byte{1})); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(store.names) != 1 || store.names[0] != "weights" || store.kinds[0] != types.ArtifactModel {
		t.Fatalf("store saw %v %v", store.names, store.kinds)
	}
}

func TestRecordWithoutStoreFails(t *testing.T) {
	c := execctx.New(execctx.Seed[int]{})
	if err := Apply(c, Record[int]("w", types.ArtifactModel, nil)); !IsNoSink(err) {
		t.Fatalf("expected no-sink error, got %v", err)
	}
}

func TestRecordPropagatesStoreError(t *testing.T) {
	boom := errors.New("boom")
	c := execctx.New(execctx.Seed[int]{Artifacts: &memStore{err: boom}})
	if err := Apply(c, Record[int]("w", types.ArtifactCheckpoint, nil)); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestOutcome(t *testing.T) {
	boom := errors.New("boom")
	col := emitter.NewCollector[int]()
	c := execctx.New(execctx.Seed[int]{Emitter: col})

	if err := Apply(c, Outcome(Item(1), boom)); !errors.Is(err, boom) {
		t.Fatalf("failed outcome: %v", err)
	}
	if got := col.Drain(); len(got) != 0 {
		t.Fatalf("failed outcome still applied inner: %v", got)
	}

	if err := Apply(c, Outcome(Item(2), nil)); err != nil {
		t.Fatalf("ok outcome: %v", err)
	}
	if got := col.Drain(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("collected %v", got)
	}

	if err := Apply(c, Outcome[int](nil, nil)); err != nil {
		t.Fatalf("empty outcome: %v", err)
	}
}
