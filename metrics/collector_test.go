package metrics

import (
	"fmt"
	"testing"

	"github.com/npillmayer/elemtree/store"
	"github.com/npillmayer/elemtree/strtab"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorObservesBatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "elemtree.metrics")
	defer teardown()
	//
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	s := store.New(store.WithCollapseByDefault(false))
	detach := c.Attach(s)
	batch := append([]int{1, 0}, strtab.Encode()...)
	batch = append(batch,
		1, 1, 11, 1, 0, 0, 0,
		1, 2, 7, 1, 0, 0, 0,
		1, 3, 7, 2, 0, 0, 0,
		5, 3, 2, 1,
	)
	_, err := s.ApplyBatch(batch)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.batches))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.operations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("update-errors-or-warnings")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.elements))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.roots))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.errors))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.warnings))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.revision))
	//
	detach()
	_, err = s.ApplyBatch(append(append([]int{1, 0}, strtab.Encode()...), 2, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.batches), "detached collectors see no batches")
	//
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestObserveError(t *testing.T) {
	c := NewCollector(nil)
	s := store.New()
	header := append([]int{1, 0}, strtab.Encode()...)
	_, err := s.ApplyBatch(append(header, 1, 5, 7, 99, 0, 0, 0))
	require.Error(t, err)
	c.ObserveError(err)
	c.ObserveError(nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures.WithLabelValues("unknown-parent")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.failures))
}

func TestErrorKind(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{store.ErrDuplicateID, "duplicate-id"},
		{fmt.Errorf("wrapped: %w", store.ErrNotRoot), "not-root"},
		{&store.BatchError{Err: strtab.ErrInvalidCodePoint}, "string-table"},
		{store.ErrClosed, "closed"},
		{fmt.Errorf("io"), "other"},
	}
	for _, c := range cases {
		if k := ErrorKind(c.err); k != c.kind {
			t.Errorf("expected kind of %v to be %s, is %s", c.err, c.kind, k)
		}
	}
}

func TestOpcodeLabel(t *testing.T) {
	assert.Equal(t, "remove-root", opcodeLabel(6))
	assert.Equal(t, "unknown", opcodeLabel(42))
}
