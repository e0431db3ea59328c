package strtab

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEmptyTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "elemtree.strtab")
	defer teardown()
	//
	tab, next, err := Decode([]int{1, 0, 0, 1}, 2)
	require.NoError(t, err)
	if next != 3 {
		t.Errorf("expected next position to be 3, is %d", next)
	}
	if tab.Len() != 1 {
		t.Errorf("expected table to hold only the null entry, has %d", tab.Len())
	}
	s, ok, err := tab.Lookup(0)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", s)
}

func TestDecodeStrings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "elemtree.strtab")
	defer teardown()
	//
	ops := append([]int{1, 0}, Encode("App", "", "héllo 🌍")...)
	ops = append(ops, 99)
	tab, next, err := Decode(ops, 2)
	require.NoError(t, err)
	assert.Equal(t, len(ops)-1, next)
	assert.Equal(t, 4, tab.Len())
	for i, expected := range []string{"App", "", "héllo 🌍"} {
		s, ok, err := tab.Lookup(i + 1)
		assert.NoError(t, err)
		assert.True(t, ok)
		if s != expected {
			t.Errorf("expected string %d to be %q, is %q", i+1, expected, s)
		}
	}
	_, _, err = tab.Lookup(4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDecodeLongString(t *testing.T) {
	long := strings.Repeat("x", 200000)
	tab, _, err := Decode(append([]int{0, 0}, Encode(long)...), 2)
	require.NoError(t, err)
	s, _, _ := tab.Lookup(1)
	if len(s) != len(long) {
		t.Errorf("expected long string of length %d, is %d", len(long), len(s))
	}
}

func TestDecodeTruncated(t *testing.T) {
	cases := [][]int{
		{1, 0},             // no length
		{1, 0, 5, 1, 65},   // length beyond batch
		{1, 0, 2, 3, 65},   // string beyond table
		{1, 0, -1},         // negative length
		{1, 0, 2, -2, 65},  // negative string length
	}
	for _, ops := range cases {
		_, _, err := Decode(ops, 2)
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("expected %v to be truncated, got %v", ops, err)
		}
	}
}

func TestDecodeInvalidCodePoint(t *testing.T) {
	_, _, err := Decode([]int{1, 0, 2, 1, 0x110000}, 2)
	assert.ErrorIs(t, err, ErrInvalidCodePoint)
}

func TestDecodeRejectsSurrogates(t *testing.T) {
	for _, cp := range []int{0xD800, 0xDBFF, 0xDC00, 0xDFFF} {
		_, _, err := Decode([]int{1, 0, 2, 1, cp}, 2)
		if !errors.Is(err, ErrInvalidCodePoint) {
			t.Errorf("expected lone surrogate %#x to be rejected, got %v", cp, err)
		}
	}
	tab, _, err := Decode([]int{1, 0, 2, 1, 0x1F600}, 2)
	require.NoError(t, err)
	s, _, _ := tab.Lookup(1)
	assert.Equal(t, "\U0001F600", s)
}
