package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batches = `# two roots, one child each
[1,0,0, 1,1,11,1,0,0,0, 1,2,7,1,0,0,0]
[1,0,4,3,65,112,112, 1,3,5,2,0,1,0, 1,10,11,1,0,0,0]

[1,0,0, 5,3,1,0]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "elemtree.store")
	defer teardown()
	//
	input := writeFile(t, "batches.jsonl", batches)
	conf := writeFile(t, "cfg.yaml", "collapseByDefault: false\nprotocol:\n  version: 2\n  minCompatible: 4.22.0\n")
	dot := filepath.Join(t.TempDir(), "out.dot")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", conf, "-dot", dot, "-metrics", input}, nil, &stdout, &stderr)
	t.Logf("stdout:\n%s", stdout.String())
	assert.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "root 1 (renderer 1)")
	assert.Contains(t, out, "App #3")
	assert.Contains(t, out, "revision 3: 4 elements, 2 visible, 2 roots, 1 errors, 0 warnings")
	assert.Contains(t, out, "elemtree_batches_total 3")
	assert.Contains(t, out, `elemtree_operations_total{opcode="add"} 4`)
	assert.Contains(t, out, "# TYPE elemtree_batches_total counter")
	assert.Contains(t, out, "# TYPE elemtree_elements gauge")
	assert.Contains(t, out, "elemtree_elements 2")
	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph g {"))
}

func TestReplayStopsAtFirstError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "elemtree.store")
	defer teardown()
	//
	input := "[1,0,0, 1,1,11,1,0,0,0]\n[1,0,0, 2,1,5]\n[1,0,0, 1,2,7,1,0,0,0]\n"
	var stdout, stderr bytes.Buffer
	code := run([]string{"-metrics", "-"}, strings.NewReader(input), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "line 2")
	assert.Contains(t, stdout.String(), "revision 2:")
	assert.Contains(t, stdout.String(), `elemtree_batch_errors_total{kind="unknown-id"} 1`)
}

func TestReplayUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage")
	assert.Equal(t, 2, run([]string{"-nosuchflag", "x"}, nil, &stdout, &stderr))
}

func TestReplayBadInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "elemtree.store")
	defer teardown()
	//
	var stdout, stderr bytes.Buffer
	code := run([]string{"-"}, strings.NewReader("[1,0,\n"), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "line 1")
	//
	conf := writeFile(t, "cfg.yaml", "protocol:\n  version: 1\n  minCompatible: not-a-version\n")
	code = run([]string{"-config", conf, "-"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "invalid bridge protocol")
}
