// Tests for JSONL persistence in the SQLite backend.
package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/metaform/pkg/types"
)

func TestWriteReadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jsonl")
	records := []json.RawMessage{
		json.RawMessage(`{"a":1}`),
		json.RawMessage(`{"b":"two"}`),
	}
	require.NoError(t, writeJSONL(path, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":\"two\"}\n", string(raw))

	got, skipped, err := readJSONL(path)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, records, got)
}

func TestWriteJSONLLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeJSONL(filepath.Join(dir, "x.jsonl"), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x.jsonl", entries[0].Name())
}

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jsonl")
	content := strings.Join([]string{`{"ok":1}`, `not json`, ``, `{"ok":2}`}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, skipped, err := readJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Len(t, got, 2)
}

func TestReadJSONLMissingFile(t *testing.T) {
	_, _, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}

func TestMetadataJSONLWrittenInOrder(t *testing.T) {
	b, dir := attachTemp(t)
	tbl, err := b.GetTable(types.ProductsTable)
	require.NoError(t, err)

	_, err = tbl.Set("p1", &types.Product{Name: "Bolt", Metadata: []types.MetadataEntry{
		{Key: "z", Value: "last-key"},
		{Key: "a", Value: "first-key"},
	}})
	require.NoError(t, err)

	lines, _, err := readJSONL(filepath.Join(dir, metadataJSONL))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	var first metadataJSON
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "z", first.MetaKey, "stored order, not key order")
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, types.ProductsTable, first.EntityTable)

	prod, _, err := readJSONL(filepath.Join(dir, productsJSONL))
	require.NoError(t, err)
	require.Len(t, prod, 1)
	var rec productJSON
	require.NoError(t, json.Unmarshal(prod[0], &rec))
	assert.Equal(t, "p1", rec.ProductID)
	assert.Contains(t, string(rec.Document), `"metadata":null`, "metadata lives in its own file")
}
