package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var mergeCorpus = []string{
	`{"type":"user","message":{"role":"user","content":"hello"}}`,
	`{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1","content":[{"type":"text","text":"x"}]}]}}`,
	`{"type":"assistant","message":{"model":"m","content":[{"type":"text","text":"hi"},{"type":"tool_use","id":"t1","input":{"cmd":"ls"}}],"usage":{"input_tokens":3}}}`,
	`{"type":"assistant","message":{"content":["bare", 4, null]}}`,
	`{"type":"summary","summary":"done","leafUuid":"l"}`,
	`{"type":"system","content":"x","level":1.5}`,
	`{"no":"type"}`,
	`{"type":"assistant","message":{"content":{"odd":true}}}`,
}

func TestMerge_EqualsWholeCorpus(t *testing.T) {
	whole := New()
	ingestAll(t, whole, mergeCorpus...)
	whole.Counters = Counters{FilesScanned: 2, LinesParsed: len(mergeCorpus), ParseErrors: 1}

	for split := 0; split <= len(mergeCorpus); split++ {
		left := New()
		ingestAll(t, left, mergeCorpus[:split]...)
		left.Counters = Counters{FilesScanned: 1, LinesParsed: split}

		right := New()
		ingestAll(t, right, mergeCorpus[split:]...)
		right.Counters = Counters{FilesScanned: 1, LinesParsed: len(mergeCorpus) - split, ParseErrors: 1}

		merged := New()
		merged.Merge(left)
		merged.Merge(right)
		assert.Equal(t, reportJSON(t, whole.Finalize()), reportJSON(t, merged.Finalize()), "split at %d", split)

		// Order of merging does not matter.
		reversed := New()
		reversed.Merge(right)
		reversed.Merge(left)
		assert.Equal(t, reportJSON(t, whole.Finalize()), reportJSON(t, reversed.Finalize()), "reversed split at %d", split)
	}
}

func TestMerge_Associative(t *testing.T) {
	a, b, c := New(), New(), New()
	ingestAll(t, a, mergeCorpus[:3]...)
	ingestAll(t, b, mergeCorpus[3:5]...)
	ingestAll(t, c, mergeCorpus[5:]...)

	leftFirst := a.Clone()
	leftFirst.Merge(b)
	leftFirst.Merge(c)

	bc := b.Clone()
	bc.Merge(c)
	rightFirst := a.Clone()
	rightFirst.Merge(bc)

	assert.Equal(t, reportJSON(t, leftFirst.Finalize()), reportJSON(t, rightFirst.Finalize()))
}

func TestMerge_DoesNotAliasSource(t *testing.T) {
	src := New()
	ingestAll(t, src, `{"type":"a","x":1,"message":{"content":[{"type":"text","text":"t"}]}}`)
	before := reportJSON(t, src.Finalize())

	dst := New()
	dst.Merge(src)
	ingestAll(t, dst,
		`{"type":"a","x":"s","message":{"extra":1,"content":[{"type":"text","text":null},"s"]}}`,
	)

	assert.Equal(t, before, reportJSON(t, src.Finalize()))
	assert.Equal(t, 2, dst.Occurrences("a"))
	assert.Equal(t, 1, src.Occurrences("a"))
}

func TestMerge_Nil(t *testing.T) {
	agg := New()
	ingestAll(t, agg, `{"type":"a"}`)
	agg.Merge(nil)
	assert.Equal(t, 1, agg.Occurrences("a"))
}

func TestClone_Independent(t *testing.T) {
	agg := New()
	agg.Counters.LinesParsed = 4
	ingestAll(t, agg, `{"type":"a","x":1}`)

	clone := agg.Clone()
	assert.Equal(t, reportJSON(t, agg.Finalize()), reportJSON(t, clone.Finalize()))

	ingestAll(t, clone, `{"type":"b"}`)
	assert.Equal(t, []string{"a"}, agg.EntryTypes())
	assert.Equal(t, []string{"a", "b"}, clone.EntryTypes())
}
