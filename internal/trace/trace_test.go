package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevelAndMode(t *testing.T) {
	lvl, err := ParseLevel("DETAIL")
	require.NoError(t, err)
	assert.Equal(t, LevelDetail, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelOff, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)

	mode, err := ParseMode("both")
	require.NoError(t, err)
	assert.Equal(t, ModeBoth, mode)

	_, err = ParseFormat("chrome")
	assert.Error(t, err)
}

func TestShouldEmit(t *testing.T) {
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFile))
	assert.False(t, LevelDetail.ShouldEmit(ScopeItem))
	assert.True(t, LevelDebug.ShouldEmit(ScopeItem))
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())
	assert.Equal(t, Nop, tr)
}

func TestStreamNDJSONParenting(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	require.NoError(t, err)

	ctx := WithTracer(context.Background(), tr)
	outer, ctx := Start(ctx, ScopeDriver, "expand")
	inner, ictx := Start(ctx, ScopeFile, "file:a.rs")
	Point(ictx, ScopeItem, "enum", "Color")
	inner.WithExtra("items", "1").End("")
	outer.End("ok")
	require.NoError(t, tr.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	var evs []jsonEvent
	for _, line := range lines {
		var ev jsonEvent
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		evs = append(evs, ev)
	}
	assert.Equal(t, "begin", evs[0].Kind)
	assert.Equal(t, "driver", evs[0].Scope)
	assert.Equal(t, uint64(0), evs[0].ParentID)
	assert.Equal(t, evs[0].SpanID, evs[1].ParentID)
	assert.Equal(t, "point", evs[2].Kind)
	assert.Equal(t, evs[1].SpanID, evs[2].ParentID)
	assert.Equal(t, "Color", evs[2].Detail)
	assert.Equal(t, map[string]string{"items": "1"}, evs[3].Extra)
	assert.Equal(t, "ok", evs[4].Detail)
	for i := 1; i < len(evs); i++ {
		assert.Greater(t, evs[i].Seq, evs[i-1].Seq)
	}
}

func TestStreamFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)

	pass, ctx := Start(ctx, ScopePass, "lex")
	file, _ := Start(ctx, ScopeFile, "file:a.rs")
	assert.Equal(t, uint64(0), file.ID())
	file.End("")
	pass.End("")
	require.NoError(t, tr.Flush())

	out := buf.String()
	assert.Contains(t, out, "→ lex")
	assert.Contains(t, out, "← lex")
	assert.NotContains(t, out, "file:a.rs")
}

func TestTextFormat(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ev := &Event{
		Time:   start.Add(1500 * time.Microsecond),
		Kind:   KindSpanEnd,
		Scope:  ScopeFile,
		Name:   "file:a.rs",
		Detail: "2 items",
		Extra:  map[string]string{"z": "1", "a": "2"},
	}
	got := string(FormatEvent(ev, FormatText, start))
	assert.Equal(t, "[    1.500ms]     ← file:a.rs (2 items) {a=2, z=1}\n", got)
}

func TestRingWrapsAndDumps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		ring.Emit(&Event{Time: now(), Kind: KindPoint, Scope: ScopeItem, Name: name})
	}
	snap := ring.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "b", snap[0].Name)
	assert.Equal(t, "d", snap[2].Name)

	var buf bytes.Buffer
	require.NoError(t, Dump(ring, &buf, FormatText))
	assert.Equal(t, 3, strings.Count(buf.String(), "• "))
}

func TestErrorLevelUsesRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Mode: ModeStream, Output: &buf})
	require.NoError(t, err)
	_, ok := tr.(*RingTracer)
	require.True(t, ok)

	Begin(tr, ScopeFile, "file:a.rs", 0).End("failed")
	assert.Empty(t, buf.String())

	var dump bytes.Buffer
	require.NoError(t, Dump(tr, &dump, FormatText))
	assert.Contains(t, dump.String(), "file:a.rs (failed)")
}

func TestMultiCopiesEvents(t *testing.T) {
	var buf bytes.Buffer
	stream := NewStreamTracer(&buf, LevelDebug, FormatText)
	ring := NewRingTracer(8, LevelDebug)
	multi := NewMultiTracer(LevelDebug, stream, ring)

	Begin(multi, ScopeDriver, "diag", 0).End("")
	require.NoError(t, multi.Flush())

	assert.Len(t, ring.Snapshot(), 2)
	assert.Equal(t, 2, strings.Count(buf.String(), "diag"))
}
