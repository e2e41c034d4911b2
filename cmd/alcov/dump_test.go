package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rmalmain/alcov"
	"github.com/rmalmain/alcov/section"
)

func dumpFixture(t *testing.T) *alcov.Snapshot {
	t.Helper()

	s := alcov.New("abcd", false)

	m, err := section.NewModule(0, "/home/abc", []section.Segment{{Start: 0, End: 0x1000}})
	require.NoError(t, err)
	s.Modules = []section.Module{m}

	s.Blocks = []section.Block{
		section.NewBlock(0, 0, 500, 32, 12),
		section.NewBlock(0, 0, 560, 16, 3),
	}

	edges := alcov.NewEdgeGraph()
	edges.Add(0, 1)
	edges.Add(0, 1)
	s.Edges = edges

	return s
}

func TestDump_Metadata(t *testing.T) {
	var out strings.Builder

	err := runDump(&out, dumpFixture(t), &dumpOptions{metadata: true})
	require.NoError(t, err)

	text := out.String()
	require.Contains(t, text, "alcov file v0.1")
	require.Contains(t, text, "Flags: Edges, InputPath")
	require.Contains(t, text, "Input path: abcd")
	require.Contains(t, text, "Fingerprint: ")
	require.Contains(t, text, "# 2 Blocks")
	require.Contains(t, text, "# 1 Edges")
	require.Contains(t, text, "# 1 Modules")
	require.Contains(t, text, "Path: /home/abc")
	require.Contains(t, text, "Range 0x0 -> 0x1000 from module base.")
}

func TestDump_BlocksAndEdges(t *testing.T) {
	var out strings.Builder

	err := runDump(&out, dumpFixture(t), &dumpOptions{blocks: true, edges: true})
	require.NoError(t, err)

	text := out.String()
	require.Contains(t, text, "[0] module 0 segment 0 offset 0x1f4 size 32 taken 12")
	require.Contains(t, text, "0 -> 1 taken 2")
}
