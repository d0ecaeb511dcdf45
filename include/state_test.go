package include

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateOrdered_DeepestFirst(t *testing.T) {
	state := NewState()
	state.Visit("/root.txt", 0)
	state.Visit("/mid.txt", 1)
	state.Visit("/leaf.txt", 2)

	ordered := state.Ordered()

	assert.Equal(t, []VisitedFile{
		{Path: "/leaf.txt", Depth: 2},
		{Path: "/mid.txt", Depth: 1},
		{Path: "/root.txt", Depth: 0},
	}, ordered)
}

func TestStateOrdered_TiesKeepFirstVisitOrder(t *testing.T) {
	state := NewState()
	state.Visit("/root.txt", 0)
	state.Visit("/b.txt", 1)
	state.Visit("/a.txt", 1)

	ordered := state.Ordered()

	assert.Equal(t, "/b.txt", ordered[0].Path)
	assert.Equal(t, "/a.txt", ordered[1].Path)
	assert.Equal(t, "/root.txt", ordered[2].Path)
}

func TestStateVisit_OverwritesDepthWithoutDuplicating(t *testing.T) {
	state := NewState()
	state.Visit("/a.txt", 1)
	state.Visit("/a.txt", 3)

	assert.Equal(t, 1, state.Len())
	depth, ok := state.Depth("/a.txt")
	assert.True(t, ok)
	assert.Equal(t, 3, depth)
}

func TestStateForget_RemovesEntry(t *testing.T) {
	state := NewState()
	state.Visit("/a.txt", 0)
	state.Visit("/b.txt", 1)

	state.Forget("/a.txt")

	assert.Equal(t, 1, state.Len())
	_, ok := state.Depth("/a.txt")
	assert.False(t, ok)
	assert.Len(t, state.Ordered(), 1)
}

func TestStateForget_UnknownPathIsNoop(t *testing.T) {
	state := NewState()
	state.Visit("/a.txt", 0)

	state.Forget("/never-seen.txt")

	assert.Equal(t, 1, state.Len())
}

func TestStateEdges_ExcludeForgottenEndpoints(t *testing.T) {
	state := NewState()
	state.Visit("/a.txt", 0)
	state.Visit("/b.txt", 1)
	state.AddEdge("/a.txt", "/b.txt")
	state.AddEdge("/a.txt", "/b.txt")

	assert.Len(t, state.Edges(), 1)

	state.Forget("/b.txt")
	assert.Empty(t, state.Edges())
}
