package crawler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOne_LaterCandidateMatches(t *testing.T) {
	want := textEl("third")
	root := &fakeRoot{results: map[string][]Element{
		"c3": {want},
	}}

	got := resolveOne(root, []string{"c1", "c2", "c3"})

	require.NotNil(t, got)
	assert.Same(t, want, got.(*fakeElement))
	assert.Equal(t, []string{"c1", "c2", "c3"}, root.queried)
}

func TestResolveOne_FirstMatchShortCircuits(t *testing.T) {
	first := textEl("current markup")
	second := textEl("historical fallback")
	root := &fakeRoot{results: map[string][]Element{
		"c1": {first},
		"c2": {second},
	}}

	got := resolveOne(root, []string{"c1", "c2"})

	require.NotNil(t, got)
	assert.Same(t, first, got.(*fakeElement))
	// The second candidate must never be queried once the first matched.
	assert.Equal(t, []string{"c1"}, root.queried)
}

func TestResolveOne_QueryErrorTreatedAsMiss(t *testing.T) {
	want := textEl("ok")
	root := &fakeRoot{
		results: map[string][]Element{"c2": {want}},
		errs:    map[string]error{"c1": errors.New("unsupported expression")},
	}

	got := resolveOne(root, []string{"c1", "c2"})

	require.NotNil(t, got)
	assert.Same(t, want, got.(*fakeElement))
}

func TestResolveOne_NoMatchReturnsNil(t *testing.T) {
	root := &fakeRoot{}
	assert.Nil(t, resolveOne(root, []string{"c1", "c2", "c3"}))
}

func TestResolveMany_FirstMatchingCandidateSuppliesAll(t *testing.T) {
	a, b := textEl("a"), textEl("b")
	root := &fakeRoot{results: map[string][]Element{
		"c2": {a, b},
		"c3": {textEl("never seen")},
	}}

	got := resolveMany(root, []string{"c1", "c2", "c3"})

	require.Len(t, got, 2)
	assert.Same(t, a, got[0].(*fakeElement))
	assert.Same(t, b, got[1].(*fakeElement))
	assert.Equal(t, []string{"c1", "c2"}, root.queried)
}

func TestResolveMany_NoMatchReturnsEmpty(t *testing.T) {
	root := &fakeRoot{errs: map[string]error{"c1": errors.New("bad expr")}}
	assert.Empty(t, resolveMany(root, []string{"c1", "c2"}))
}
