package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsSet(t *testing.T) {
	set := AsSet("a", "b", "a")

	assert.Len(t, set, 2)
	assert.Contains(t, set, "a")
	assert.Contains(t, set, "b")
}

func TestAddAll_NilSet(t *testing.T) {
	set := AddAll[string](nil, "x")

	assert.Equal(t, []string{"x"}, SortedKeys(set))
}

func TestSortedFunc(t *testing.T) {
	got := SortedFunc(AsSet("bb", "a", "ccc"), func(a, b string) int { return len(b) - len(a) })

	assert.Equal(t, "ccc,bb,a", strings.Join(got, ","))
}
