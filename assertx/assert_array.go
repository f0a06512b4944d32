// Package assertx complements testify with go-cmp based comparisons so that
// options like cmpopts.IgnoreFields can be used on lists.
package assertx

import (
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type tHelper interface {
	Helper()
}

var spewConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	DisableMethods:          true,
	MaxDepth:                10,
}

// ElementsMatch asserts that listA and listB contain the same elements,
// ignoring order, comparing elements with cmp.Equal and the given options.
// Duplicates must appear the same number of times in both lists.
func ElementsMatch(t assert.TestingT, listA, listB interface{}, opts ...cmp.Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	a, okA := toList(listA)
	b, okB := toList(listB)
	if !okA || !okB {
		return assert.Fail(t, fmt.Sprintf("ElementsMatch expects lists, got %T and %T", listA, listB))
	}

	extraA, extraB := diffLists(a, b, opts...)
	if len(extraA) == 0 && len(extraB) == 0 {
		return true
	}

	return assert.Fail(t, fmt.Sprintf("elements differ\n\nextra elements in list A:\n%s\n\nextra elements in list B:\n%s",
		spewConfig.Sdump(extraA), spewConfig.Sdump(extraB)))
}

func toList(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array, reflect.Slice:
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

func diffLists(a, b []interface{}, opts ...cmp.Option) (extraA, extraB []interface{}) {
	visited := make([]bool, len(b))
	for _, ea := range a {
		found := false
		for j, eb := range b {
			if visited[j] {
				continue
			}
			if cmp.Equal(ea, eb, opts...) {
				visited[j] = true
				found = true
				break
			}
		}
		if !found {
			extraA = append(extraA, ea)
		}
	}

	for j, eb := range b {
		if !visited[j] {
			extraB = append(extraB, eb)
		}
	}

	return extraA, extraB
}
