package errutil_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/jamsconv/errutil"
)

func TestTree(t *testing.T) {
	t.Parallel()

	t.Run("NilErr", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "nil error", func() { errutil.Tree(nil) })
	})

	t.Run("SimpleStringErr", func(t *testing.T) {
		t.Parallel()
		tree := errutil.Tree(errors.New("malformed line"))
		expected := errutil.ErrInfo{
			Message:  "malformed line",
			TypeName: "*errors.errorString",
			Children: nil,
		}
		assertErrInfoAreEqual(t, expected, tree)
	})

	t.Run("JoinedErrs", func(t *testing.T) {
		t.Parallel()
		tree := errutil.Tree(
			errors.Join(
				errors.New("missing identity"),
				errors.New("invalid container"),
			),
		)
		expected := errutil.ErrInfo{
			Message:  "missing identity\ninvalid container",
			TypeName: "*errors.joinError",
			Children: []errutil.ErrInfo{
				{Message: "missing identity", TypeName: "*errors.errorString", Children: nil},
				{Message: "invalid container", TypeName: "*errors.errorString", Children: nil},
			},
		}
		assertErrInfoAreEqual(t, expected, tree)
	})

	t.Run("WrappedPathErr", func(t *testing.T) {
		t.Parallel()
		_, err := os.ReadFile("nonexistent.lab")
		tree := errutil.Tree(fmt.Errorf("read lab: %w", err))
		expected := errutil.ErrInfo{
			Message:  "read lab: open nonexistent.lab: no such file or directory",
			TypeName: "*fmt.wrapError",
			Children: []errutil.ErrInfo{
				{
					Message:  "open nonexistent.lab: no such file or directory",
					TypeName: "*fs.PathError",
					Op:       "open",
					Path:     "nonexistent.lab",
					Children: []errutil.ErrInfo{
						{Message: "no such file or directory", TypeName: "syscall.Errno", Children: nil},
					},
				},
			},
		}
		assertErrInfoAreEqual(t, expected, tree)
	})
}

func TestErrInfoFlawP(t *testing.T) {
	t.Parallel()

	p := errutil.Tree(errors.Join(errors.New("a"), errors.New("b"))).FlawP()
	children, ok := p["children"].([]flaw.P)
	require.True(t, ok)
	require.Len(t, children, 2)
	assert.Equal(t, "a", children[0]["message"])
	assert.Equal(t, "b", children[1]["message"])
}

func TestErrInfoFlawPPath(t *testing.T) {
	t.Parallel()

	_, err := os.ReadFile("missing.lab")
	require.Error(t, err)

	p := errutil.Tree(fmt.Errorf("read lab: %w", err)).FlawP()
	assert.NotContains(t, p, "path")

	children, ok := p["children"].([]flaw.P)
	require.True(t, ok)
	require.Len(t, children, 1)
	assert.Equal(t, "open", children[0]["op"])
	assert.Equal(t, "missing.lab", children[0]["path"])
}

func assertErrInfoAreEqual(t *testing.T, expected, actual errutil.ErrInfo) {
	t.Helper()
	assert.Exactly(t, expected.Message, actual.Message, "unequal Message field: expected: %q, actual: %q", expected.Message, actual.Message)
	assert.Exactly(t, expected.TypeName, actual.TypeName, "unequal TypeName field: expected: %q, actual: %q", expected.TypeName, actual.TypeName)
	assert.Exactly(t, expected.Op, actual.Op, "unequal Op field")
	assert.Exactly(t, expected.Path, actual.Path, "unequal Path field")
	assert.Len(t, actual.Children, len(expected.Children), "unequal Children length: expected: %d, actual: %d", len(expected.Children), len(actual.Children))
	for i, child := range actual.Children {
		assertErrInfoAreEqual(t, expected.Children[i], child)
	}
}
