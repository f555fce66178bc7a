//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func startWithStub(t *testing.T, args ...string) (*TUITestFramework, *quoteStub) {
	t.Helper()
	stub := newQuoteStub(t)
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.StartApp(stub.URL, args...), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the quotevault title")
	t.Cleanup(func() { tf.DumpTailOnFail(t, t.Name(), 4096) })
	return tf, stub
}

func TestInitialResults(t *testing.T) {
	t.Parallel()
	tf, stub := startWithStub(t)

	require.True(t, tf.SeePlain("3 quotes"), "Initial search should list the whole corpus")
	require.True(t, tf.SeePlain("Socrates"))
	require.True(t, tf.SeePlain("Wisdom (1)"), "Facet counts should be shown")
	require.GreaterOrEqual(t, stub.hits.Load(), int64(1))
}

func TestInitialQueryFlag(t *testing.T) {
	t.Parallel()
	tf, _ := startWithStub(t, "-q", "socrates")

	require.True(t, tf.SeePlain("1 quote"), "The -q flag should seed the first search")
	require.True(t, tf.SeePlain("socrates"))
}

func TestTypingQuery(t *testing.T) {
	t.Parallel()
	tf, _ := startWithStub(t)
	require.True(t, tf.SeePlain("3 quotes"))

	mark := tf.Mark()
	require.NoError(t, tf.Search("franklin"))
	require.True(t, tf.SeeAfterMark(mark, "1 quote"), "Typing should narrow the results")
	require.True(t, tf.SeePlain("Benjamin Franklin"))

	// Leaving the query line keeps the text
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.SeePlain("franklin"))
}

func TestCategoryToggle(t *testing.T) {
	t.Parallel()
	tf, _ := startWithStub(t)
	require.True(t, tf.SeePlain("3 quotes"))

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyTab))
	require.NoError(t, tf.SendKeys(KeySpace))
	require.True(t, tf.SeeAfterMark(mark, "1 quote"), "Selecting Wisdom should filter to one quote")

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeySpace))
	require.True(t, tf.SeeAfterMark(mark, "3 quotes"), "Unselecting should restore the corpus")
}

func TestSortPicker(t *testing.T) {
	t.Parallel()
	tf, _ := startWithStub(t)
	require.True(t, tf.SeePlain("Most Popular"))

	require.NoError(t, tf.SendKeys(KeySort))
	require.True(t, tf.SeePlain("Sort by"))

	require.NoError(t, tf.SendKeys(KeyDown))
	require.NoError(t, tf.SendKeys(KeyDown))
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.SeeAfterMark(mark, "Author A-Z"))
}

func TestFailureAndRetry(t *testing.T) {
	t.Parallel()
	tf, stub := startWithStub(t)
	require.True(t, tf.SeePlain("3 quotes"))

	stub.failing.Store(true)
	require.NoError(t, tf.SendKeys(KeyRefresh))
	require.True(t, tf.SeePlain("Failed to fetch quotes."), "Failure should be reported")
	require.True(t, tf.SeePlain("press r to retry"))

	stub.failing.Store(false)
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyRefresh))
	require.True(t, tf.SeeAfterMark(mark, "3 quotes"), "Retry should recover")
}
