package share

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotevault/internal/domain"
	"quotevault/internal/notify"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) Copy(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeSharer struct {
	supported   bool
	title, text string
	err         error
}

func (s *fakeSharer) Supported() bool { return s.supported }

func (s *fakeSharer) Share(title, text string) error {
	if s.err != nil {
		return s.err
	}
	s.title, s.text = title, text
	return nil
}

type report struct {
	title, description string
	severity           domain.Severity
}

func collect(reports *[]report) notify.Reporter {
	return notify.Func(func(title, description string, severity domain.Severity) {
		*reports = append(*reports, report{title, description, severity})
	})
}

var socrates = domain.Quote{ID: "1", Text: "Know thyself.", Author: "Socrates"}

func TestFormatting(t *testing.T) {
	assert.Equal(t, `"Know thyself." - Socrates`, Text(socrates))
	assert.Equal(t, "Quote by Socrates", Title(socrates))
}

func TestCopyQuoteConfirms(t *testing.T) {
	var reports []report
	cb := &fakeClipboard{}
	svc := NewService(cb, nil, collect(&reports), nil, nil)

	require.NoError(t, svc.CopyQuote(socrates))
	assert.Equal(t, `"Know thyself." - Socrates`, cb.text)
	require.Len(t, reports, 1)
	assert.Equal(t, report{CopiedTitle, CopiedDescription, domain.SeverityInfo}, reports[0])
}

func TestShareFallsBackToCopy(t *testing.T) {
	for name, sharer := range map[string]NativeSharer{
		"nil sharer":  nil,
		"unsupported": &fakeSharer{supported: false},
	} {
		t.Run(name, func(t *testing.T) {
			var reports []report
			cb := &fakeClipboard{}
			svc := NewService(cb, sharer, collect(&reports), nil, nil)

			require.NoError(t, svc.ShareQuote(socrates))
			assert.Equal(t, Text(socrates), cb.text)
			require.Len(t, reports, 1)
			assert.Equal(t, CopiedTitle, reports[0].title)
		})
	}
}

func TestShareUsesNativeSharer(t *testing.T) {
	var reports []report
	cb := &fakeClipboard{}
	sharer := &fakeSharer{supported: true}
	svc := NewService(cb, sharer, collect(&reports), nil, nil)

	require.NoError(t, svc.ShareQuote(socrates))
	assert.Equal(t, "Quote by Socrates", sharer.title)
	assert.Equal(t, Text(socrates), sharer.text)
	assert.Empty(t, cb.text, "clipboard must not be used when sharing works")
	assert.Empty(t, reports)
}

func TestCopyFailureIsReported(t *testing.T) {
	var reports []report
	boom := errors.New("no display")
	svc := NewService(&fakeClipboard{err: boom}, nil, collect(&reports), nil, nil)

	err := svc.CopyQuote(socrates)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	require.Len(t, reports, 1)
	assert.Equal(t, domain.SeverityWarning, reports[0].severity)
}

func TestCopyWithoutClipboard(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil)
	assert.ErrorIs(t, svc.CopyQuote(socrates), ErrClipboardUnavailable)
}
