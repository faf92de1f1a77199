package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestSetLevelIsSharedWithChildren(t *testing.T) {
	l := NewNop()
	child := l.With(String("component", "test"))

	l.SetLevel(LevelError)
	assert.Equal(t, LevelError, child.GetLevel())
}

func TestToZapFields(t *testing.T) {
	fields := toZapFields(
		String("s", "v"),
		Int64("i", 3),
		Bool("b", true),
		Error(errors.New("boom")),
		Any("a", []int{1}),
	)
	assert.Len(t, fields, 5)
	assert.Equal(t, "s", fields[0].Key)
	assert.Equal(t, "error", fields[3].Key)
	assert.Nil(t, toZapFields())
}
