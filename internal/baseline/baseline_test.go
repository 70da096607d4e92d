package baseline

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfabench/dfabench/internal/logger"
)

const catPattern = `^(d|ca)t[^t]*(t(d|ca)t[^t]*)*$`

func TestNew_Engines(t *testing.T) {
	assert.Equal(t, []string{"regexp", "regexp2"}, Engines())
	for _, engine := range Engines() {
		m, err := New(engine, `^ab+$`, 0, nil)
		require.NoError(t, err, engine)
		assert.Equal(t, engine, m.Name())
		assert.Equal(t, `^ab+$`, m.Pattern())
		assert.True(t, m.Match("abbb"))
		assert.False(t, m.Match("a"))
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New("pcre", `a`, 0, nil)
	assert.ErrorIs(t, err, ErrUnknownEngine)

	for _, engine := range Engines() {
		_, err = New(engine, "", 0, nil)
		assert.ErrorIs(t, err, ErrEmptyPattern, engine)
		_, err = New(engine, `(`, 0, nil)
		assert.Error(t, err, engine)
	}
}

func TestEngines_Agree(t *testing.T) {
	re2, err := NewRE2("re2", catPattern)
	require.NoError(t, err)
	bt, err := NewBacktracking("bt", catPattern, time.Second, logger.Discard())
	require.NoError(t, err)

	for _, in := range []string{"", "cat", "dt", "dttcat", "dtcatt", "catxyz", "ca", "x"} {
		assert.Equal(t, re2.Match(in), bt.Match(in), "%q", in)
	}
	assert.True(t, re2.Match("dttcat"))
	assert.False(t, re2.Match("ca"))
}

func TestBacktracking_TimeoutCountsAsNoMatch(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))
	m, err := NewBacktracking("slow", `^(a+)+$`, time.Millisecond, log)
	require.NoError(t, err)

	input := strings.Repeat("a", 40) + "!"
	assert.False(t, m.Match(input))
	assert.False(t, m.Match(input))
	assert.Equal(t, 1, strings.Count(buf.String(), "baseline match failed"))
	assert.Contains(t, buf.String(), "component=baseline")
}
