package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetAndDisable(t *testing.T) {
	defer Set(*Logger())

	var bb bytes.Buffer
	Set(zerolog.New(&bb))
	Logger().Info().Str("job", "a.txt").Msg("compressed")
	assert.Contains(t, bb.String(), `"job":"a.txt"`)

	bb.Reset()
	Disable()
	Logger().Info().Msg("dropped")
	assert.Empty(t, bb.String())
}

func TestSetOutput(t *testing.T) {
	defer Set(*Logger())

	var bb bytes.Buffer
	Set(zerolog.New(nil))
	SetOutput(&bb)
	Logger().Warn().Msg("redirected")
	assert.Contains(t, bb.String(), `"message":"redirected"`)
	assert.Contains(t, bb.String(), `"level":"warn"`)
}
