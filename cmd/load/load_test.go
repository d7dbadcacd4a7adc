package load_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tmori/kessan-cli/cmd/load"
)

func TestLoadCommand_Metadata(t *testing.T) {
	assert.Equal(t, "load", load.Cmd.Use)
	assert.Contains(t, load.Cmd.Short, "Load")
	assert.Contains(t, load.Cmd.Long, "Shift_JIS")
	assert.NotNil(t, load.Cmd.Run)
}

func TestLoadCommand_Flags(t *testing.T) {
	assert.NotNil(t, load.Cmd.Flags().Lookup("input"))
	assert.NotNil(t, load.Cmd.Flags().Lookup("mode"))
	assert.NotNil(t, load.Cmd.Flags().Lookup("aliases"))
	assert.Equal(t, "append", load.Cmd.Flags().Lookup("mode").DefValue)
}
