package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esanchezm/megaverse/internal/config"
)

func TestRegisterCommonFlags(t *testing.T) {
	t.Setenv(EnvURL, "http://from-env")

	cmd := &cobra.Command{Use: "test"}
	var flags CommandFlags
	RegisterCommonFlags(cmd, &flags)

	for _, name := range []string{"url", "output", "quiet"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s should be registered", name)
	}
	assert.Equal(t, "o", cmd.Flags().Lookup("output").Shorthand)
	assert.Equal(t, "q", cmd.Flags().Lookup("quiet").Shorthand)
	assert.Equal(t, "http://from-env", flags.URL)
	assert.Equal(t, "table", flags.OutputFormat)

	require.NoError(t, cmd.Flags().Parse([]string{"--url", "http://flag", "-o", "json", "-q"}))
	assert.Equal(t, "http://flag", flags.URL)
	assert.Equal(t, "json", flags.OutputFormat)
	assert.True(t, flags.Quiet)
}

func TestRegisterGlobalFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var flags CommandFlags
	RegisterGlobalFlags(cmd, &flags)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config-path"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	require.NoError(t, cmd.PersistentFlags().Parse([]string{"--debug", "--config-path", "/tmp/x"}))
	assert.True(t, flags.Debug)
	assert.Equal(t, "/tmp/x", flags.ConfigPath)
}

func TestResolveCandidateID(t *testing.T) {
	cfg := config.MegaverseConfig{CandidateID: "from-config"}

	t.Run("argument wins", func(t *testing.T) {
		t.Setenv(EnvCandidateID, "from-env")
		id, err := ResolveCandidateID([]string{"from-arg"}, cfg)
		require.NoError(t, err)
		assert.Equal(t, "from-arg", id)
	})

	t.Run("env before config", func(t *testing.T) {
		t.Setenv(EnvCandidateID, "from-env")
		id, err := ResolveCandidateID(nil, cfg)
		require.NoError(t, err)
		assert.Equal(t, "from-env", id)
	})

	t.Run("config", func(t *testing.T) {
		t.Setenv(EnvCandidateID, "")
		id, err := ResolveCandidateID([]string{"  "}, cfg)
		require.NoError(t, err)
		assert.Equal(t, "from-config", id)
	})

	t.Run("missing", func(t *testing.T) {
		t.Setenv(EnvCandidateID, "")
		_, err := ResolveCandidateID(nil, config.MegaverseConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvCandidateID)
	})
}

func TestResolveBaseURL(t *testing.T) {
	cfg := config.MegaverseConfig{BaseURL: "https://configured"}

	flags := &CommandFlags{}
	assert.Equal(t, "https://configured", flags.ResolveBaseURL(cfg))

	flags.URL = "http://override"
	assert.Equal(t, "http://override", flags.ResolveBaseURL(cfg))
}

func TestProgress_Quiet(t *testing.T) {
	p := StartProgress(nil, true, "working")
	p.Update("still working")
	p.Stop(nil)
}
