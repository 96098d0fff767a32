package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/entanglement-project/entanglement-core/config"
)

func TestLoadRequiresHomeDir(t *testing.T) {
	os.Unsetenv("ENTANGLEMENT_HOME_DIR")
	os.Unsetenv("ENTANGLEMENT_PUBLIC_DIR")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadReadsBothVars(t *testing.T) {
	t.Setenv("ENTANGLEMENT_HOME_DIR", "/var/lib/entanglement")
	t.Setenv("ENTANGLEMENT_PUBLIC_DIR", "/srv/entanglement/public")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/entanglement", cfg.HomeDir)
	require.Equal(t, "/srv/entanglement/public", cfg.PublicDir)
}

func TestLoadPublicDirOptional(t *testing.T) {
	t.Setenv("ENTANGLEMENT_HOME_DIR", "/var/lib/entanglement")
	os.Unsetenv("ENTANGLEMENT_PUBLIC_DIR")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Empty(t, cfg.PublicDir)
}

func TestMustLoadPanicsWithoutHomeDir(t *testing.T) {
	os.Unsetenv("ENTANGLEMENT_HOME_DIR")
	require.Panics(t, func() { config.MustLoad() })
}
