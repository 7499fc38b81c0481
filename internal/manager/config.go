package manager

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Settings are the config-file defaults. Flags override all of them.
type Settings struct {
	// Backend is the default display backend: ddc, backlight or auto.
	Backend string
	// Step is the offset used by inc/dec when no amount is given.
	Step uint16
	// NoColor disables colored error output.
	NoColor bool
}

var (
	once     sync.Once
	settings Settings
)

type ConfigManager struct{}

var Config = &ConfigManager{}

// Load reads ~/.config/lumactl/lumactl.yaml once per process. A
// missing or unreadable file just yields the defaults; a CLI should
// work out of the box.
func (c *ConfigManager) Load() Settings {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("lumactl")
		v.SetConfigType("yaml")
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "lumactl"))
		}

		v.SetDefault("backend", "auto")
		v.SetDefault("step", 10)
		v.SetDefault("no-color", false)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				// Malformed config: fall back to defaults rather than
				// refusing to run.
				settings = Settings{Backend: "auto", Step: 10}
				return
			}
		}

		settings = Settings{
			Backend: v.GetString("backend"),
			Step:    v.GetUint16("step"),
			NoColor: v.GetBool("no-color"),
		}
	})

	return settings
}
