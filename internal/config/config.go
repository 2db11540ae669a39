// Package config loads sonora's startup configuration from flags and
// environment, using viper/cobra the way tphakala-birdnet-go wires its
// own CLI. No config file is read.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is everything cmd/sonora needs to wire the engine together.
type Config struct {
	HTTPAddr   string
	BufferSize int
	SampleRate int
	LogHuman   bool
	LogLevel   string
}

// RegisterFlags adds sonora's flags to cmd and binds them into v so env
// vars (SONORA_*, with "-" in a flag name written as "_", e.g.
// SONORA_BUFFER_SIZE) can override defaults.
func RegisterFlags(cmd *cobra.Command, v *viper.Viper) error {
	cmd.PersistentFlags().String("http-addr", "127.0.0.1:8080", "HTTP control-surface bind address")
	cmd.PersistentFlags().Int("buffer-size", 256, "audio buffer size, in frames")
	cmd.PersistentFlags().Int("sample-rate", 44100, "audio sample rate, in Hz")
	cmd.PersistentFlags().Bool("log-human", true, "use a human-readable console log instead of JSON")
	cmd.PersistentFlags().String("log-level", "info", "zerolog level: trace|debug|info|warn|error")

	v.SetEnvPrefix("sonora")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"http-addr", "buffer-size", "sample-rate", "log-human", "log-level"} {
		if err := v.BindPFlag(name, cmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the bound values out of v into a Config.
func Load(v *viper.Viper) Config {
	return Config{
		HTTPAddr:   v.GetString("http-addr"),
		BufferSize: v.GetInt("buffer-size"),
		SampleRate: v.GetInt("sample-rate"),
		LogHuman:   v.GetBool("log-human"),
		LogLevel:   v.GetString("log-level"),
	}
}
