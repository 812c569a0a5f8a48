// Package config resolves dagascii's process-wide render settings: today,
// just the glyph theme. Process configuration is read once, cached, and
// handed out as an immutable value rather than mutated by each caller.
package config

import (
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teleivo/dagascii/theme"
)

// ThemeEnvVar is the environment variable selecting the default theme.
// Accepted values: default, light, rounded, heavy.
const ThemeEnvVar = "VISUALFLOW_THEME"

var (
	once        sync.Once
	cachedTheme theme.GlyphTheme
)

// Theme returns the process-wide default theme, resolved once from
// VISUALFLOW_THEME and an optional .dagascii.env file in the working
// directory. Its absence is not a failure: viper simply falls back to
// whatever the environment provides, and an unset or unrecognized value
// resolves to theme.Default per theme.Parse.
func Theme() theme.GlyphTheme {
	once.Do(func() {
		cachedTheme = loadTheme()
	})
	return cachedTheme
}

// Reset clears the cached theme so the next call to Theme re-reads the
// environment. Intended for tests that manipulate VISUALFLOW_THEME.
func Reset() {
	once = sync.Once{}
}

func loadTheme() theme.GlyphTheme {
	v := viper.New()
	v.SetConfigName(".dagascii")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is expected and not an error; any other read
	// failure (bad permissions, malformed syntax) is likewise non-fatal
	// here because the theme is cosmetic, not load-bearing.
	_ = v.ReadInConfig()

	name := strings.ToLower(strings.TrimSpace(v.GetString(ThemeEnvVar)))
	return theme.Parse(name)
}
