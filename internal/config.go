package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Host              string        `env:"HOST,required=true"`
	Port              int           `env:"PORT,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	SessionSecret     string        `env:"SESSION_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	CensoredWords     string        `env:"CENSORED_WORDS,required=true"`
	CharReplacement   string        `env:"CHARACTER_REPLACEMENT,required=true"`
	MaxContentLength  int           `env:"MAX_CONTENT_LENGTH,required=true"`
	EnableInspector   bool          `env:"ENABLE_INSPECTOR"`
	InspectorPort     int           `env:"INSPECTOR_PORT"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}

// SplitWords turns the comma-separated CENSORED_WORDS value into a
// clean word list.
func SplitWords(str string) []string {
	var out []string
	for _, w := range strings.Split(str, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
