package config

import (
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/hydraerrors"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv expands environment variables in s.
//
// Semantics:
//   - `$VAR` and `${VAR}` are expanded via os.ExpandEnv.
//   - `${VAR}` with VAR absent from the environment is an error; every
//     absent variable is collected so a single run reports them all.
//   - `$$` emits a literal `$` (escape hatch).
//
// Missing variables yield a classified configuration error with the
// sorted names available under the "missing_variables" context key.
func ExpandEnv(s string) (string, error) {
	const dollarSentinel = "\x00HYDRA_CONFIG_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	var missing []string
	for _, match := range envVarPattern.FindAllStringSubmatch(s, -1) {
		if _, ok := os.LookupEnv(match[1]); !ok {
			missing = append(missing, match[1])
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		missing = slices.Compact(missing)
		err := hydraerrors.NewConfigurationError(
			"missing required environment variables: " + strings.Join(missing, ", "),
		)
		return "", err.WithContext("missing_variables", missing)
	}

	s = os.ExpandEnv(s)
	s = strings.ReplaceAll(s, dollarSentinel, "$")
	return s, nil
}
