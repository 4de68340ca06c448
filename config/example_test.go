package config_test

import (
	"fmt"

	"github.com/EPS-AI-SOLUTIONS/GeminiHydra-sub005/config"
)

func ExampleParse() {
	doc := []byte(`
defaults:
  retry:
    max_retries: 3
    base_delay: 500ms
profiles:
  gemini:
    retry:
      max_retries: 5
`)
	f, err := config.Parse(doc)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	gemini := f.Profile("gemini")
	fmt.Println("retries:", gemini.Retry.MaxRetries)
	fmt.Println("base delay:", gemini.Retry.BaseDelay)
	// Output:
	// retries: 5
	// base delay: 500ms
}
