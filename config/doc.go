// Package config loads per-target resilience profiles from YAML.
//
// A document carries a defaults profile plus named profiles (one per
// provider target, e.g. "gemini", "llamacpp", "ollama", "mcp:search")
// that override the defaults field by field. Values left unset fall
// through to the core packages' built-in defaults.
//
//	defaults:
//	  pool:
//	    max_concurrent: 10
//	  retry:
//	    max_retries: 3
//	    base_delay: 500ms
//	profiles:
//	  gemini:
//	    rate_limit:
//	      max_burst: 120
//	      interval: 1m
//	telemetry:
//	  service_name: geminihydra
//
// Documents may reference environment variables as ${VAR}; a missing
// variable fails the load with every missing name listed. A .env file
// next to the document is loaded first when present, without overriding
// variables already set in the environment.
package config
