// Package hydraerrors defines the classified error taxonomy shared by the
// resilience core and its consumers.
//
// Every error the core's own infrastructure raises (pool exhaustion, queue
// timeouts, open circuits) is a member of this taxonomy: a closed set of
// variants tagged by a stable Code and carrying explicit Retryable and
// Recoverable classification plus a growable Context map. Errors raised by
// wrapped operations are never re-wrapped by the core; they bubble through
// unchanged.
//
// # Classification
//
// Classification is two-tier by design. The helpers in this package
// (IsRetryable, IsRecoverable, CodeOf) trust only explicit classification:
// once an error has been placed in the taxonomy, downstream code must not
// second-guess it by re-sniffing messages. Heuristic triage of raw,
// unclassified errors lives in the retry package, at the single point where
// a retry decision is made.
//
// # Usage
//
//	err := hydraerrors.NewTimeoutError("gemini call timed out", 30*time.Second)
//	err.WithContext("provider", "gemini")
//
//	if hydraerrors.IsRetryable(err) {
//	    // schedule another attempt
//	}
//
// Variants are matched with errors.As:
//
//	var open *hydraerrors.CircuitOpenError
//	if errors.As(err, &open) {
//	    waitUntil(open.NextAttempt)
//	}
package hydraerrors
