package hydraerrors

import (
	"errors"
	"testing"
)

func BenchmarkNormalize_Error(b *testing.B) {
	err := errors.New("upstream failure")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Normalize(err, CodeNetwork)
	}
}

func BenchmarkNormalize_Classified(b *testing.B) {
	err := New("already classified", CodeTimeout)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Normalize(err, CodeNetwork)
	}
}

func BenchmarkIsRetryable(b *testing.B) {
	err := NewNetworkError("connection dropped", nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = IsRetryable(err)
	}
}

func BenchmarkWithContext(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = New("bench", CodeUnknown).WithContext("attempt", i)
	}
}
