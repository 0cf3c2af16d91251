package models

import (
	"testing"
	"time"
)

func validRequest() *Request {
	return &Request{
		ID:              "req-1",
		Path1:           "/a",
		Path2:           "/b",
		Target:          TargetFiles,
		Mode:            ModeByte,
		ChunkSize:       65536,
		DigestAlgorithm: "sha512",
		DigestEncoding:  "hex",
		MaxWorkers:      5,
		CreatedAt:       time.Now(),
	}
}

func TestRequestValidate(t *testing.T) {
	t.Run("ValidRequest", func(t *testing.T) {
		if err := validRequest().Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(r *Request)
		field  string
	}{
		{"EmptyPath1", func(r *Request) { r.Path1 = "" }, "Path1"},
		{"EmptyPath2", func(r *Request) { r.Path2 = "" }, "Path2"},
		{"UnknownTarget", func(r *Request) { r.Target = "trees" }, "Target"},
		{"UnknownMode", func(r *Request) { r.Mode = "md5" }, "Mode"},
		{"ZeroChunkSize", func(r *Request) { r.ChunkSize = 0 }, "ChunkSize"},
		{"ZeroWorkers", func(r *Request) { r.MaxWorkers = 0 }, "MaxWorkers"},
		{"NegativeBandwidth", func(r *Request) { r.BandwidthLimit = -1 }, "BandwidthLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(r)

			err := r.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("ValidationError.Field = %s, want %s", ve.Field, tt.field)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "TestField: test message"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

func TestStatusExitCode(t *testing.T) {
	tests := []struct {
		status Status
		code   int
	}{
		{StatusEqual, 0},
		{StatusDifferent, 1},
		{StatusFailed, 2},
		{Status("unknown"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}
