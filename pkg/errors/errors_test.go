package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "bad value: %s", "concurrency")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Message != "bad value: concurrency" {
		t.Errorf("Message = %v, want %v", err.Message, "bad value: concurrency")
	}

	expected := "INVALID_CONFIG: bad value: concurrency"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeTransport, cause, "fetch lines")

	if err.Code != ErrCodeTransport {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTransport)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "TRANSPORT_ERROR: fetch lines: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeSave, "test"),
			code:     ErrCodeSave,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeSave, "test"),
			code:     ErrCodeTransport,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeTransport, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeTransport,
			expected: true,
		},
		{
			name:     "inner code through wrapper",
			err:      Wrap(ErrCodeTransport, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "inner code through fmt wrapping",
			err:      fmt.Errorf("run: %w", Wrap(ErrCodeSave, fmt.Errorf("rename: %w", New(ErrCodeInvalidPath, "x")), "save")),
			code:     ErrCodeInvalidPath,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeMalformed, "test"), ErrCodeMalformed},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"with cause", Wrap(ErrCodeSave, errors.New("disk full"), "write stations.json"), "write stations.json: disk full"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"./stations.json", false},
		{"/var/data/stations.json", false},
		{"out/stations.json", false},
		{"", true},
		{"out/", true},
		{"..", true},
		{"bad\x00name.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://www.ekidata.jp/api", false},
		{"https://example.com", false},
		{"", true},
		{"ftp://example.com", true},
		{"www.ekidata.jp/api", true},
		{"http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateBaseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
