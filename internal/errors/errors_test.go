package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrSample,
		ErrClock,
		ErrTerminal,
		ErrRender,
	}

	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in config.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "sample error",
			code:       ErrSample,
			message:    "Couldn't list processes",
			suggestion: "",
		},
		{
			name:       "terminal error",
			code:       ErrTerminal,
			message:    "stdout is not a terminal",
			suggestion: "Run ptop directly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name: "basic error formatting",
			err:  New(ErrConfig, "Invalid configuration", "Check config.yaml syntax"),
			expectedParts: []string{
				"Invalid configuration",
				"Check config.yaml syntax",
			},
		},
		{
			name: "error with failure symbol",
			err:  New(ErrSample, "Couldn't list processes", "Try again"),
			expectedParts: []string{
				"✗",
				"Couldn't list processes",
			},
		},
		{
			name: "error without suggestion",
			err:  New(ErrRender, "Frame overflow", ""),
			expectedParts: []string{
				"Frame overflow",
			},
			notExpected: []string{
				"\n\n  \n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part, "output should contain %q", part)
			}

			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part, "output should not contain %q", part)
			}
		})
	}
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("file not found")
	wrapped := WrapWithCode(cause, ErrConfig, "Failed to load config", "Create config.yaml")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrConfig, wrapped.Code)
	assert.Equal(t, "Failed to load config", wrapped.Message)
	assert.Equal(t, "Create config.yaml", wrapped.Suggestion)
	assert.Equal(t, cause, wrapped.Cause)
	assert.Contains(t, wrapped.Error(), "file not found")
}

func TestNewSampleError(t *testing.T) {
	cause := errors.New("open /proc: too many open files")
	err := NewSampleError(cause, "process list")

	assert.Equal(t, ErrSample, err.Code)
	assert.Contains(t, err.Message, "process list")
	assert.True(t, errors.Is(err, cause), "cause should survive the stack wrapper")
}

func TestNewClockError(t *testing.T) {
	err := NewClockError(0)

	assert.Equal(t, ErrClock, err.Code)
	assert.Contains(t, err.Message, "0.000s")
	assert.True(t, IsCode(err, ErrClock))
}

func TestNewTerminalInitError(t *testing.T) {
	cause := errors.New("inappropriate ioctl for device")
	err := NewTerminalInitError(cause, "stdout is not a terminal")

	assert.Equal(t, ErrTerminal, err.Code)
	assert.Equal(t, cause, err.Unwrap())
	assert.NotEmpty(t, err.Suggestion)
}

func TestErrorsIs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := WrapWithCode(cause, ErrSample, "Sample error", "")

	assert.True(t, errors.Is(wrapped, cause))
}

func TestErrorsAs(t *testing.T) {
	wrapped := New(ErrConfig, "Config error", "Fix config")

	var ptopErr *Error
	ok := errors.As(wrapped, &ptopErr)

	assert.True(t, ok)
	assert.Equal(t, ErrConfig, ptopErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrSample))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestShortAndSummary(t *testing.T) {
	assert.Equal(t, "[CLOCK] boom", New(ErrClock, "boom", "").Short())
	assert.Equal(t, "[SAMPLE] read failed: eof", WrapWithCode(errors.New("eof"), ErrSample, "read failed", "").Short())

	assert.Equal(t, "", Summary(nil))
	assert.Equal(t, "plain", Summary(errors.New("plain")))
	assert.Equal(t, "[CONFIG] bad", Summary(New(ErrConfig, "bad", "ignored")))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("no such file or directory"),
		ErrConfig,
		"Config file not found",
		"Run: ptop config",
	)

	output := err.Error()
	lines := strings.Split(output, "\n")

	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"), "First line should start with failure symbol")
	assert.Contains(t, lines[0], "Config file not found")
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		wantMsg string
	}{
		{"zero exit code", 0, "exit code 0"},
		{"non-zero exit code", 1, "exit code 1"},
		{"signal exit code", 137, "exit code 137"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewExitError(tt.code)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOk   bool
	}{
		{"ExitError returns code", NewExitError(42), 42, true},
		{"ExitError with zero", NewExitError(0), 0, true},
		{"standard error returns false", errors.New("standard error"), 0, false},
		{"nil error returns false", nil, 0, false},
		{"structured Error returns false", New(ErrSample, "test", ""), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := GetExitCode(tt.err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
