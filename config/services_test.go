package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[ServiceMode]bool
		wantErr bool
	}{
		{
			name:  "single service",
			input: "issuer-runner",
			want:  map[ServiceMode]bool{ServiceModeIssuerRunner: true},
		},
		{
			name:  "multiple services with spaces",
			input: " issuer-runner, scheduler ,reaper",
			want: map[ServiceMode]bool{
				ServiceModeIssuerRunner: true,
				ServiceModeScheduler:    true,
				ServiceModeReaper:       true,
			},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "only commas",
			input:   ",,",
			wantErr: true,
		},
		{
			name:    "invalid service name",
			input:   "issuer-runner,http",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServices(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIssuerRunnerConfigSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   IssuerRunnerConfig
		want IssuerRunnerConfig
	}{
		{
			name: "zero values get defaults",
			in:   IssuerRunnerConfig{},
			want: IssuerRunnerConfig{PollInterval: 10 * time.Second, MaxRetries: 3},
		},
		{
			name: "poll interval above ceiling is clamped",
			in:   IssuerRunnerConfig{PollInterval: 5 * time.Minute, MaxRetries: 5},
			want: IssuerRunnerConfig{PollInterval: 30 * time.Second, MaxRetries: 5},
		},
		{
			name: "ceiling itself is allowed",
			in:   IssuerRunnerConfig{PollInterval: 30 * time.Second, MaxRetries: 3},
			want: IssuerRunnerConfig{PollInterval: 30 * time.Second, MaxRetries: 3},
		},
		{
			name: "negative in-flight cap resets to unbounded",
			in:   IssuerRunnerConfig{PollInterval: time.Second, MaxRetries: 1, MaxInFlight: -4},
			want: IssuerRunnerConfig{PollInterval: time.Second, MaxRetries: 1, MaxInFlight: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Sanitize()
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestReaperConfigSanitize(t *testing.T) {
	cfg := ReaperConfig{
		Interval:           time.Second,
		SucceededLogMaxAge: time.Minute,
		BatchSize:          0,
	}
	cfg.Sanitize()

	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Equal(t, 24*time.Hour, cfg.SucceededLogMaxAge)
	assert.Equal(t, 1, cfg.BatchSize)

	cfg = ReaperConfig{
		Interval:           time.Hour,
		SucceededLogMaxAge: 720 * time.Hour,
		BatchSize:          50000,
	}
	cfg.Sanitize()
	assert.Equal(t, 10000, cfg.BatchSize)
}

func TestSchedulerConfigSanitize(t *testing.T) {
	cfg := SchedulerConfig{Interval: 10 * time.Millisecond, BatchSize: -1}
	cfg.Sanitize()
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 1, cfg.BatchSize)
}

func TestAppConfigEnabledServiceHelpers(t *testing.T) {
	cfg := AppConfig{Services: "issuer-runner,reaper"}
	assert.True(t, cfg.IsIssuerRunnerEnabled())
	assert.False(t, cfg.IsSchedulerEnabled())
	assert.True(t, cfg.IsReaperEnabled())

	cfg = AppConfig{Services: "bogus"}
	assert.False(t, cfg.IsIssuerRunnerEnabled())
}
