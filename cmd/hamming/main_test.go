package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{
			name:     "zero duration",
			duration: 0,
			want:     "0s",
		},
		{
			name:     "one second",
			duration: 1 * time.Second,
			want:     "1s",
		},
		{
			name:     "rounds to nearest second",
			duration: 1499 * time.Millisecond,
			want:     "1s",
		},
		{
			name:     "29 minutes 59 seconds",
			duration: 29*time.Minute + 59*time.Second,
			want:     "29m59s",
		},
		{
			name:     "159 minutes 59 seconds",
			duration: 159*time.Minute + 59*time.Second,
			want:     "159m59s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatElapsed(tt.duration)
			assert.Equal(t, tt.want, got, "formatElapsed should return expected format for %v", tt.duration)
		})
	}
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantOutput []string
		wantErr    string
		// rejected sweeps must not print a header or render a table
		notOutput []string
	}{
		{
			name:       "count enumeration",
			args:       []string{"count", "--type", "5", "--threshold", "100"},
			wantOutput: []string{"Type 5 Hamming numbers up to 100: 34", "Strategy: enumeration, basis: bound"},
		},
		{
			name:       "count naive",
			args:       []string{"count", "-t", "3", "-k", "100", "--strategy", "naive"},
			wantOutput: []string{"Type 3 Hamming numbers up to 100: 20"},
		},
		{
			name:       "count first-n basis",
			args:       []string{"count", "-t", "1", "-k", "100", "--basis", "first-n"},
			wantOutput: []string{"Type 1 Hamming numbers up to 100: 7"},
		},
		{
			name:    "count unknown strategy",
			args:    []string{"count", "--strategy", "sieve"},
			wantErr: "unknown strategy",
		},
		{
			name:    "count unknown basis",
			args:    []string{"count", "--basis", "odd"},
			wantErr: "unknown prime basis",
		},
		{
			name:       "primes",
			args:       []string{"primes", "--bound", "10"},
			wantOutput: []string{"2 3 5 7\n", "4 primes up to 10"},
		},
		{
			name:       "numbers",
			args:       []string{"numbers", "--type", "3", "--threshold", "20"},
			wantOutput: []string{"1 2 3 4 6 8 9 12 16 18\n", "Hamming numbers found: 10"},
		},
		{
			name:       "sweep",
			args:       []string{"sweep", "--max-type", "35", "--max-threshold", "1200", "--granularity", "11", "--workers", "2"},
			wantOutput: []string{"Sweep complete: 144 cells computed", "Grid: 12 thresholds x 12 types"},
		},
		{
			name:      "sweep granularity too low",
			args:      []string{"sweep", "--granularity", "10"},
			wantErr:   "granularity too low",
			notOutput: []string{"Hamming Sweep", "threshold\\type", "Sampling"},
		},
		{
			name:      "sweep max type too low",
			args:      []string{"sweep", "--max-type", "2"},
			wantErr:   "max type too low",
			notOutput: []string{"Hamming Sweep", "threshold\\type", "Sampling"},
		},
		{
			name:      "sweep threshold range overflows",
			args:      []string{"sweep", "--min-threshold=-9223372036854775807", "--max-threshold=9223372036854775807"},
			wantErr:   "threshold range does not fit",
			notOutput: []string{"Hamming Sweep", "threshold\\type", "Sampling"},
		},
		{
			name:    "unexpected argument",
			args:    []string{"count", "extra"},
			wantErr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCmd(t, tt.args...)
			for _, unwanted := range tt.notOutput {
				assert.NotContains(t, output, unwanted)
			}
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestNumbersCommand_Output(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbers.txt")

	output, err := runCmd(t, "numbers", "-t", "2", "-k", "10", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Output file: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n4\n8\n", string(data))
}

func TestSweepCommand_Output(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")

	_, err := runCmd(t, "sweep", "--max-type", "35", "--max-threshold", "1200", "-g", "11", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 145)
	assert.Equal(t, "type,threshold,count", lines[0])
	// type 2 up to 100: powers of two
	assert.Equal(t, "2,100,7", lines[1])
}
