package pingutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPinger(4).Run(ctx, "localhost")
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseStats(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		wantFound bool
		want      Stats
	}{
		{
			name:      "three matches map to min avg max",
			output:    "reply 1.2 ms then 3.4 ms then 5.6 ms",
			wantFound: true,
			want:      Stats{Min: "1.2", Avg: "3.4", Max: "5.6"},
		},
		{
			name: "summary line wins over per-probe times",
			output: "64 bytes from 142.250.74.110: icmp_seq=1 ttl=115 time=12.3 ms\n" +
				"64 bytes from 142.250.74.110: icmp_seq=2 ttl=115 time=11.9 ms\n" +
				"--- google.com ping statistics ---\n" +
				"round-trip min = 11.9 ms, avg = 12.1 ms, max = 12.3 ms\n",
			wantFound: true,
			want:      Stats{Min: "11.9", Avg: "12.1", Max: "12.3"},
		},
		{
			name:      "two matches leave min unset",
			output:    "time=3.4 ms time=5.6 ms",
			wantFound: true,
			want:      Stats{Min: "N/A", Avg: "3.4", Max: "5.6"},
		},
		{
			name:      "single match leaves min and avg unset",
			output:    "time=7.0 ms",
			wantFound: true,
			want:      Stats{Min: "N/A", Avg: "N/A", Max: "7.0"},
		},
		{
			name:      "no matches",
			output:    "ping: unknown host nosuchhost.invalid",
			wantFound: false,
			want:      Stats{Min: "N/A", Avg: "N/A", Max: "N/A"},
		},
		{
			name:      "values map by position not by label",
			output:    "Minimum = 1 ms, Maximum = 4 ms, Average = 2 ms",
			wantFound: true,
			want:      Stats{Min: "1", Avg: "4", Max: "2"},
		},
		{
			name:      "unit without space does not match",
			output:    "time 1001ms total",
			wantFound: false,
			want:      Stats{Min: "N/A", Avg: "N/A", Max: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ParseStats(tt.output)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}
