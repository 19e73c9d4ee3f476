// Package pingutil shells out to the OS ping utility and scrapes the
// round-trip statistics from its text output.
package pingutil

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
)

// msPattern matches a decimal number immediately followed by " ms".
var msPattern = regexp.MustCompile(`(\d+\.?\d*) ms`)

// Stats holds parsed round-trip times as the ping utility printed them.
// Fields are "N/A" when the output did not contain enough " ms" values.
type Stats struct {
	Min string
	Avg string
	Max string
}

// Output is the captured result of one ping invocation.
type Output struct {
	Stdout string
	Stderr string
}

// Pinger runs the system ping binary with a fixed probe count.
type Pinger struct {
	count int
}

func NewPinger(count int) *Pinger {
	return &Pinger{count: count}
}

// Run pings host and returns captured stdout and stderr. A non-zero exit
// status is not an error by itself: unreachable hosts still produce
// output worth showing to the user. The context bounds the subprocess.
func (p *Pinger) Run(ctx context.Context, host string) (*Output, error) {
	countFlag := "-c"
	if runtime.GOOS == "windows" {
		countFlag = "-n"
	}

	cmd := exec.CommandContext(ctx, "ping", countFlag, strconv.Itoa(p.count), host)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil && stdout.Len() == 0 && stderr.Len() == 0 {
		// ping itself could not be started.
		return nil, err
	}

	return &Output{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// ParseStats scans output for all " ms" values and maps the last three,
// in order, onto min/avg/max. Missing values back-fill as "N/A": with two
// matches min is "N/A", with one both min and avg are.
//
// This assumes the utility's summary line (min/avg/max) provides the
// final three " ms" occurrences, which holds for the common iputils and
// BSD ping formats but is not guaranteed across platforms or locales.
// Callers must check Found before using the fields.
func ParseStats(output string) (Stats, bool) {
	matches := msPattern.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return Stats{Min: "N/A", Avg: "N/A", Max: "N/A"}, false
	}

	stats := Stats{Min: "N/A", Avg: "N/A", Max: "N/A"}
	n := len(matches)
	if n >= 3 {
		stats.Min = matches[n-3][1]
	}
	if n >= 2 {
		stats.Avg = matches[n-2][1]
	}
	stats.Max = matches[n-1][1]
	return stats, true
}
