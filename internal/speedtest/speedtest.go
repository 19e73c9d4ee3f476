// Package speedtest wraps the speedtest.net measurement client behind a
// single blocking call that the bot handlers can run under a timeout.
package speedtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/showwin/speedtest-go/speedtest"
)

// Result holds one completed measurement. Immutable once returned.
type Result struct {
	DownloadMbps  float64
	UploadMbps    float64
	PingMs        float64
	ServerSponsor string
	ServerCountry string
	ISP           string
	IP            string
}

// Runner selects the best server and measures against it.
type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

// Run performs a full measurement: best-server selection, then latency,
// download and upload tests in that order. Each handler invocation gets
// its own client, so concurrent commands do not share state.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	client := speedtest.New()

	user, err := client.FetchUserInfoContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}

	servers, err := client.FetchServerListContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch servers: %w", err)
	}

	targets, err := servers.FindServer(nil)
	if err != nil {
		return nil, fmt.Errorf("find server: %w", err)
	}
	if len(targets) == 0 {
		return nil, errors.New("no speedtest server available")
	}
	server := targets[0]

	if err := server.PingTestContext(ctx, func(time.Duration) {}); err != nil {
		return nil, fmt.Errorf("ping test: %w", err)
	}
	if err := server.DownloadTestContext(ctx); err != nil {
		return nil, fmt.Errorf("download test: %w", err)
	}
	if err := server.UploadTestContext(ctx); err != nil {
		return nil, fmt.Errorf("upload test: %w", err)
	}

	return &Result{
		DownloadMbps:  server.DLSpeed.Mbps(),
		UploadMbps:    server.ULSpeed.Mbps(),
		PingMs:        float64(server.Latency.Microseconds()) / 1000.0,
		ServerSponsor: server.Sponsor,
		ServerCountry: server.Country,
		ISP:           user.Isp,
		IP:            user.IP,
	}, nil
}
