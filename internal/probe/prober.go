package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

//go:generate mockgen -destination=mocks/mock_prober.go -package=mocks . Prober

// Prober extracts the raw stream list of a media file.
// Implementations must be safe for concurrent use.
type Prober interface {
	Probe(ctx context.Context, path string) (*Result, error)
}

// DefaultTimeout bounds a single ffprobe invocation.
const DefaultTimeout = 2 * time.Minute

// FFProbe invokes the ffprobe binary.
type FFProbe struct {
	Binary  string        // defaults to "ffprobe"
	Timeout time.Duration // 0 means DefaultTimeout
}

// NewFFProbe returns an FFProbe for binary with the given timeout.
func NewFFProbe(binary string, timeout time.Duration) *FFProbe {
	return &FFProbe{Binary: binary, Timeout: timeout}
}

// Probe runs a single ffprobe JSON call against path and returns the parsed
// stream list. The call is killed once the timeout elapses.
func (f *FFProbe) Probe(ctx context.Context, path string) (*Result, error) {
	binary := f.Binary
	if binary == "" {
		binary = "ffprobe"
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	cmd.WaitDelay = time.Second

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("ffprobe %q: timed out after %s", path, timeout)
		}
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return &r, nil
}
