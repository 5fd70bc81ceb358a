package repo

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrInvalidURL   = errors.New("invalid repository url")
	ErrGitNotFound  = errors.New("git not found in PATH")
	ErrDestNotEmpty = errors.New("destination already exists and is not empty")
)

// CloneError carries the exit status and stderr of a failed git clone.
type CloneError struct {
	ExitCode int
	Stderr   string
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("git clone failed (exit %d): %s", e.ExitCode, strings.TrimSpace(e.Stderr))
}

// Options configures a clone.
type Options struct {
	WorkRoot string // parent for generated temp destinations
	DestDir  string // exact destination; must be absent or empty
	Depth    int
	Timeout  time.Duration
}

// RuntimeRoot returns (and creates) the runtime directory under the
// project root, the default work root for clones and run logs.
func RuntimeRoot(projectRoot string) (string, error) {
	rt := filepath.Join(projectRoot, "runtime")
	if err := os.MkdirAll(rt, 0755); err != nil {
		return "", err
	}
	return rt, nil
}

// Clone runs a shallow git clone and returns the destination directory.
// Every failure mode is distinguishable: ErrInvalidURL, ErrGitNotFound,
// ErrDestNotEmpty, a context deadline, or a *CloneError with the tool's
// exit status.
func Clone(ctx context.Context, repoURL string, opts Options) (string, error) {
	if !strings.Contains(repoURL, "://") && !strings.Contains(repoURL, "@") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, repoURL)
	}

	dest, err := resolveDest(opts)
	if err != nil {
		return "", err
	}

	depth := opts.Depth
	if depth <= 0 {
		depth = 1
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", fmt.Sprint(depth), repoURL, dest)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git clone timed out after %s: %w", timeout, ctx.Err())
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return "", ErrGitNotFound
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &CloneError{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return "", err
	}
	return dest, nil
}

func resolveDest(opts Options) (string, error) {
	if opts.DestDir != "" {
		dest, err := filepath.Abs(opts.DestDir)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return "", err
		}
		if entries, err := os.ReadDir(dest); err == nil && len(entries) > 0 {
			return "", fmt.Errorf("%w: %s", ErrDestNotEmpty, dest)
		}
		return dest, nil
	}

	workRoot := opts.WorkRoot
	if workRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		rt, err := RuntimeRoot(cwd)
		if err != nil {
			return "", err
		}
		workRoot = rt
	}
	if err := os.MkdirAll(workRoot, 0755); err != nil {
		return "", err
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return filepath.Join(workRoot, "tmp-"+hex.EncodeToString(buf)), nil
}
