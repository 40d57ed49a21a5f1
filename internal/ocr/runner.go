// internal/ocr/runner.go
package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"loan-workers/internal/common/logger"
)

// Runner runs an external command. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type ExecRunner struct {
	logger logger.Logger
}

func NewExecRunner(log logger.Logger) *ExecRunner {
	return &ExecRunner{logger: log}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		r.logger.Error("exec failed", map[string]interface{}{
			"cmd":        name,
			"args":       strings.Join(args, " "),
			"durationMs": dur.Milliseconds(),
			"error":      err.Error(),
			"stderr":     truncate(errb.String(), 8<<10),
		})
	} else {
		r.logger.Debug("exec ok", map[string]interface{}{
			"cmd":         name,
			"args":        strings.Join(args, " "),
			"durationMs":  dur.Milliseconds(),
			"stdoutBytes": out.Len(),
		})
	}

	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
