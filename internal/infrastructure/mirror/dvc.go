package mirror

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"modelhub-backend/pkg/logger"
)

// runner executes an external command; swappable in tests.
type runner func(ctx context.Context, dir, name string, args ...string) error

func execRunner(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s %v: %w: %s", name, args, err, out)
	}
	return nil
}

// DVC shells out to the dvc binary to track artifact files. The tool's
// absence or misconfiguration must not block registration, so every failure
// is reported back for logging and otherwise ignored.
type DVC struct {
	bin     string
	workDir string
	run     runner
}

func NewDVC(bin, workDir string) *DVC {
	return &DVC{
		bin:     bin,
		workDir: workDir,
		run:     execRunner,
	}
}

// Init prepares a dvc repository in the working directory if one does not
// exist yet. Errors are logged and ignored - registration works without dvc.
func (d *DVC) Init(ctx context.Context) {
	marker := filepath.Join(d.workDir, ".dvc")
	if _, err := os.Stat(marker); err == nil {
		return
	}

	if err := d.run(ctx, d.workDir, d.bin, "init"); err != nil {
		logger.Warn("dvc init failed", err)
		return
	}
	if err := d.run(ctx, d.workDir, d.bin, "config", "core.autostage", "true"); err != nil {
		logger.Warn("dvc config failed", err)
	}
}

func (d *DVC) Mirror(ctx context.Context, storagePath string) (string, error) {
	if err := d.run(ctx, d.workDir, d.bin, "add", storagePath); err != nil {
		return "", fmt.Errorf("dvc add: %w", err)
	}
	if err := d.run(ctx, d.workDir, d.bin, "commit"); err != nil {
		return "", fmt.Errorf("dvc commit: %w", err)
	}

	// Locator inside the dvc repo: <version>/<filename>.
	version := filepath.Base(filepath.Dir(storagePath))
	return version + "/" + filepath.Base(storagePath), nil
}
