package artifact

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"shopscan/pkg/logger"
)

// Debug holds the side artifacts captured after pagination
type Debug struct {
	Screenshot []byte
	HTML       string
}

// WriteDebug saves the screenshot and HTML snapshot. Failures are logged and never
// returned; an empty path skips that artifact.
func WriteDebug(ctx context.Context, screenshotPath, htmlPath string, d Debug) {
	log := logger.FromContext(ctx)

	if screenshotPath != "" && len(d.Screenshot) > 0 {
		if err := writeFile(screenshotPath, d.Screenshot); err != nil {
			log.Warn("Failed to save debug screenshot", zap.String("path", screenshotPath), zap.Error(err))
		} else {
			log.Debug("Saved debug screenshot", zap.String("path", screenshotPath), zap.Int("bytes", len(d.Screenshot)))
		}
	}

	if htmlPath != "" && d.HTML != "" {
		if err := writeFile(htmlPath, []byte(d.HTML)); err != nil {
			log.Warn("Failed to save debug HTML", zap.String("path", htmlPath), zap.Error(err))
		} else {
			log.Debug("Saved debug HTML", zap.String("path", htmlPath), zap.Int("bytes", len(d.HTML)))
		}
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
