package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// moveToProcessing moves video file from input to processing folder
func (p *implProcessor) moveToProcessing(ctx context.Context, videoPath string) (string, error) {
	destPath, err := uniquePath(p.cfg.Paths.Processing, filepath.Base(videoPath))
	if err != nil {
		return "", fmt.Errorf("move to processing: %w", err)
	}

	p.logger.Info(ctx, "Moving to processing folder: %s -> %s", videoPath, destPath)

	if err := os.Rename(videoPath, destPath); err != nil {
		return "", fmt.Errorf("move to processing: %w", err)
	}

	return destPath, nil
}

// moveToArchived moves the processed source out of the processing folder
func (p *implProcessor) moveToArchived(ctx context.Context, videoPath string) error {
	destPath, err := uniquePath(p.cfg.Paths.Archived, filepath.Base(videoPath))
	if err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	p.logger.Info(ctx, "Archiving: %s -> %s", videoPath, destPath)

	if err := os.Rename(videoPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}

// uniquePath returns dir/filename, suffixed with a timestamp when the name is
// already taken.
func uniquePath(dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	dest := filepath.Join(dir, filename)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest, nil
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102-150405.000"), ext)), nil
}

func writeJSONFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
