// Package assets loads the images and static resources served by the image and resource helpers.
package assets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aescanero/dago-node-pdfgen/internal/helpers"
	"go.uber.org/zap"
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// Load reads images and resources once at startup.
// A missing directory yields an empty map and a warning.
func Load(imageDir, resourceDir string, logger *zap.Logger) (helpers.Assets, error) {
	images, err := LoadImages(imageDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return helpers.Assets{}, fmt.Errorf("failed to load images: %w", err)
		}
		logger.Warn("image directory not found", zap.String("dir", imageDir))
		images = map[string]string{}
	}

	resources, err := LoadResources(resourceDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return helpers.Assets{}, fmt.Errorf("failed to load resources: %w", err)
		}
		logger.Warn("resource directory not found", zap.String("dir", resourceDir))
		resources = map[string][]byte{}
	}

	logger.Info("assets loaded",
		zap.Int("images", len(images)),
		zap.Int("resources", len(resources)),
	)

	return helpers.Assets{Images: images, Resources: resources}, nil
}

// LoadImages reads every supported image in dir as a base64 data URI keyed by file name
func LoadImages(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	images := make(map[string]string)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		mimeType, ok := imageTypes[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", entry.Name(), err)
		}
		images[entry.Name()] = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	}

	return images, nil
}

// LoadResources reads every regular file in dir keyed by file name
func LoadResources(dir string) (map[string][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	resources := make(map[string][]byte)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read resource %s: %w", entry.Name(), err)
		}
		resources[entry.Name()] = data
	}

	return resources, nil
}
