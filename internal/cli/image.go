package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rrens/crop-advisory/internal/client"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/watcher"
	"github.com/rs/zerolog/log"
)

var imageCommands = map[string]command{
	"disease": {"FILE [--crop-type T]", imageRunner("disease")},
	"pest":    {"FILE [--crop-type T]", imageRunner("pest")},
	"crop":    {"FILE", imageRunner("crop")},
	"health":  {"FILE [--crop-type T]", imageRunner("health")},
	"watch":   {"DIR --kind disease|pest|crop|health [--crop-type T]", imageWatch},
}

var imageKinds = map[string]bool{"disease": true, "pest": true, "crop": true, "health": true}

// analyze submits the file at path to the image operation named kind
func (a *App) analyze(ctx context.Context, kind, path, cropType string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img := domain.ImageUpload{Filename: filepath.Base(path), Content: f}
	switch kind {
	case "disease":
		return a.client.Image.ClassifyDisease(ctx, a.sess, img, cropType)
	case "pest":
		return a.client.Image.ClassifyPest(ctx, a.sess, img, cropType)
	case "crop":
		return a.client.Image.ClassifyCrop(ctx, a.sess, img)
	case "health":
		return a.client.Image.AnalyzePlantHealth(ctx, a.sess, img, cropType)
	default:
		return nil, usageErrorf("unknown image kind %q (want disease, pest, crop or health)", kind)
	}
}

func imageRunner(kind string) func(ctx context.Context, a *App, args []string) error {
	return func(ctx context.Context, a *App, args []string) error {
		fs := a.flags("image " + kind)
		cropType := fs.String("crop-type", "", "crop in the photo, e.g. wheat")
		if err := parse(fs, args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return usageErrorf("image %s: expected one FILE", kind)
		}

		result, err := a.analyze(ctx, kind, fs.Arg(0), *cropType)
		if err != nil {
			return err
		}
		return a.print(result)
	}
}

// watchResult is one line of image watch output
type watchResult struct {
	File   string `json:"file"`
	Event  string `json:"event"`
	Result any    `json:"result"`
}

func imageWatch(ctx context.Context, a *App, args []string) error {
	fs := a.flags("image watch")
	kind := fs.String("kind", "", "disease, pest, crop or health")
	cropType := fs.String("crop-type", "", "crop in the photos")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("image watch: expected one DIR")
	}
	if err := required("image watch", fs, "kind"); err != nil {
		return err
	}
	if !imageKinds[*kind] {
		return usageErrorf("image watch: unknown --kind %q", *kind)
	}

	w, err := watcher.New(nil)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	dir := fs.Arg(0)
	events, err := w.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Info().Str("dir", dir).Str("kind", *kind).Msg("Watching for images")

	for ev := range events {
		result, err := a.analyze(ctx, *kind, ev.Path, *cropType)
		if err != nil {
			if errors.Is(err, client.ErrSessionExpired) {
				return err
			}
			log.Error().Err(err).Str("file", ev.Path).Msg("Image analysis failed")
			continue
		}
		if err := a.print(watchResult{File: ev.Path, Event: ev.Operation.String(), Result: result}); err != nil {
			return err
		}
	}
	return nil
}
