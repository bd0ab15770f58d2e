package batch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"scribe/internal/app/api/deepgram"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/tools"
)

// Invoker runs registered tools.
type Invoker interface {
	Invoke(ctx context.Context, name tools.ToolName, args map[string]any) (string, error)
}

// Options controls one batch run.
type Options struct {
	Model    string
	Language string
	Save     bool
	Parallel int
	Progress ProgressConfig
}

// Result is the outcome of transcribing one file.
type Result struct {
	File   string
	Output string
	Err    error
}

// Runner transcribes many files through the transcribe_audio tool.
type Runner struct {
	tools  Invoker
	logger *zap.Logger
}

func NewRunner(invoker Invoker, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{tools: invoker, logger: logger.Named("batch")}
}

// Run transcribes files with at most opts.Parallel calls in flight and
// returns one Result per file, in input order. A failed file does not stop
// the others.
func (r *Runner) Run(ctx context.Context, files []string, opts Options) []Result {
	results := make([]Result, len(files))
	if len(files) == 0 {
		return results
	}

	parallel := opts.Parallel
	if parallel < 1 {
		parallel = 1
	}

	manager := NewProgressManager(opts.Progress)
	bar := manager.CreateBar(len(files), "Transcribing")
	defer manager.Wait()

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallel)

	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()

			sem <- struct{}{}
			start := time.Now()
			results[i] = r.transcribe(ctx, file, opts)
			<-sem

			bar.Increment(time.Since(start))
		}(i, file)
	}
	wg.Wait()
	bar.Complete()

	return results
}

func (r *Runner) transcribe(ctx context.Context, file string, opts Options) Result {
	args := map[string]any{
		"audio_file": file,
		"save":       opts.Save,
	}
	if opts.Model != "" {
		args["model"] = opts.Model
	}
	if opts.Language != "" {
		args["language"] = opts.Language
	}

	output, err := r.tools.Invoke(ctx, tools.TranscribeAudio, args)
	if err != nil {
		r.logger.Warn("transcription failed", zap.String("file", file), zap.Error(err))
	} else {
		r.logger.Info("transcription completed", zap.String("file", file))
	}
	return Result{File: file, Output: output, Err: err}
}

// CollectAudioFiles expands paths into audio files. Directories contribute
// their direct children with a supported extension, sorted by name.
func CollectAudioFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, apperrors.NotFound("audio file", path)
			}
			return nil, apperrors.ErrStorageIO.Wrap(err, "stat "+path)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, apperrors.ErrStorageIO.Wrap(err, "read directory "+path)
		}
		var found []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if isSupported(entry.Name()) {
				found = append(found, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

func isSupported(name string) bool {
	return deepgram.ValidateExtension(name) == nil
}
