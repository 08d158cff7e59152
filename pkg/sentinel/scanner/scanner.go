// Package scanner implements the snapshot builder: a target-directory
// walk that filters via the ignore matcher and hashes surviving files
// in parallel.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/hollow-host/sentinel/pkg/sentinel/hash"
	"github.com/hollow-host/sentinel/pkg/sentinel/ignore"
	"github.com/hollow-host/sentinel/pkg/sentinel/pathutil"
	"github.com/hollow-host/sentinel/pkg/sentinel/tuner"
	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

// Options configures a single snapshot build.
type Options struct {
	// Root is the target directory to scan. The caller is responsible
	// for verifying it exists and is a directory.
	Root string

	// Ignore filters candidate paths. A nil Matcher means nothing is
	// ignored beyond the ignore package's built-in rules.
	Ignore *ignore.Matcher

	// WorkerOverride, if positive, overrides the detected hardware
	// parallelism when sizing the hashing pool.
	WorkerOverride int

	// Resources lets callers inject detected system resources (mainly
	// for tests); zero value triggers live detection.
	Resources tuner.SystemResources
}

// pendingFile is a worklist entry surviving traversal and ignore
// filtering, awaiting a hash.
type pendingFile struct {
	path  string
	size  uint64
	mtime int64
}

// Build walks opts.Root and returns a FileMap of every accepted regular
// file, plus the elapsed wall-clock duration in seconds.
func Build(ctx context.Context, opts Options) (types.FileMap, float64, error) {
	start := time.Now()

	matcher := opts.Ignore
	if matcher == nil {
		matcher = ignore.New(nil)
	}

	root := pathutil.Normalize(opts.Root)

	pending, err := collectWorklist(ctx, root, matcher)
	if err != nil {
		return nil, 0, err
	}

	resources := opts.Resources
	if resources.CPUCores == 0 {
		if detected, err := tuner.Detect(); err == nil {
			resources = detected
		} else {
			resources = tuner.SystemResources{CPUCores: 1}
		}
	}

	workers := tuner.WorkerCount(resources, len(pending), opts.WorkerOverride)

	var result types.FileMap
	if tuner.ShouldParallelize(len(pending), workers) {
		result = hashParallel(ctx, pending, workers)
	} else {
		result = hashSequential(ctx, pending)
	}

	return result, time.Since(start).Seconds(), nil
}

// collectWorklist performs the concurrent fastwalk traversal, skipping entries
// whose status cannot be read and filtering through the ignore matcher
// against both absolute and root-relative forms of each candidate.
func collectWorklist(ctx context.Context, root string, matcher *ignore.Matcher) ([]pendingFile, error) {
	var (
		mu      sync.Mutex
		pending []pendingFile
	)

	cfg := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&cfg, root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if os.IsPermission(err) || os.IsNotExist(err) {
				return nil
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, statErr := d.Info()
		if statErr != nil {
			return nil
		}

		abs := pathutil.Normalize(path)
		rel := pathutil.Rel(root, abs)
		if matcher.MatchEither(abs, rel) {
			return nil
		}

		mu.Lock()
		pending = append(pending, pendingFile{
			path:  abs,
			size:  uint64(info.Size()),
			mtime: info.ModTime().Unix(),
		})
		mu.Unlock()
		return nil
	})
	if walkErr != nil && walkErr != context.Canceled {
		return nil, walkErr
	}

	return pending, nil
}

func hashSequential(ctx context.Context, pending []pendingFile) types.FileMap {
	out := make(types.FileMap, len(pending))
	for _, p := range pending {
		select {
		case <-ctx.Done():
			return out
		default:
		}
		if entry, ok := hashOne(p); ok {
			out[entry.Path] = entry
		}
	}
	return out
}

// hashParallel spawns workers pulling indices from a shared monotonic
// counter. Each worker accumulates into a local slice and merges into
// the shared map with a single mutex acquisition per batch, so no
// worker ever observes another's partial state.
func hashParallel(ctx context.Context, pending []pendingFile, workers int) types.FileMap {
	out := make(types.FileMap, len(pending))
	var (
		mu   sync.Mutex
		next atomic.Int64
		wg   sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]types.FileEntry, 0, len(pending)/workers+1)

			for {
				idx := next.Add(1) - 1
				if idx >= int64(len(pending)) {
					break
				}
				select {
				case <-ctx.Done():
					break
				default:
				}

				if entry, ok := hashOne(pending[idx]); ok {
					local = append(local, entry)
				}
			}

			mu.Lock()
			for _, e := range local {
				out[e.Path] = e
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	return out
}

// hashOne computes the digest for a single worklist entry. A file whose
// hash comes back empty is treated as unreadable and dropped.
func hashOne(p pendingFile) (types.FileEntry, bool) {
	defer func() { recover() }()

	digest := hash.FileExpectingSize(p.path, p.size)
	if digest == "" {
		return types.FileEntry{}, false
	}
	return types.FileEntry{
		Path:  p.path,
		Hash:  digest,
		Size:  p.size,
		Mtime: p.mtime,
	}, true
}
