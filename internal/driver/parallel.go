package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"mum/internal/astio"
	"mum/internal/observ"
	"mum/internal/source"
)

// isASTFile reports whether path has an extension astio can decode.
func isASTFile(path string) bool {
	_, err := astio.DetectFormat(path)
	return err == nil
}

// ListASTFiles возвращает отсортированный список всех AST-документов в директории
func ListASTFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// служебные каталоги не сканируем
			if path != dir && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if isASTFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandInputs turns command-line arguments into a file list: directories
// are scanned with ListASTFiles, files are taken as is. Duplicates are dropped.
func ExpandInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{}, len(args))
	var out []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			// missing files are reported per file by the loader
			add(arg)
			continue
		}
		files, err := ListASTFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

// RunFiles runs the pipeline over paths in parallel. Documents are loaded
// into one FileSet sequentially; analysis and generation run concurrently.
// Results keep the order of paths.
func RunFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []*Result, error) {
	fileSet := source.NewFileSet()
	if len(paths) == 0 {
		return fileSet, nil, nil
	}

	for _, path := range paths {
		Emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	// Предзагрузка: FileSet не потокобезопасен
	loads := make([]loaded, len(paths))
	timers := make([]*observ.Timer, len(paths))
	for i, path := range paths {
		timers[i] = observ.NewTimer()
		idx := timers[i].Begin(string(StageLoad))
		Emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		loads[i] = load(fileSet, path, opts)
		timers[i].End(idx, "")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = process(gctx, path, loads[i], timers[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
