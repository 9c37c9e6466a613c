package execution

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"qtr/internal/domain"
)

// fileOutcome is what a worker learned about one file. Workers never report
// directly; outcomes are replayed to the reporter in file order.
type fileOutcome struct {
	passed int
	failed *domain.TestCase
	err    error
	done   chan struct{}
}

// runParallel runs files across a pool of workers. Output and fail-fast
// behaviour match the sequential run: outcomes are reported in file order and
// the first failing file in that order stops the run.
func (r *Runner) runParallel(ctx context.Context, files []*domain.TestFile, record *domain.RunRecord) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]*fileOutcome, len(files))
	for i := range outcomes {
		outcomes[i] = &fileOutcome{done: make(chan struct{})}
	}

	fileQueue := make(chan int)
	go func() {
		defer close(fileQueue)
		for i := range files {
			select {
			case <-ctx.Done():
				// Files that never reached a worker still need an outcome
				for j := i; j < len(files); j++ {
					outcomes[j].err = errors.Wrap(ctx.Err(), "run cancelled")
					close(outcomes[j].done)
				}
				return
			case fileQueue <- i:
			}
		}
	}()

	var mu sync.Mutex
	firstFailed := len(files)

	workerCount := r.opts.Workers
	if workerCount > len(files) {
		workerCount = len(files)
	}

	var wg sync.WaitGroup
	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range fileQueue {
				mu.Lock()
				skip := idx > firstFailed
				mu.Unlock()
				if skip {
					close(outcomes[idx].done)
					continue
				}

				r.logger.Debug("worker picked file", zap.Int("worker", workerID), zap.String("file", files[idx].Name))
				r.runFile(ctx, files[idx], outcomes[idx])

				if outcomes[idx].err != nil {
					mu.Lock()
					if idx < firstFailed {
						firstFailed = idx
					}
					mu.Unlock()
				}
				close(outcomes[idx].done)
			}
		}(w)
	}

	var runErr error
	for i, tf := range files {
		out := outcomes[i]
		<-out.done

		r.reporter.AnnounceFile(tf.Name)
		for j := 0; j < out.passed; j++ {
			record.CasesPassed++
			r.reporter.CasePassed()
		}
		if out.err != nil {
			runErr = r.fail(record, tf, out.failed, out.err)
			break
		}
		record.FilesPassed++
	}

	cancel()
	wg.Wait()
	return runErr
}

// runFile executes a file's cases in order until one fails
func (r *Runner) runFile(ctx context.Context, tf *domain.TestFile, out *fileOutcome) {
	for i := range tf.Cases {
		tc := &tf.Cases[i]
		if err := r.runCase(ctx, tf, tc); err != nil {
			out.failed = tc
			out.err = err
			return
		}
		out.passed++
	}
}
