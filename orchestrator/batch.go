package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrDuplicateSession fails every batch entry whose session id was already
// claimed by an earlier path, since both would write the same report dir.
var ErrDuplicateSession = errors.New("duplicate session id")

// RunBatch analyzes every path with at most pipeline.concurrency sessions in
// flight. A failing session does not stop the others; the returned error
// joins all failures and reports[i] is nil for each failed path.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string) ([]*Report, error) {
	reports := make([]*Report, len(paths))
	errs := make([]error, len(paths))

	sessions := make([]*Session, len(paths))
	loadErrs := make([]error, len(paths))
	owner := make(map[string]string, len(paths))
	for i, path := range paths {
		s, err := loadSession(path)
		if err == nil {
			if first, ok := owner[s.ID]; ok {
				err = fmt.Errorf("%s: %w %q (first used by %s)", path, ErrDuplicateSession, s.ID, first)
			} else {
				owner[s.ID] = path
			}
		}
		sessions[i], loadErrs[i] = s, err
	}

	limit := p.cfg.Pipeline.Concurrency
	if limit <= 0 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			r, err := p.observe(ctx, path, func() (*Report, error) {
				if loadErrs[i] != nil {
					return nil, loadErrs[i]
				}
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("%s: %w", path, err)
				}
				return p.run(ctx, sessions[i])
			})
			if err != nil {
				errs[i] = err
				return nil
			}
			reports[i] = r
			return nil
		})
	}
	_ = g.Wait()

	p.log.WithField("sessions", len(paths)).Info("batch finished")
	return reports, errors.Join(errs...)
}
