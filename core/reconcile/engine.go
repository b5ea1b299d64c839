package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Intersect returns the roster entries whose key appears in ids, in roster
// order. Keys are compared with exact string equality.
func Intersect[E any](ids []string, roster []E, key func(E) string) []E {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	matched := make([]E, 0, len(roster))
	for _, entry := range roster {
		if _, ok := wanted[key(entry)]; ok {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Project maps entries to non-empty, de-duplicated strings, keeping first-seen order.
func Project[E any](entries []E, field func(E) string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		v := field(e)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ForEach runs fn over items with at most workers calls in flight and returns
// one Result per item in input order. A failing item never cancels the others;
// only ctx cancellation stops work that has not started yet.
func ForEach[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) []Result[R] {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result[R], len(items))
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, item := range items {
		i, item := i, item
		results[i].Index = i

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			v, err := fn(ctx, item)
			results[i].Value = v
			results[i].Err = err
			return nil
		})
	}

	_ = g.Wait()
	return results
}
