// Package reflector keeps a delivery queue in step with the state of a
// remote collection that can only be listed.
//
// # Overview
//
// A Reflector periodically lists every object in scope, compares the result
// with the snapshot taken on the previous pass and emits one Delta per
// object that was added, changed or deleted. Deltas are put into a
// coalescing queue keyed by object identity, so a slow consumer only ever
// holds one pending Delta per object and always sees the most recent one.
//
// # Change detection
//
// Objects are identified by namespace and name. Whether an object changed
// is decided by its resourceVersion alone: two objects with the same
// version are treated as identical even if other fields differ. A remote
// that rewrites versions without real changes therefore produces spurious
// changed Deltas.
//
// # Scheduling
//
//   - The next pass starts ResyncPeriod after the previous pass completed,
//     optionally jittered, so passes never overlap.
//   - A failed list leaves the snapshot untouched and is retried with
//     capped exponential backoff and jitter.
//   - Every Delta of a pass is enqueued before the next list begins.
//
// # Usage
//
//	q := coalesce.New[reflector.Key, reflector.Delta]()
//	r := reflector.New(lister, q, reflector.Options{
//	    ListOptions:  reflector.ListOptions{Namespace: "default"},
//	    ResyncPeriod: 30 * time.Second,
//	})
//	go r.Run(ctx)
//
//	for {
//	    d, err := q.Get(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    handle(d)
//	}
package reflector
