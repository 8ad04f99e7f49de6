// Package coalesce provides a level-triggered FIFO queue that keeps at most
// one pending value per key.
//
// Putting a value for a key that is already pending replaces the stored
// value but keeps the key's place in line, so a slow consumer always sees
// the latest value for each key and the queue never grows beyond the number
// of distinct keys.
//
//	q := coalesce.New[string, string]()
//	_ = q.Put(ctx, "a", "first")
//	_ = q.Put(ctx, "b", "first")
//	_ = q.Put(ctx, "a", "second")
//
//	v, _ := q.Get(ctx) // "second"
//	v, _ = q.Get(ctx)  // "first" (for b)
package coalesce
