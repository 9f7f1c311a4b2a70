package buffer

import "log"

// Unbounded creates a channel buffer that grows as needed, so producers on
// the consumer's own goroutine never deadlock against it.
// It returns a write-only channel to feed data in, and a read-only channel to read data out.
//
// done: Stops the pump. Queued items are discarded and out is closed.
// initialCap: The starting size of the backing slice.
// hardLimit: The maximum number of items to buffer before dropping the oldest.
//
// Usage:
//
//	in, out := buffer.Unbounded[event.Event](done, 64, 10000)
//	in <- ev
//	ev := <-out
func Unbounded[T any](done <-chan struct{}, initialCap int, hardLimit int) (chan<- T, <-chan T) {
	in := make(chan T, 10)
	out := make(chan T, 10)

	go func() {
		defer close(out)

		queue := make([]T, 0, initialCap)

		for {
			var next T
			var downstream chan T

			// Enable the 'out' case only if we have data to send.
			if len(queue) > 0 {
				next = queue[0]
				downstream = out
			}

			select {
			case <-done:
				return

			case val, ok := <-in:
				if !ok {
					for _, item := range queue {
						select {
						case out <- item:
						case <-done:
							return
						}
					}
					return
				}

				if len(queue) >= hardLimit {
					log.Printf("[Buffer] Queue limit reached (%d), dropping oldest item", hardLimit)
					var zero T
					queue[0] = zero
					queue = queue[1:]
				}

				queue = append(queue, val)

			case downstream <- next:
				var zero T
				queue[0] = zero
				queue = queue[1:]
			}
		}
	}()

	return in, out
}
