package event

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Stream writes the events of the given types, or of every type when none
// is given, to w as JSON lines. It reads the watermill topics of bus. The
// returned wait blocks until every topic is drained, which happens once
// ctx is done or the bus is closed.
func Stream(ctx context.Context, bus *Bus, w io.Writer, types ...EventType) (wait func(), err error) {
	if len(types) == 0 {
		types = Types
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, typ := range types {
		msgs, err := bus.Messages(ctx, typ)
		if err != nil {
			return nil, fmt.Errorf("subscribe %s: %w", typ, err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range msgs {
				mu.Lock()
				_, _ = w.Write(append(msg.Payload, '\n'))
				mu.Unlock()
				msg.Ack()
			}
		}()
	}
	return wg.Wait, nil
}
