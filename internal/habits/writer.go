package habits

import (
	"sync"

	"github.com/julianstephens/habitharbor/internal/logger"
	"github.com/julianstephens/habitharbor/internal/storage"
)

// writer saves blobs on a background goroutine. Only the most recent blob is
// kept; older pending blobs are dropped.
type writer struct {
	adapter storage.Adapter
	onError func(error)

	mu      sync.Mutex
	pending []byte

	kick    chan struct{}
	flushes chan chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newWriter(adapter storage.Adapter, onError func(error)) *writer {
	w := &writer{
		adapter: adapter,
		onError: onError,
		kick:    make(chan struct{}, 1),
		flushes: make(chan chan struct{}),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) enqueue(data []byte) {
	w.mu.Lock()
	w.pending = data
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.kick:
			w.write()
		case ack := <-w.flushes:
			w.write()
			close(ack)
		case <-w.done:
			w.write()
			return
		}
	}
}

func (w *writer) write() {
	w.mu.Lock()
	data := w.pending
	w.pending = nil
	w.mu.Unlock()

	if data == nil {
		return
	}
	if err := w.adapter.Save(data); err != nil {
		logger.Warn("Background save failed", "error", err)
		if w.onError != nil {
			w.onError(&SaveError{Err: err})
		}
	}
}

// flush waits until everything enqueued so far is written.
func (w *writer) flush() {
	ack := make(chan struct{})
	select {
	case w.flushes <- ack:
		<-ack
	case <-w.stopped:
	}
}

// stop writes any pending blob and ends the goroutine.
func (w *writer) stop() {
	w.once.Do(func() {
		close(w.done)
	})
	<-w.stopped
}
