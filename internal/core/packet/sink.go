package packet

import (
	"sync"

	"github.com/Rakise/Geyser/internal/core/observability/log"
)

// Sink accepts outbound packets addressed to a runtime entity id. Delivery is
// fire-and-forget from the caller's point of view.
type Sink interface {
	Send(runtimeID int64, pk Packet)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(runtimeID int64, pk Packet)

func (f SinkFunc) Send(runtimeID int64, pk Packet) { f(runtimeID, pk) }

// Discard drops every packet.
var Discard Sink = SinkFunc(func(int64, Packet) {})

// Tee fans every packet out to each sink in order.
type Tee []Sink

func (t Tee) Send(runtimeID int64, pk Packet) {
	for _, s := range t {
		s.Send(runtimeID, pk)
	}
}

// LogSink logs each packet at debug level.
func LogSink(logger log.Log) Sink {
	return SinkFunc(func(runtimeID int64, pk Packet) {
		logger.Debug("Outbound packet",
			log.String("packet", pk.Name()),
			log.Int64("runtime_id", runtimeID))
	})
}

// Sent is one packet captured by a Recorder.
type Sent struct {
	RuntimeID int64
	Packet    Packet
}

// Recorder keeps every packet it receives. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	sent []Sent
}

func (r *Recorder) Send(runtimeID int64, pk Packet) {
	r.mu.Lock()
	r.sent = append(r.sent, Sent{RuntimeID: runtimeID, Packet: pk})
	r.mu.Unlock()
}

// Sent returns a copy of everything received so far.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sent(nil), r.sent...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.sent = nil
	r.mu.Unlock()
}

// Names lists the packet names received, in order.
func (r *Recorder) Names() []string {
	sent := r.Sent()
	out := make([]string, len(sent))
	for i, s := range sent {
		out[i] = s.Packet.Name()
	}
	return out
}

// Filter returns the packets of type T received by r, in order.
func Filter[T Packet](r *Recorder) []T {
	var out []T
	for _, s := range r.Sent() {
		if pk, ok := s.Packet.(T); ok {
			out = append(out, pk)
		}
	}
	return out
}

// For returns the packets of type T addressed to runtimeID.
func For[T Packet](r *Recorder, runtimeID int64) []T {
	var out []T
	for _, s := range r.Sent() {
		if s.RuntimeID != runtimeID {
			continue
		}
		if pk, ok := s.Packet.(T); ok {
			out = append(out, pk)
		}
	}
	return out
}
