package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Rakise/Geyser/internal/config"
	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/packet"
	"github.com/Rakise/Geyser/pkg/generic"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// TapMessage is one outbound packet as streamed to tap observers.
type TapMessage struct {
	RuntimeID int64         `json:"runtime_id"`
	Packet    string        `json:"packet"`
	Data      packet.Packet `json:"data"`
}

// Tap is a packet.Sink that streams every packet as JSON to connected
// websocket observers. Slow observers are disconnected rather than allowed to
// stall the sessions feeding the tap.
type Tap struct {
	config  config.TapConfig
	logger  log.Log
	buffers *generic.Pool[*bytes.Buffer]

	mu        sync.RWMutex
	observers map[*tapObserver]struct{}
}

type tapObserver struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (o *tapObserver) stop() {
	o.once.Do(func() { close(o.done) })
}

func NewTap(cfg config.TapConfig, logger log.Log) *Tap {
	return &Tap{
		config: cfg,
		logger: logger.With(log.String("component", "tap")),
		buffers: generic.NewResetPool(
			func() *bytes.Buffer { return new(bytes.Buffer) },
			func(b *bytes.Buffer) { b.Reset() },
		),
		observers: make(map[*tapObserver]struct{}),
	}
}

// Send implements packet.Sink.
func (t *Tap) Send(runtimeID int64, pk packet.Packet) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.observers) == 0 {
		return
	}

	buf := t.buffers.Get()
	defer t.buffers.Put(buf)
	if err := json.NewEncoder(buf).Encode(TapMessage{RuntimeID: runtimeID, Packet: pk.Name(), Data: pk}); err != nil {
		t.logger.Warn("Failed to encode packet", log.String("packet", pk.Name()), log.Error(err))
		return
	}
	payload := bytes.Clone(bytes.TrimRight(buf.Bytes(), "\n"))

	for o := range t.observers {
		select {
		case o.send <- payload:
		default:
			t.logger.Warn("Tap observer too slow, disconnecting",
				log.String("remote_addr", o.conn.RemoteAddr().String()))
			o.stop()
		}
	}
}

// Observers returns the number of connected observers.
func (t *Tap) Observers() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.observers)
}

// Close disconnects every observer. The tap keeps accepting new ones.
func (t *Tap) Close() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for o := range t.observers {
		o.stop()
	}
}

func (t *Tap) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.logger.Warn("Tap upgrade failed", log.Error(err))
		return
	}

	o := &tapObserver{
		conn: conn,
		send: make(chan []byte, t.config.Buffer),
		done: make(chan struct{}),
	}
	t.mu.Lock()
	t.observers[o] = struct{}{}
	t.mu.Unlock()

	t.logger.Info("Tap observer connected", log.String("remote_addr", conn.RemoteAddr().String()))

	defer func() {
		t.mu.Lock()
		delete(t.observers, o)
		t.mu.Unlock()
		_ = conn.Close()
		t.logger.Info("Tap observer disconnected", log.String("remote_addr", conn.RemoteAddr().String()))
	}()

	// Observers never send anything; reading only detects the close.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				o.stop()
				return
			}
		}
	}()

	for {
		select {
		case payload := <-o.send:
			_ = conn.SetWriteDeadline(time.Now().Add(t.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				o.stop()
				return
			}
		case <-o.done:
			deadline := time.Now().Add(t.config.WriteTimeout)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return
		}
	}
}
