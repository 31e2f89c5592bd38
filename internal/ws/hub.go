package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Client é um painel conectado; Send recebe os eventos já serializados.
type Client struct {
	ID   string
	Send chan []byte
}

// Hub replica os eventos da fila para todos os painéis conectados.
// Cliente com buffer cheio é derrubado para não travar os demais.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	register chan *Client
	unreg    chan *Client
	sendAll  chan []byte

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID  atomic.Uint64
	dropped atomic.Uint64
}

var (
	ErrInvalidEvent = errors.New("event body is not valid JSON")
	ErrHubStopped   = errors.New("hub stopped")
)

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		sendAll:  make(chan []byte, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	return fmt.Sprintf("c%d", h.nextID.Add(1))
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			if c.ID == "" {
				c.ID = h.newID()
			}
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_registered", "id", c.ID, "total", total)

		case c := <-h.unreg:
			if c == nil {
				continue
			}
			h.mu.Lock()
			h.remove(c)
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_unregistered", "id", c.ID, "total", total)

		case msg := <-h.sendAll:
			h.fanOut(msg)

		case <-h.stop:
			h.mu.Lock()
			for _, c := range h.clients {
				h.remove(c)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

// remove exige h.mu travado.
func (h *Hub) remove(c *Client) {
	if cur, ok := h.clients[c.ID]; ok && cur == c {
		delete(h.clients, c.ID)
		close(c.Send)
	}
}

func (h *Hub) fanOut(msg []byte) {
	var slow []*Client
	h.mu.RLock()
	for _, c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}
	h.mu.Lock()
	for _, c := range slow {
		h.remove(c)
		h.dropped.Add(1)
		h.log.Warn("client_dropped_slow", "id", c.ID)
	}
	h.mu.Unlock()
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

// Depois do Stop: Register fecha o Send do cliente; Unregister e Broadcast não fazem nada.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stop:
		close(c.Send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unreg <- c:
	case <-h.stop:
	}
}

func (h *Hub) Broadcast(b []byte) {
	select {
	case h.sendAll <- b:
	case <-h.stop:
	}
}

// Count devolve quantos painéis estão conectados.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped conta os clientes derrubados por lentidão desde o start.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// Relay é o handler do consumidor: repassa o corpo do evento sem reserializar.
// Corpo que não é JSON volta como erro (a entrega vai para Nack), assim como
// qualquer evento depois do Stop.
func (h *Hub) Relay(ctx context.Context, body []byte) error {
	if !json.Valid(body) {
		return ErrInvalidEvent
	}
	select {
	case <-h.stop:
		return ErrHubStopped
	default:
	}
	select {
	case h.sendAll <- body:
		return nil
	case <-h.stop:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
