// Package signaling mantém os painéis administrativos conectados por
// WebSocket e avisa quando a agenda muda. Fora do navegador não existe o
// evento de storage entre abas; este hub é o substituto: criou, editou ou
// removeu um agendamento, todos os painéis abertos recebem o evento e
// recarregam a lista.
package signaling

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Evento struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

type cliente struct {
	conn   *websocket.Conn
	sendCh chan []byte
}

type Hub struct {
	upgrader websocket.Upgrader
	clientes map[*cliente]bool
	mu       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clientes: make(map[*cliente]bool),
	}
}

// HandleWebSocket registra um painel na lista de conectados.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Erro upgrade: %v", err)
		return
	}

	c := &cliente{
		conn:   conn,
		sendCh: make(chan []byte, 32),
	}

	h.mu.Lock()
	h.clientes[c] = true
	h.mu.Unlock()

	log.Printf("🔌 Painel conectado (%d ativos)", h.ClientesAtivos())

	go h.escreverCliente(c)
	h.lerCliente(c)
}

// lerCliente só consome mensagens de controle; a conversa é unidirecional,
// servidor para painel.
func (h *Hub) lerCliente(c *cliente) {
	defer h.removerCliente(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) escreverCliente(c *cliente) {
	for msg := range c.sendCh {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (h *Hub) removerCliente(c *cliente) {
	h.mu.Lock()
	if h.clientes[c] {
		delete(h.clientes, c)
		close(c.sendCh)
	}
	h.mu.Unlock()

	c.conn.Close()
	log.Printf("🔌 Painel desconectado (%d ativos)", h.ClientesAtivos())
}

// Broadcast publica um evento de agenda para todos os painéis conectados.
// Painel com canal cheio é pulado, não bloqueia a requisição.
func (h *Hub) Broadcast(tipo string, data interface{}) {
	payload, err := json.Marshal(Evento{
		Type:      tipo,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		log.Printf("❌ Erro ao serializar evento %s: %v", tipo, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clientes {
		select {
		case c.sendCh <- payload:
		default:
		}
	}
}

func (h *Hub) ClientesAtivos() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clientes)
}
