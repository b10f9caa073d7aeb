package signaling

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func conectar(t *testing.T, hub *Hub) (*websocket.Conn, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() err = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn, srv
}

func esperarClientes(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientesAtivos() == n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("ClientesAtivos() = %d, want %d", hub.ClientesAtivos(), n)
}

func TestBroadcastChegaNoPainel(t *testing.T) {
	hub := NewHub()
	conn, _ := conectar(t, hub)
	esperarClientes(t, hub, 1)

	hub.Broadcast("agendamento_criado", map[string]string{"id": "7"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() err = %v", err)
	}

	var ev Evento
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("evento não é JSON: %v", err)
	}
	if ev.Type != "agendamento_criado" {
		t.Errorf("Type = %q, want agendamento_criado", ev.Type)
	}
	if ev.Timestamp == 0 {
		t.Error("Timestamp vazio")
	}

	data, _ := ev.Data.(map[string]interface{})
	if data == nil || data["id"] != "7" {
		t.Errorf("Data = %v", ev.Data)
	}
}

func TestBroadcastSemPaineisNaoBloqueia(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		hub.Broadcast("agendamento_removido", nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast bloqueou sem clientes")
	}
}

func TestDesconexaoRemoveCliente(t *testing.T) {
	hub := NewHub()
	conn, _ := conectar(t, hub)
	esperarClientes(t, hub, 1)

	conn.Close()
	esperarClientes(t, hub, 0)
}
