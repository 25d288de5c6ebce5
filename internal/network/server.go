package network

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
)

// upgrader armazena as configurações para promover uma conexão HTTP para WebSocket.
var upgrader = websocket.Upgrader{
	// Os clientes podem ser servidos de qualquer origem.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server promove requisições HTTP para WebSocket e entrega os clientes ao Hub.
type Server struct {
	hub    *Hub
	logger hclog.Logger
}

func NewServer(hub *Hub, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Server{hub: hub, logger: logger}
}

// ServeHTTP é o ponto de entrada das conexões de clientes (rota "/ws").
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 1. Promove a conexão HTTP para uma conexão WebSocket persistente.
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	// 2. Cria o Client e registra no Hub.
	client := newClient(s.hub, conn)
	if !s.hub.registerClient(client) {
		conn.Close()
		return
	}
	s.logger.Debug("client connected", "conn", client.id, "remote", conn.RemoteAddr())

	// 3. Inicia as goroutines de leitura e escrita.
	go client.writeLoop()
	go client.readLoop()
}
