package network

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// clientMessage é uma estrutura para empacotar uma mensagem com o cliente que a enviou.
// O Hub precisa de ambos para passar para o EventHandler.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e roteia eventos para o handler.
//
// Toda chamada ao EventHandler acontece na goroutine de Run, uma de cada vez.
// SendTo e Broadcast só podem ser chamados a partir dessa mesma goroutine
// (ou seja, de dentro do handler ou de uma tarefa enviada com Post).
type Hub struct {
	// Clientes registrados, indexados pelo ID da conexão.
	// Acessado SOMENTE pela goroutine do Hub.
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client

	// Canal para mensagens de entrada dos clientes.
	incoming chan clientMessage

	// Tarefas agendadas (ex: timers) que precisam rodar na goroutine do Hub.
	tasks chan func()

	// Fechado quando Run termina.
	done chan struct{}

	logger hclog.Logger
}

// NewHub cria, inicializa e retorna um novo Hub.
func NewHub(logger hclog.Logger) *Hub {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		tasks:      make(chan func(), 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run é o loop de eventos. Bloqueia até o contexto ser cancelado.
func (h *Hub) Run(ctx context.Context, handler EventHandler) {
	defer func() {
		for id, client := range h.clients {
			delete(h.clients, id)
			close(client.send)
		}
		close(h.done)
		h.logger.Info("hub stopped")
	}()
	h.logger.Info("hub started")

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.clients[client.id] = client
			handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				// Fechar o canal 'send' é o sinal para a writeLoop daquele cliente parar.
				close(client.send)
				handler.OnDisconnect(client)
			}

		case clientMsg := <-h.incoming:
			// O Hub não se importa com o conteúdo da mensagem.
			handler.OnMessage(clientMsg.client, clientMsg.msg)

		case task := <-h.tasks:
			task()
		}
	}
}

// Post agenda fn para rodar na goroutine do Hub. Seguro para qualquer goroutine.
// Retorna false se o Hub já parou.
func (h *Hub) Post(fn func()) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.tasks <- fn:
		return true
	case <-h.done:
		return false
	}
}

// SendTo entrega msg para uma conexão específica. Conexões desconhecidas são ignoradas.
func (h *Hub) SendTo(connID string, msg Message) {
	client, ok := h.clients[connID]
	if !ok {
		return
	}
	h.enqueue(client, msg)
}

// Broadcast entrega msg para todas as conexões registradas.
func (h *Hub) Broadcast(msg Message) {
	for _, client := range h.clients {
		h.enqueue(client, msg)
	}
}

// enqueue nunca bloqueia o loop: um cliente lento demais perde a mensagem.
func (h *Hub) enqueue(client *Client, msg Message) {
	select {
	case client.send <- msg:
	default:
		h.logger.Warn("send buffer full, dropping message", "conn", client.id, "type", msg.Type)
	}
}

func (h *Hub) registerClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) deliver(cm clientMessage) bool {
	select {
	case h.incoming <- cm:
		return true
	case <-h.done:
		return false
	}
}
