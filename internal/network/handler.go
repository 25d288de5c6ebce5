package network

// EventHandler é a interface que conecta a lógica da rede com a lógica do jogo.
// O código das salas (fora deste pacote) implementa esta interface.
type EventHandler interface {
	// OnConnect é chamado quando um novo cliente se conecta com sucesso.
	OnConnect(c *Client)

	// OnDisconnect é chamado quando um cliente se desconecta.
	OnDisconnect(c *Client)

	// OnMessage é chamado quando uma nova mensagem é recebida de um cliente.
	OnMessage(c *Client, msg Message)
}
