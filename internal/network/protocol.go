package network

import "encoding/json"

// Message é o envelope padrão para toda a comunicação.
// Ele contém um tipo para roteamento e um payload com os dados.
type Message struct {
	Type    string          `json:"type"`              // Ex: "joinRoom", "stateUpdate"
	Payload json.RawMessage `json:"payload,omitempty"` // Decodificado depois, por quem trata o tipo.
}

// MaxMessageSize limita o tamanho de um frame recebido de um cliente.
const MaxMessageSize = 64 * 1024

// NewMessage serializa payload e monta o envelope.
func NewMessage(msgType string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Payload: raw}, nil
}
