package message

import (
	"fmt"

	"dicesoccer/internal/game/match"
	"dicesoccer/internal/network"
)

// Transport define o que as salas precisam da camada de rede.
// Isso nos permite desacoplar a lógica das salas de implementações concretas como `network.Hub`.
type Transport interface {
	SendTo(connID string, msg network.Message)
	Broadcast(msg network.Message)
}

// SendState envia a visão da sessão para uma conexão.
// Se a visão não puder ser codificada, nada é enviado.
func SendState(t Transport, connID string, view match.StateView) error {
	msg, err := CreateStateUpdate(view)
	if err != nil {
		return fmt.Errorf("encode %s: %w", TypeStateUpdate, err)
	}
	t.SendTo(connID, msg)
	return nil
}

// SendRejection envia a rejeição e, se houver, o estado anotado com o motivo.
func SendRejection(t Transport, connID string, kind match.Kind, text string, view *match.StateView) error {
	msg, err := CreateRejection(kind, text)
	if err != nil {
		return fmt.Errorf("encode %s: %w", TypeActionRejected, err)
	}
	t.SendTo(connID, msg)
	if view != nil {
		annotated := *view
		annotated.StatusMessage = text
		return SendState(t, connID, annotated)
	}
	return nil
}
