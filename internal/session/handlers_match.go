package session

import (
	"encoding/json"

	"dicesoccer/internal/game/match"
	"dicesoccer/internal/session/message"
)

func handleSetup(h *GameHandler, handle *Handle, payload json.RawMessage) error {
	var req message.SetupRequest
	if err := decode(payload, &req); err != nil {
		return err
	}
	if req.Role != handle.Role {
		return match.ErrRoleMismatch
	}
	s, err := h.session(handle)
	if err != nil {
		return err
	}

	if err := s.SetTactics(handle.Role, req.Tactics()); err != nil {
		return err
	}
	h.logger.Debug("tactics locked", "room", s.ID, "role", handle.Role, "setup_complete", s.SetupComplete)
	h.pushState(s)
	return nil
}

// handleRoll trata "rollAction": rolagem ou confirmação de avanço.
func handleRoll(h *GameHandler, handle *Handle, _ json.RawMessage) error {
	s, err := h.session(handle)
	if err != nil {
		return err
	}

	step, err := s.SubmitRoll(handle.Role, h.roller)
	if err != nil {
		return err
	}
	h.logger.Debug("roll intent", "room", s.ID, "role", handle.Role, "step", step)

	switch step {
	case match.StepFirstRoll:
		// Quem rolou vê o próprio valor; o oponente só sabe que houve rolagem.
		actorText, opponentText := s.FirstRollNarration(handle.Role)

		own := match.ViewFor(s, handle.Role)
		own.StatusMessage = actorText
		h.sendState(handle.ConnID, own)

		opp := handle.Role.Opponent()
		if p := s.Player(opp); p.Connected() {
			censored := match.ViewFor(s, opp)
			censored.StatusMessage = opponentText
			h.sendState(p.ConnID, censored)
		}

	case match.StepResolved:
		if s.GameOver {
			h.endMatch(s)
			return nil
		}
		h.pushState(s)

	default:
		h.pushState(s)
	}
	return nil
}

func handleReadyForNewGame(h *GameHandler, handle *Handle, _ json.RawMessage) error {
	s, err := h.session(handle)
	if err != nil {
		return err
	}

	advanced, err := s.MarkRematchReady(handle.Role)
	if err != nil {
		return err
	}
	if !advanced {
		h.pushState(s)
		return nil
	}

	h.logger.Info("rematch started", "room", s.ID, "occupancy", s.Occupancy())
	if s.Occupancy() < 2 {
		msg, err := message.CreateGoToSetup(match.ViewFor(s, handle.Role))
		h.sendTo(handle.ConnID, msg, err)
		return nil
	}
	h.pushState(s)
	return nil
}

func handleLeaveRoom(h *GameHandler, handle *Handle, _ json.RawMessage) error {
	h.leave(handle)
	return nil
}

// registerMatchHandlers popula o roteador com os comandos disponíveis dentro de uma sala.
func (h *GameHandler) registerMatchHandlers() {
	h.matchRouter[message.TypeJoinRoom] = handleJoinRoom
	h.matchRouter[message.TypeSetup] = handleSetup
	h.matchRouter[message.TypeRollAction] = handleRoll
	h.matchRouter[message.TypeReadyForNewGame] = handleReadyForNewGame
	h.matchRouter[message.TypeLeaveRoom] = handleLeaveRoom
}
