package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"dicesoccer/internal/game/dice"
	"dicesoccer/internal/game/match"
	"dicesoccer/internal/network"
	"dicesoccer/internal/services/events"
	"dicesoccer/internal/session/message"
)

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrUnknownCommand   = errors.New("unknown command")
)

// CommandHandlerFunc define a assinatura para todas as funções que lidam com comandos.
// Elas recebem o handle da conexão e o payload bruto da mensagem.
// Um erro retornado vira uma rejeição enviada só para a conexão de origem.
type CommandHandlerFunc func(h *GameHandler, handle *Handle, payload json.RawMessage) error

// Handle é o registro explícito de uma conexão: onde ela está sentada e com qual papel.
type Handle struct {
	ConnID string
	RoomID string
	Role   match.Role
}

func (hd *Handle) InRoom() bool {
	return hd.RoomID != ""
}

type Config struct {
	GracePeriod time.Duration
	MaxPhases   int
}

type Deps struct {
	Transport message.Transport
	Scheduler Scheduler
	Roller    dice.Roller
	Events    events.Publisher
	Logger    hclog.Logger
}

// GameHandler implementa network.EventHandler. Todos os métodos rodam na goroutine do Hub.
type GameHandler struct {
	registry  *Registry
	abandon   *Abandonment
	handles   map[string]*Handle
	transport message.Transport
	roller    dice.Roller
	events    events.Publisher
	logger    hclog.Logger

	// Dois roteadores, um para cada estado da conexão.
	lobbyRouter map[string]CommandHandlerFunc
	matchRouter map[string]CommandHandlerFunc
}

func NewGameHandler(cfg Config, deps Deps) *GameHandler {
	if deps.Logger == nil {
		deps.Logger = hclog.NewNullLogger()
	}
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}
	h := &GameHandler{
		handles:     make(map[string]*Handle),
		transport:   deps.Transport,
		roller:      deps.Roller,
		events:      deps.Events,
		logger:      deps.Logger,
		lobbyRouter: make(map[string]CommandHandlerFunc),
		matchRouter: make(map[string]CommandHandlerFunc),
	}
	h.abandon = NewAbandonment(deps.Scheduler, cfg.GracePeriod, h.expire)
	h.registry = NewRegistry(cfg.MaxPhases, h.abandon)

	h.registerLobbyHandlers()
	h.registerMatchHandlers()
	return h
}

// --- Implementação da Interface network.EventHandler ---

func (h *GameHandler) OnConnect(c *network.Client) {
	h.logger.Debug("client connected", "conn", c.ID(), "remote", c.RemoteAddr())
	h.Connect(c.ID())
}

func (h *GameHandler) OnDisconnect(c *network.Client) {
	h.Disconnect(c.ID())
}

func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) {
	h.Handle(c.ID(), msg)
}

// Connect cria o handle da conexão e envia a lista de salas com vaga.
func (h *GameHandler) Connect(connID string) {
	h.handles[connID] = &Handle{ConnID: connID}
	msg, err := message.CreateActiveRooms(h.registry.ListJoinable())
	h.sendTo(connID, msg, err)
}

// Handle é um despachante: escolhe o roteador pelo estado da conexão e executa o comando.
func (h *GameHandler) Handle(connID string, msg network.Message) {
	handle, ok := h.handles[connID]
	if !ok {
		return // Ignora mensagens de conexões sem handle.
	}

	// 1. Seleciona o roteador apropriado.
	router := h.lobbyRouter
	if handle.InRoom() {
		router = h.matchRouter
	}

	// 2. Procura pelo handler do comando.
	cmd, found := router[msg.Type]
	if !found {
		err := fmt.Errorf("%w: %q", ErrUnknownCommand, msg.Type)
		if _, inMatch := h.matchRouter[msg.Type]; inMatch && !handle.InRoom() {
			err = match.ErrNotInRoom
		}
		h.reject(handle, err)
		return
	}

	// 3. Executa.
	if err := cmd(h, handle, msg.Payload); err != nil {
		h.reject(handle, err)
	}
}

// Disconnect libera o assento da conexão e arma o período de graça.
func (h *GameHandler) Disconnect(connID string) {
	handle, ok := h.handles[connID]
	if !ok {
		return
	}
	delete(h.handles, connID)
	if !handle.InRoom() {
		return
	}

	s := h.registry.Get(handle.RoomID)
	if s == nil || s.RoleOf(connID) != handle.Role {
		return
	}

	s.Vacate(handle.Role)
	h.abandon.Arm(s.ID, handle.Role)
	h.logger.Info("player disconnected, grace period started",
		"room", s.ID, "role", handle.Role, "conn", connID)

	s.AnnounceDisconnect(handle.Role)
	h.pushState(s)
	h.publishRooms()
}

// expire é chamado pelo gerente de abandono quando o período de graça termina.
func (h *GameHandler) expire(roomID string, role match.Role) {
	s := h.registry.Get(roomID)
	if s == nil {
		return
	}
	h.logger.Info("grace period expired", "room", roomID, "role", role)

	// 1. Vitória por abandono, se a partida ainda estava rolando.
	if s.DeclareAbandonment(role) {
		h.endMatch(s)
	}

	// 2. Quem ficou volta para a configuração.
	remaining := role.Opponent()
	if p := s.Player(remaining); p.Connected() {
		s.Reset()
		msg, err := message.CreateGoToSetup(match.ViewFor(s, remaining))
		h.sendTo(p.ConnID, msg, err)
	}

	// 3. Libera o assento de quem abandonou.
	s.Vacate(role)
	if s.Occupancy() == 0 {
		h.abandon.CancelRoom(roomID)
		h.registry.DestroyIfEmpty(roomID)
		h.logger.Info("room destroyed", "room", roomID)
	}
	h.publishRooms()
}

// leave é a saída voluntária: sem período de graça.
func (h *GameHandler) leave(handle *Handle) {
	role := handle.Role
	if s := h.registry.Get(handle.RoomID); s != nil {
		s.Vacate(role)
		h.abandon.Cancel(s.ID, role.Opponent())

		if h.registry.DestroyIfEmpty(s.ID) {
			h.logger.Info("room destroyed", "room", s.ID)
		} else {
			s.AnnounceLeave(role)
			h.pushState(s)
		}
		h.logger.Info("player left", "room", s.ID, "role", role, "conn", handle.ConnID)
	}

	handle.RoomID, handle.Role = "", match.NoRole
	msg, err := message.CreateGoToLobby()
	h.sendTo(handle.ConnID, msg, err)
	h.publishRooms()
}

// --- Saída ---

// pushState envia a cada jogador conectado a visão que ele pode ver.
func (h *GameHandler) pushState(s *match.Session) {
	for _, r := range match.Roles {
		if p := s.Player(r); p.Connected() {
			h.sendState(p.ConnID, match.ViewFor(s, r))
		}
	}
}

func (h *GameHandler) sendRoom(s *match.Session, msg network.Message, err error) {
	for _, r := range match.Roles {
		if p := s.Player(r); p.Connected() {
			h.sendTo(p.ConnID, msg, err)
		}
	}
}

// sendTo entrega msg; uma mensagem que falhou na codificação é descartada.
func (h *GameHandler) sendTo(connID string, msg network.Message, err error) {
	if err != nil {
		h.logger.Error("dropping message", "conn", connID, "error", err)
		return
	}
	h.transport.SendTo(connID, msg)
}

func (h *GameHandler) sendState(connID string, view match.StateView) {
	if err := message.SendState(h.transport, connID, view); err != nil {
		h.logger.Error("dropping state update", "conn", connID, "room", view.RoomID, "error", err)
	}
}

// endMatch anuncia o fim da partida para a sala, com o estado sem censura.
func (h *GameHandler) endMatch(s *match.Session) {
	msg, err := message.CreateGameEnd(s.StatusMessage)
	h.sendRoom(s, msg, err)
	h.pushState(s)
	h.logger.Info("match ended", "room", s.ID, "result", s.Result(), "abandoned_by", s.AbandonedBy)

	// Sem as duas táticas confirmadas não houve partida para registrar.
	if !s.SetupComplete {
		return
	}
	h.events.PublishMatchEnd(events.MatchResult{
		RoomID:      s.ID,
		Player1:     s.Name(match.Role1),
		Player2:     s.Name(match.Role2),
		Score1:      s.Player(match.Role1).Score,
		Score2:      s.Player(match.Role2).Score,
		Winner:      int(s.Winner()),
		AbandonedBy: int(s.AbandonedBy),
	})
}

func (h *GameHandler) publishRooms() {
	rooms := h.registry.ListJoinable()
	if msg, err := message.CreateActiveRooms(rooms); err != nil {
		h.logger.Error("dropping room list", "error", err)
	} else {
		h.transport.Broadcast(msg)
	}
	h.events.PublishRooms(rooms)
}

func (h *GameHandler) reject(handle *Handle, err error) {
	kind := kindOf(err)
	h.logger.Debug("intent rejected", "conn", handle.ConnID, "room", handle.RoomID, "kind", kind, "error", err)

	var view *match.StateView
	if s := h.registry.Get(handle.RoomID); s != nil && handle.InRoom() {
		v := match.ViewFor(s, handle.Role)
		view = &v
	}
	if sendErr := message.SendRejection(h.transport, handle.ConnID, kind, err.Error(), view); sendErr != nil {
		h.logger.Error("dropping rejection", "conn", handle.ConnID, "error", sendErr)
	}
}

func kindOf(err error) match.Kind {
	if errors.Is(err, ErrMalformedPayload) || errors.Is(err, ErrUnknownCommand) {
		return match.KindValidation
	}
	return match.KindOf(err)
}

// session devolve a sala onde o handle está sentado.
func (h *GameHandler) session(handle *Handle) (*match.Session, error) {
	if !handle.InRoom() {
		return nil, match.ErrNotInRoom
	}
	s := h.registry.Get(handle.RoomID)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", match.ErrRoomNotFound, handle.RoomID)
	}
	return s, nil
}
