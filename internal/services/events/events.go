// Package events publica acontecimentos do lobby e das partidas para fora do processo.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/nats-io/nats.go"
)

// Subjects publicados.
const (
	SubjectRooms      = "dicesoccer.rooms"
	SubjectMatchEnded = "dicesoccer.match.ended"
)

// MatchResult é o resumo de uma partida encerrada.
type MatchResult struct {
	RoomID      string    `json:"roomId"`
	Player1     string    `json:"player1"`
	Player2     string    `json:"player2"`
	Score1      int       `json:"score1"`
	Score2      int       `json:"score2"`
	Winner      int       `json:"winner"`
	AbandonedBy int       `json:"abandonedBy,omitempty"`
	EndedAt     time.Time `json:"endedAt"`
}

// RoomsSnapshot é a lista de salas com vaga num instante.
type RoomsSnapshot struct {
	Rooms []string  `json:"rooms"`
	At    time.Time `json:"at"`
}

// Publisher nunca bloqueia quem chama: falhas são apenas registradas.
type Publisher interface {
	PublishRooms(rooms []string)
	PublishMatchEnd(result MatchResult)
	Close()
}

// Nop descarta todos os eventos. Usado quando NATS não está configurado.
type Nop struct{}

func (Nop) PublishRooms([]string)       {}
func (Nop) PublishMatchEnd(MatchResult) {}
func (Nop) Close()                      {}

// conn é o subconjunto de *nats.Conn que o publisher usa.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

type NATSPublisher struct {
	nc     conn
	logger hclog.Logger
	now    func() time.Time
}

// Connect abre a conexão com o NATS. A biblioteca reconecta sozinha e
// bufferiza publicações enquanto a conexão está caída.
func Connect(url, name string, logger hclog.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}
	logger.Info("connected to nats", "url", nc.ConnectedUrl())
	return newNATSPublisher(nc, logger), nil
}

func newNATSPublisher(nc conn, logger hclog.Logger) *NATSPublisher {
	return &NATSPublisher{nc: nc, logger: logger, now: time.Now}
}

func (p *NATSPublisher) PublishRooms(rooms []string) {
	if rooms == nil {
		rooms = []string{}
	}
	p.publish(SubjectRooms, RoomsSnapshot{Rooms: rooms, At: p.now()})
}

func (p *NATSPublisher) PublishMatchEnd(result MatchResult) {
	if result.EndedAt.IsZero() {
		result.EndedAt = p.now()
	}
	p.publish(SubjectMatchEnded, result)
}

func (p *NATSPublisher) publish(subject string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		p.logger.Error("encode event", "subject", subject, "error", err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Warn("publish event", "subject", subject, "error", err)
	}
}

// Close drena as publicações pendentes antes de fechar.
func (p *NATSPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn("drain nats connection", "error", err)
	}
}
