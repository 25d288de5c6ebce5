// dicesoccer/cmd/bots/simple-bot/main.go
package main

import (
	"encoding/json"
	"math/rand/v2"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"dicesoccer/internal/game/match"
	"dicesoccer/internal/network"
	"dicesoccer/internal/session/message"
)

// Táticas válidas que o bot sorteia a cada partida.
var tacticSets = []match.Tactics{
	{D: 3, M: 5, A: 2},
	{D: 4, M: 4, A: 2},
	{D: 2, M: 4, A: 4},
	{D: 5, M: 3, A: 2},
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{Name: "simple-bot", Level: hclog.Info})

	addr := envOr("SERVER_ADDRESS", "localhost:3000")
	room := envOr("BOT_ROOM", "bots")
	name := envOr("BOT_NAME", "Bot")

	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		logger.Error("connection failed", "url", u.String(), "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := send(conn, message.TypeJoinRoom, message.JoinRoomRequest{RoomID: room, DisplayName: name}); err != nil {
		logger.Error("join failed", "error", err)
		return
	}

	var role match.Role
	for {
		// Timeout generoso: o adversário pode demorar para entrar.
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))

		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			logger.Warn("read failed", "error", err)
			return
		}

		switch msg.Type {
		case message.TypeRoleAssignment:
			var p message.RoleAssignmentPayload
			if json.Unmarshal(msg.Payload, &p) == nil {
				role = p.Role
				logger.Info("seated", "room", room, "role", role)
			}

		case message.TypeGameFull:
			logger.Warn("room is full", "room", room)
			return

		case message.TypeStateUpdate, message.TypeGoToSetup:
			var v match.StateView
			if json.Unmarshal(msg.Payload, &v) != nil {
				continue
			}
			if err := act(conn, role, v, logger); err != nil {
				logger.Warn("send failed", "error", err)
				return
			}

		case message.TypeGameEnd:
			var p message.GameEndPayload
			_ = json.Unmarshal(msg.Payload, &p)
			logger.Info("match ended", "result", p.Message)
		}
	}
}

// act decide a próxima intenção a partir do estado recebido.
func act(conn *websocket.Conn, role match.Role, v match.StateView, logger hclog.Logger) error {
	me := v.Player(role)
	if me == nil {
		return nil
	}
	switch {
	case v.GameOver:
		if me.ReadyForRematch {
			return nil
		}
		think()
		return send(conn, message.TypeReadyForNewGame, nil)

	case !me.TacticsLocked:
		t := tacticSets[rand.IntN(len(tacticSets))]
		logger.Debug("choosing tactics", "d", t.D, "m", t.M, "a", t.A)
		return send(conn, message.TypeSetup, message.SetupRequest{Role: role, D: t.D, M: t.M, A: t.A})

	case !v.SetupComplete:
		return nil

	case !me.Roll.Rolled:
		think()
		return send(conn, message.TypeRollAction, nil)

	case v.Players[0].Roll.Revealed && v.Players[1].Roll.Revealed && !me.ConfirmedAdvance:
		think()
		return send(conn, message.TypeRollAction, nil)
	}
	return nil
}

func send(conn *websocket.Conn, msgType string, payload any) error {
	msg, err := network.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func think() {
	time.Sleep(time.Duration(500+rand.IntN(1500)) * time.Millisecond)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
