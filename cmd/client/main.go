// dicesoccer/cmd/client/main.go
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"dicesoccer/internal/game/match"
	"dicesoccer/internal/network"
	"dicesoccer/internal/services/cluster"
	"dicesoccer/internal/session/message"
)

const (
	StateLobby  = "Lobby"
	StateSetup  = "Setup"
	StateInGame = "InGame"
	StateOver   = "GameOver"
)

// clientState é lido pela goroutine do stdin e escrito pela readLoop.
type clientState struct {
	mu    sync.Mutex
	state string
	role  match.Role
}

func (c *clientState) set(state string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

func (c *clientState) get() (string, match.Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.role
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{Name: "client", Level: hclog.Info})

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	conn := dial(serverAddresses(logger), logger)
	if conn == nil {
		logger.Error("could not connect to any server")
		os.Exit(1)
	}
	defer conn.Close()

	st := &clientState{state: StateLobby}
	done := make(chan struct{})
	go readLoop(conn, st, done, logger)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		printPrompt(st)
		for scanner.Scan() {
			handleUserInput(conn, st, scanner, strings.TrimSpace(scanner.Text()), logger)
		}
	}()

	select {
	case <-done:
		logger.Info("disconnected from server")
	case <-interrupt:
		logger.Info("interrupt received, closing connection")
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

// serverAddresses usa o Consul quando disponível; senão SERVER_ADDRESSES ou localhost.
func serverAddresses(logger hclog.Logger) []string {
	if consulAddr := os.Getenv("CONSUL_HTTP_ADDR"); consulAddr != "" {
		client, err := cluster.NewConsulClient(consulAddr, logger)
		if err == nil {
			addr, err := cluster.Discover(client, "dicesoccer")
			if err == nil {
				return []string{addr}
			}
			logger.Warn("discovery failed", "error", err)
		}
	}
	if addrs := os.Getenv("SERVER_ADDRESSES"); addrs != "" {
		return strings.Split(addrs, ",")
	}
	return []string{"localhost:3000"}
}

func dial(addrs []string, logger hclog.Logger) *websocket.Conn {
	for _, addr := range addrs {
		u := url.URL{Scheme: "ws", Host: strings.TrimSpace(addr), Path: "/ws"}
		logger.Info("connecting", "url", u.String())

		conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
		if err == nil {
			return conn
		}
		logger.Warn("connection failed", "addr", addr, "error", err)
		if resp != nil {
			logger.Warn("handshake response", "status", resp.Status)
		}
	}
	return nil
}

func readLoop(conn *websocket.Conn, st *clientState, done chan struct{}, logger hclog.Logger) {
	defer close(done)
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("read error", "error", err)
			}
			return
		}
		if printServerMessage(st, msg) {
			printPrompt(st)
		}
	}
}

// printServerMessage mostra a mensagem e devolve true se o prompt deve ser refeito.
func printServerMessage(st *clientState, msg network.Message) bool {
	switch msg.Type {
	case message.TypeActiveRooms:
		var p message.ActiveRoomsPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Printf("\nOpen rooms: %s\n", strings.Join(p.Rooms, ", "))
		}
		return false

	case message.TypeRoleAssignment:
		var p message.RoleAssignmentPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			st.mu.Lock()
			st.role = p.Role
			st.state = StateSetup
			st.mu.Unlock()
			fmt.Printf("\nYou are %s (%s vs %s)\n", p.Role, p.Player1Name, p.Player2Name)
		}
		return false

	case message.TypeStateUpdate, message.TypeGoToSetup:
		var v match.StateView
		if json.Unmarshal(msg.Payload, &v) != nil {
			return false
		}
		switch {
		case v.GameOver:
			st.set(StateOver)
		case v.SetupComplete:
			st.set(StateInGame)
		default:
			st.set(StateSetup)
		}
		printState(v)
		return true

	case message.TypeGameEnd:
		var p message.GameEndPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Printf("\n*** %s ***\n", p.Message)
		}
		st.set(StateOver)
		return false

	case message.TypeGoToLobby:
		st.set(StateLobby)
		fmt.Println("\nBack to the lobby.")
		return true

	case message.TypeGameFull:
		var p message.GameFullPayload
		_ = json.Unmarshal(msg.Payload, &p)
		fmt.Printf("\nRoom %q is full.\n", p.RoomID)
		return true

	case message.TypeActionRejected:
		var p message.RejectionPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Printf("\nRejected (%s): %s\n", p.Kind, p.Message)
		}
		return false
	}

	fmt.Printf("\nInfo (%s): %s\n", msg.Type, string(msg.Payload))
	return false
}

func printState(v match.StateView) {
	p1, p2 := v.Player(match.Role1), v.Player(match.Role2)
	fmt.Printf("\n[%s] phase %d/%d, zone %s | %s %d x %d %s\n",
		v.RoomID, v.Phase, v.MaxPhases, v.Zone, p1.Name, p1.Score, p2.Score, p2.Name)
	for _, p := range v.Players {
		roll := "-"
		if p.Roll.Revealed {
			roll = fmt.Sprintf("%d (+%d = %d)", p.Roll.Face, p.Roll.Modifier, p.Roll.Total)
		} else if p.Roll.Rolled {
			roll = "hidden"
		}
		fmt.Printf("  %-10s D%d M%d A%d  roll: %s\n", p.Name, p.Tactics.D, p.Tactics.M, p.Tactics.A, roll)
	}
	if v.Details != "" {
		fmt.Println(v.Details)
	}
	fmt.Println(v.StatusMessage)
}

func handleUserInput(conn *websocket.Conn, st *clientState, scanner *bufio.Scanner, input string, logger hclog.Logger) {
	state, role := st.get()

	var msg network.Message
	var err error
	switch {
	case input == "q" && state != StateLobby:
		msg, err = network.NewMessage(message.TypeLeaveRoom, nil)

	case state == StateLobby:
		name := promptForString(scanner, "Display name: ")
		msg, err = network.NewMessage(message.TypeJoinRoom, message.JoinRoomRequest{RoomID: input, DisplayName: name})

	case state == StateSetup:
		var req message.SetupRequest
		req, err = parseTactics(role, input)
		if err == nil {
			msg, err = network.NewMessage(message.TypeSetup, req)
		}

	case state == StateInGame:
		msg, err = network.NewMessage(message.TypeRollAction, nil)

	case state == StateOver:
		msg, err = network.NewMessage(message.TypeReadyForNewGame, nil)
	}

	if err != nil {
		fmt.Println(err)
		printPrompt(st)
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		logger.Warn("send failed", "error", err)
	}
}

// parseTactics lê "D M A", por exemplo "3 5 2".
func parseTactics(role match.Role, input string) (message.SetupRequest, error) {
	fields := strings.Fields(input)
	if len(fields) != 3 {
		return message.SetupRequest{}, fmt.Errorf("type three numbers: D M A")
	}
	var values [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return message.SetupRequest{}, fmt.Errorf("invalid number %q", f)
		}
		values[i] = n
	}
	return message.SetupRequest{Role: role, D: values[0], M: values[1], A: values[2]}, nil
}

func printPrompt(st *clientState) {
	state, _ := st.get()
	switch state {
	case StateLobby:
		fmt.Print("\n(Lobby) Room to join or create: ")
	case StateSetup:
		fmt.Print("\n(Setup) Tactics as D M A (sum 10), q to leave: ")
	case StateInGame:
		fmt.Print("\n(Match) Enter to roll, q to leave: ")
	case StateOver:
		fmt.Print("\n(Full time) Enter for a rematch, q to leave: ")
	}
}

func promptForString(scanner *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}
