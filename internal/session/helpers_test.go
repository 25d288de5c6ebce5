package session

import (
	"cmp"
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dicesoccer/internal/game/dice"
	"dicesoccer/internal/game/match"
	"dicesoccer/internal/network"
	"dicesoccer/internal/services/events"
	"dicesoccer/internal/session/message"
)

const broadcastTarget = "*"

type sentMessage struct {
	to  string
	msg network.Message
}

// fakeTransport grava tudo o que o handler envia.
type fakeTransport struct {
	sent []sentMessage
}

func (f *fakeTransport) SendTo(connID string, msg network.Message) {
	f.sent = append(f.sent, sentMessage{to: connID, msg: msg})
}

func (f *fakeTransport) Broadcast(msg network.Message) {
	f.sent = append(f.sent, sentMessage{to: broadcastTarget, msg: msg})
}

func (f *fakeTransport) reset() {
	f.sent = nil
}

// to retorna as mensagens endereçadas a connID, na ordem de envio.
func (f *fakeTransport) to(connID string) []network.Message {
	var out []network.Message
	for _, s := range f.sent {
		if s.to == connID {
			out = append(out, s.msg)
		}
	}
	return out
}

func (f *fakeTransport) types(connID string) []string {
	var out []string
	for _, m := range f.to(connID) {
		out = append(out, m.Type)
	}
	return out
}

// last retorna a última mensagem do tipo para connID.
func (f *fakeTransport) last(t *testing.T, connID, msgType string) network.Message {
	t.Helper()
	msgs := f.to(connID)
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == msgType {
			return msgs[i]
		}
	}
	require.Failf(t, "message not sent", "no %q sent to %q; got %v", msgType, connID, f.types(connID))
	return network.Message{}
}

func (f *fakeTransport) count(connID, msgType string) int {
	n := 0
	for _, m := range f.to(connID) {
		if m.Type == msgType {
			n++
		}
	}
	return n
}

type manualTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// manualScheduler é um relógio de mentira: nada dispara até Advance.
type manualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &manualTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	due := slices.Clone(s.timers)
	slices.SortStableFunc(due, func(a, b *manualTimer) int { return cmp.Compare(a.at, b.at) })
	for _, t := range due {
		if t.stopped || t.fired || t.at > s.now {
			continue
		}
		t.fired = true
		t.fn()
	}
}

func (s *manualScheduler) lastTimer() *manualTimer {
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// recordingEvents guarda o que seria publicado no NATS.
type recordingEvents struct {
	rooms   [][]string
	results []events.MatchResult
}

func (r *recordingEvents) PublishRooms(rooms []string)            { r.rooms = append(r.rooms, rooms) }
func (r *recordingEvents) PublishMatchEnd(res events.MatchResult) { r.results = append(r.results, res) }
func (r *recordingEvents) Close()                                 {}

type harness struct {
	h         *GameHandler
	transport *fakeTransport
	clock     *manualScheduler
	events    *recordingEvents
}

func newHarness(t *testing.T, faces ...int) *harness {
	t.Helper()
	tr := &fakeTransport{}
	clock := &manualScheduler{}
	ev := &recordingEvents{}
	h := NewGameHandler(Config{GracePeriod: 5 * time.Second, MaxPhases: match.DefaultMaxPhases}, Deps{
		Transport: tr,
		Scheduler: clock,
		Roller:    dice.NewSequence(faces...),
		Events:    ev,
	})
	return &harness{h: h, transport: tr, clock: clock, events: ev}
}

func (hs *harness) send(t *testing.T, connID, msgType string, payload any) {
	t.Helper()
	msg, err := network.NewMessage(msgType, payload)
	require.NoError(t, err)
	hs.h.Handle(connID, msg)
}

func (hs *harness) join(t *testing.T, connID, roomID, name string) {
	t.Helper()
	hs.h.Connect(connID)
	hs.send(t, connID, message.TypeJoinRoom, message.JoinRoomRequest{RoomID: roomID, DisplayName: name})
}

func (hs *harness) setup(t *testing.T, connID string, role match.Role, d, m, a int) {
	t.Helper()
	hs.send(t, connID, message.TypeSetup, message.SetupRequest{Role: role, D: d, M: m, A: a})
}

// readyRoom coloca "a" (Role1, {3,5,2}) e "b" (Role2, {4,4,2}) na sala r1, prontos para rolar.
func (hs *harness) readyRoom(t *testing.T) *match.Session {
	t.Helper()
	hs.join(t, "a", "r1", "Ana")
	hs.join(t, "b", "r1", "Bea")
	hs.setup(t, "a", match.Role1, 3, 5, 2)
	hs.setup(t, "b", match.Role2, 4, 4, 2)
	s := hs.h.registry.Get("r1")
	require.NotNil(t, s)
	require.True(t, s.SetupComplete)
	hs.transport.reset()
	return s
}

func (hs *harness) roll(t *testing.T, connID string) {
	t.Helper()
	hs.send(t, connID, message.TypeRollAction, nil)
}

func decodeState(t *testing.T, msg network.Message) match.StateView {
	t.Helper()
	var v match.StateView
	require.NoError(t, json.Unmarshal(msg.Payload, &v))
	return v
}

func decodeRooms(t *testing.T, msg network.Message) []string {
	t.Helper()
	var p message.ActiveRoomsPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &p))
	return p.Rooms
}

func decodeRejection(t *testing.T, msg network.Message) message.RejectionPayload {
	t.Helper()
	var p message.RejectionPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &p))
	return p
}
