// Package room orchestrates live rooms. Each room has a single-writer
// runner goroutine: actions are applied one at a time against the latest
// persisted session, committed to the store, then fanned out as masked
// projections. Different rooms proceed fully independently.
package room

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/Sieru626/boardgame-venue-sub000/protocol"
	"github.com/Sieru626/boardgame-venue-sub000/session"
	"github.com/Sieru626/boardgame-venue-sub000/store"
	uuid "github.com/satori/go.uuid"
)

const actionQueueSize = 64

// runnerIdleTimeout is how long a room may sit with no actions and no
// subscribers before its runner goroutine is retired.
const runnerIdleTimeout = 15 * time.Minute

// NewID constructs a player/room id.
func NewID() string {
	return uuid.NewV4().String()
}

// NewJoinCode generates a 6-letter room code.
func NewJoinCode() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)
	for i := range code {
		code[i] = letters[rand.Intn(len(letters))]
	}
	return string(code)
}

// Envelope carries one action into a room queue. Reply, when non-nil,
// receives the synchronous outcome for the issuing caller.
type Envelope struct {
	Action protocol.Inbound
	Reply  chan protocol.Outbound
}

// Manager owns one runner per live room.
type Manager struct {
	mu     sync.Mutex
	rooms  map[string]*runner
	rstore store.RoomStore
	tstore store.TemplateStore

	idleTimeout time.Duration
}

// NewManager constructs a Manager over the given stores.
func NewManager(rstore store.RoomStore, tstore store.TemplateStore) *Manager {
	return &Manager{
		rooms:       map[string]*runner{},
		rstore:      rstore,
		tstore:      tstore,
		idleTimeout: runnerIdleTimeout,
	}
}

// CreateRoom persists a fresh lobby session with its host seated and
// starts the room's runner. It returns the new session and the host's id.
func (m *Manager) CreateRoom(ctx context.Context, hostName string) (*session.Session, error) {
	sess := session.New(NewID(), NewJoinCode(), NewID(), hostName)
	if err := m.rstore.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.runnerLocked(sess.RoomID)
	m.mu.Unlock()
	return sess, nil
}

// FindByCode resolves a join code to the room's current session.
func (m *Manager) FindByCode(ctx context.Context, joinCode string) (*session.Session, error) {
	return m.rstore.FindByCode(ctx, joinCode)
}

// Fetch returns the masked snapshot for one viewer, read straight from
// durable state. A reconnecting viewer starts here and can never observe
// a later-rolled-back transient.
func (m *Manager) Fetch(ctx context.Context, roomID, viewerID string) (protocol.Outbound, error) {
	sess, err := m.rstore.LoadSession(ctx, roomID)
	if err != nil {
		return protocol.Outbound{}, err
	}
	return protocol.Outbound{
		Kind:    protocol.KindState,
		Version: sess.Version,
		State:   session.Project(sess, viewerID),
	}, nil
}

// Do submits an action to its room's queue and waits for the synchronous
// outcome: a fresh masked state, a conflict, or a rule violation.
func (m *Manager) Do(ctx context.Context, act protocol.Inbound) protocol.Outbound {
	reply := make(chan protocol.Outbound, 1)
	m.submit(Envelope{Action: act, Reply: reply})
	select {
	case out := <-reply:
		return out
	case <-ctx.Done():
		return protocol.Outbound{Kind: protocol.KindError, Reason: ctx.Err().Error()}
	}
}

// Enqueue submits an action without waiting. Outcomes reach the issuing
// viewer over its subscription.
func (m *Manager) Enqueue(act protocol.Inbound) {
	m.submit(Envelope{Action: act})
}

// submit places an action on its room's queue. The manager lock is held
// across the send so a runner can never retire between the lookup and the
// delivery.
func (m *Manager) submit(env Envelope) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runnerLocked(env.Action.RoomID).actions <- env
}

// Subscribe registers a viewer's outbound channel for masked-state pushes
// and marks the player connected.
func (m *Manager) Subscribe(roomID, viewerID string, send chan []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.runnerLocked(roomID)
	r.mu.Lock()
	if old, ok := r.subs[viewerID]; ok {
		close(old)
	}
	r.subs[viewerID] = send
	r.mu.Unlock()
	r.actions <- Envelope{Action: protocol.Inbound{Kind: protocol.Connect, RoomID: roomID, PlayerID: viewerID}}
}

// Unsubscribe drops the viewer's channel and marks the player
// disconnected. The channel is compared so a stale connection's teardown
// cannot evict its replacement.
func (m *Manager) Unsubscribe(roomID, viewerID string, send chan []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.runnerLocked(roomID)
	r.mu.Lock()
	if current, ok := r.subs[viewerID]; ok && current == send {
		close(current)
		delete(r.subs, viewerID)
	}
	r.mu.Unlock()
	r.actions <- Envelope{Action: protocol.Inbound{Kind: protocol.Disconnect, RoomID: roomID, PlayerID: viewerID}}
}

// runnerLocked returns the live runner for a room, starting one if
// needed. Callers must hold m.mu. Rooms are durable: after a restart or an
// idle retirement the runner is respawned lazily on the first action and
// reads its state back from the store.
func (m *Manager) runnerLocked(roomID string) *runner {
	if r, ok := m.rooms[roomID]; ok {
		return r
	}
	r := &runner{
		roomID:  roomID,
		m:       m,
		actions: make(chan Envelope, actionQueueSize),
		subs:    map[string]chan []byte{},
	}
	m.rooms[roomID] = r
	go r.loop()
	return r
}

// runner serializes all mutations for one room.
type runner struct {
	roomID  string
	m       *Manager
	actions chan Envelope

	mu   sync.Mutex
	subs map[string]chan []byte
}

func (r *runner) loop() {
	idle := time.NewTimer(r.m.idleTimeout)
	defer idle.Stop()
	for {
		select {
		case env := <-r.actions:
			out := r.handle(env.Action)
			if env.Reply != nil {
				env.Reply <- out
			} else if out.Kind != protocol.KindState {
				// conflicts and rule violations still reach the issuing caller
				r.sendTo(env.Action.PlayerID, out)
			}
			if !idle.Stop() {
				<-idle.C
			}
			idle.Reset(r.m.idleTimeout)
		case <-idle.C:
			if r.retire() {
				return
			}
			idle.Reset(r.m.idleTimeout)
		}
	}
}

// retire removes the runner of a room that has gone quiet: no queued
// actions, no subscribers. It takes the manager lock, so no action can be
// submitted to a runner that is going away; the room's next action spawns
// a fresh runner reading from durable state.
func (r *runner) retire() bool {
	if len(r.actions) > 0 {
		return false
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.actions) > 0 || len(r.subs) > 0 {
		return false
	}
	delete(r.m.rooms, r.roomID)
	return true
}

// handle runs one action to completion: read, validate, mutate, persist,
// broadcast. Nothing else touches this room's state concurrently.
func (r *runner) handle(act protocol.Inbound) protocol.Outbound {
	ctx := context.Background()

	sess, err := r.m.rstore.LoadSession(ctx, act.RoomID)
	if err != nil {
		return protocol.Outbound{Kind: protocol.KindError, Reason: err.Error()}
	}

	// read-only template actions bypass the version machinery
	if act.Kind == protocol.TemplateFetch || act.Kind == protocol.TemplateSave {
		return r.handleTemplate(ctx, sess, act)
	}

	mutate, err := r.dispatch(ctx, act)
	if err != nil {
		return protocol.Outbound{Kind: protocol.KindError, Reason: err.Error()}
	}

	expected := session.NoVersionCheck
	if act.ExpectedVersion != nil {
		expected = *act.ExpectedVersion
	}

	next, err := session.Apply(sess, expected, mutate)
	if session.IsConflict(err) {
		return protocol.Outbound{Kind: protocol.KindConflict, Version: sess.Version, Reason: err.Error()}
	}
	if err != nil {
		return protocol.Outbound{Kind: protocol.KindError, Reason: err.Error()}
	}

	// write-then-notify: durable before any viewer hears about it
	if err := r.m.rstore.SaveSession(ctx, next); err != nil {
		log.Printf("room %s: persist failed: %v", r.roomID, err)
		return protocol.Outbound{Kind: protocol.KindError, Reason: "could not persist state"}
	}

	r.scheduleUnlock(sess, next)
	r.broadcast(next)

	return protocol.Outbound{
		Kind:    protocol.KindState,
		Version: next.Version,
		State:   session.Project(next, act.PlayerID),
	}
}

// scheduleUnlock arms the pair-match mismatch timer when a commit opened
// a new lock window. The timer re-delivers a resolve message through the
// manager queue; the handler re-reads persisted state, so a stale capture
// can never leak back in.
func (r *runner) scheduleUnlock(prev, next *session.Session) {
	if next.PairMatch == nil || len(next.PairMatch.Flipped) != 2 || next.PairMatch.LockUntil.IsZero() {
		return
	}
	if prev.PairMatch != nil && prev.PairMatch.LockUntil.Equal(next.PairMatch.LockUntil) {
		return
	}
	roomID := r.roomID
	m := r.m
	delay := time.Until(next.PairMatch.LockUntil)
	time.AfterFunc(delay, func() {
		m.Enqueue(protocol.Inbound{
			Kind:   protocol.PairResolve,
			RoomID: roomID,
		})
	})
}

func (r *runner) broadcast(sess *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for viewerID, send := range r.subs {
		out := protocol.Outbound{
			Kind:    protocol.KindState,
			Version: sess.Version,
			State:   session.Project(sess, viewerID),
		}
		payload, err := json.Marshal(out)
		if err != nil {
			log.Printf("room %s: encode broadcast for %s: %v", r.roomID, viewerID, err)
			continue
		}
		select {
		case send <- payload:
		default:
			// slow consumer; it will catch up from durable state on reconnect
		}
	}
}

// sendTo delivers an outcome to one viewer. The lock is held across the
// send; Subscribe closes replaced channels under the same lock, so the
// channel can never close mid-send.
func (r *runner) sendTo(viewerID string, out protocol.Outbound) {
	if viewerID == "" {
		return
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	send, ok := r.subs[viewerID]
	if !ok {
		return
	}
	select {
	case send <- payload:
	default:
	}
}
