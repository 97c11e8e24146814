package gateway

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"gifttaste/gift"
)

const (
	OpTaste   = "taste"
	OpTier    = "tier"
	OpLearn   = "learn"
	OpChanged = "changed" // pushed to every client when learned gifts change
)

// UniversalKey in a tier request selects the canonical universal tier for
// the requested taste.
const UniversalKey = "universal"

// Error codes carried in error replies.
const (
	CodeBadFrame   = 1
	CodeUnknownOp  = 2
	CodeBadRequest = 3
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to the overlay host once it is deployed behind a fixed origin
	},
}

// Connection represents a WebSocket client connection
type Connection struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	Gateway  *Gateway
	LastPing time.Time
}

// Gateway answers taste queries over WebSocket. Frames in both directions
// are binary protobuf Struct messages.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	engine      *gift.Engine
	learned     gift.Database
}

// New returns a gateway resolving against engine. Gifts reported with the
// learn op are stored in learned.
func New(engine *gift.Engine, learned gift.Database) *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		engine:      engine,
		learned:     learned,
	}
}

// HandleWebSocket handles WebSocket upgrade and connection
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	c := &Connection{
		ID:       uuid.NewString(),
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Gateway:  g,
		LastPing: time.Now(),
	}
	g.mu.Lock()
	g.connections[c.ID] = c
	total := len(g.connections)
	g.mu.Unlock()

	log.Printf("[Gateway] Client connected: %s, total: %d", c.ID, total)

	go c.readPump()
	go c.writePump()
}

// NotifyChange pushes a changed frame to every connected client. It is meant
// to be registered with gift.Database.OnChange.
func (g *Gateway) NotifyChange() {
	msg := reply(map[string]any{"op": OpChanged})
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, c := range g.connections {
		c.send(msg)
	}
}

// Count returns the number of open connections.
func (g *Gateway) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.connections)
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		close(c.Send)
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastPing = time.Now()
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] Read error: %v", err)
			}
			break
		}

		if messageType == websocket.BinaryMessage {
			c.send(c.Gateway.handleMessage(message))
		}
	}
}

// handleMessage decodes one request frame and returns the reply.
func (g *Gateway) handleMessage(data []byte) *structpb.Struct {
	var req structpb.Struct
	if err := proto.Unmarshal(data, &req); err != nil {
		log.Printf("[Gateway] Failed to unmarshal: %v", err)
		return errorReply(CodeBadFrame, "invalid message format")
	}

	fields := req.GetFields()
	op := fields["op"].GetStringValue()
	switch op {
	case OpTaste:
		npc := fields["npc"].GetStringValue()
		item := fields["item"].GetStringValue()
		if npc == "" || item == "" {
			return errorReply(CodeBadRequest, "npc and item are required")
		}
		taste := g.engine.ResolveTaste(npc, item)
		return reply(map[string]any{"op": op, "npc": npc, "item": item, "taste": taste.String()})
	case OpTier:
		key := fields["key"].GetStringValue()
		taste, err := gift.ParseTaste(fields["taste"].GetStringValue())
		if key == "" || err != nil || !taste.Known() {
			return errorReply(CodeBadRequest, "key and a valid taste are required")
		}
		if key == UniversalKey {
			key, _ = gift.UniversalTierName(taste)
		}
		tokens := g.engine.ItemsForTier(key, taste)
		items := make([]any, 0, len(tokens))
		for _, t := range tokens {
			items = append(items, t)
		}
		return reply(map[string]any{"op": op, "key": key, "taste": taste.String(), "items": items})
	case OpLearn:
		npc := fields["npc"].GetStringValue()
		item := fields["item"].GetStringValue()
		taste, err := gift.ParseTaste(fields["taste"].GetStringValue())
		if npc == "" || item == "" || err != nil || !taste.Known() {
			return errorReply(CodeBadRequest, "npc, item and a valid taste are required")
		}
		added := g.learned.AddGift(npc, item, taste)
		return reply(map[string]any{"op": op, "npc": npc, "item": item, "taste": taste.String(), "added": added})
	default:
		log.Printf("[Gateway] Unknown op: %q", op)
		return errorReply(CodeUnknownOp, "unknown op")
	}
}

func reply(fields map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		log.Printf("[Gateway] Failed to build reply: %v", err)
		return errorReply(CodeBadRequest, err.Error())
	}
	return s
}

func errorReply(code int32, msg string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"error": structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"code":    structpb.NewNumberValue(float64(code)),
			"message": structpb.NewStringValue(msg),
		}}),
	}}
}

func (c *Connection) send(msg *structpb.Struct) {
	data, err := proto.Marshal(msg)
	if err != nil {
		log.Printf("[Gateway] Failed to marshal: %v", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		// Drop if buffer full
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	log.Printf("[Gateway] Client disconnected: %s, total: %d", c.ID, len(g.connections))
}
