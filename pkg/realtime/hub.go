package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fantaprof/backend/pkg/redis"
)

// 频道作用域
const (
	ScopeUser   = "user"   // 单个用户的私有频道
	ScopeLeague = "league" // 联赛频道
	ScopeGlobal = "global" // 全局广播
)

// bridgeChannel 多实例消息桥接使用的 Redis Pub/Sub 频道
const bridgeChannel = "fantaprof:realtime"

// Envelope 推送给客户端的消息格式
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// bridgeMessage Redis 桥接消息
// Origin 标识发布实例，订阅端跳过自己发出的消息避免重复推送
type bridgeMessage struct {
	Origin   string          `json:"origin"`
	Scope    string          `json:"scope"`
	TargetID uint            `json:"target_id,omitempty"`
	Event    string          `json:"event"`
	Data     json.RawMessage `json:"data"`
}

// Hub 实时推送中心
//
// 维护三类会话级订阅：用户私有房间、联赛房间、全局连接集合。
// 投递语义为 at-most-once：无人订阅时消息直接丢弃，持久化的
// Notification 行才是客户端重连后对账的依据。
type Hub struct {
	mu          sync.RWMutex
	clients     map[*Client]struct{}
	userRooms   map[uint]map[*Client]struct{}
	leagueRooms map[uint]map[*Client]struct{}

	instanceID string
	rdb        *redis.Client // nil 时单实例运行，不做桥接
	logger     *zap.Logger
}

// NewHub 创建 Hub；rdb 可为 nil
func NewHub(rdb *redis.Client, logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]struct{}),
		userRooms:   make(map[uint]map[*Client]struct{}),
		leagueRooms: make(map[uint]map[*Client]struct{}),
		instanceID:  uuid.New().String(),
		rdb:         rdb,
		logger:      logger,
	}
}

// Run 启动 Redis 桥接订阅循环；ctx 取消时退出
// rdb 为 nil 时立即返回
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}

	ch := h.rdb.Subscribe(ctx, bridgeChannel)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var bm bridgeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &bm); err != nil {
				h.logger.Warn("桥接消息解析失败", zap.Error(err))
				continue
			}
			if bm.Origin == h.instanceID {
				continue
			}
			h.deliverLocal(bm.Scope, bm.TargetID, Envelope{Event: bm.Event, Data: bm.Data})
		}
	}
}

// ── 发布接口（service 层通过它做 fan-out，fire-and-forget）──

// PublishToUser 向用户私有频道推送
func (h *Hub) PublishToUser(userID uint, event string, data interface{}) {
	h.publish(ScopeUser, userID, event, data)
}

// PublishToLeague 向联赛频道推送
func (h *Hub) PublishToLeague(leagueID uint, event string, data interface{}) {
	h.publish(ScopeLeague, leagueID, event, data)
}

// Broadcast 向所有在线客户端推送
func (h *Hub) Broadcast(event string, data interface{}) {
	h.publish(ScopeGlobal, 0, event, data)
}

func (h *Hub) publish(scope string, targetID uint, event string, data interface{}) {
	h.deliverLocal(scope, targetID, Envelope{Event: event, Data: data})

	if h.rdb == nil {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		h.logger.Warn("实时消息序列化失败", zap.String("event", event), zap.Error(err))
		return
	}
	payload, err := json.Marshal(bridgeMessage{
		Origin:   h.instanceID,
		Scope:    scope,
		TargetID: targetID,
		Event:    event,
		Data:     raw,
	})
	if err != nil {
		return
	}
	// 桥接失败只降级为单实例推送，不影响请求处理
	if err := h.rdb.Publish(context.Background(), bridgeChannel, payload); err != nil {
		h.logger.Warn("桥接消息发布失败", zap.Error(err))
	}
}

// deliverLocal 向本实例订阅者投递；发送缓冲已满的慢客户端直接丢弃该条消息
func (h *Hub) deliverLocal(scope string, targetID uint, env Envelope) {
	raw, err := json.Marshal(env)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var targets map[*Client]struct{}
	switch scope {
	case ScopeUser:
		targets = h.userRooms[targetID]
	case ScopeLeague:
		targets = h.leagueRooms[targetID]
	case ScopeGlobal:
		targets = h.clients
	}

	for c := range targets {
		select {
		case c.send <- raw:
		default:
		}
	}
}

// ── 连接与房间管理（会话级，不持久化，重连需重新加入）──

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	if room, ok := h.userRooms[c.userID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.userRooms, c.userID)
		}
	}
	for leagueID := range c.leagues {
		if room, ok := h.leagueRooms[leagueID]; ok {
			delete(room, c)
			if len(room) == 0 {
				delete(h.leagueRooms, leagueID)
			}
		}
	}
	close(c.send)
}

// joinUser 将连接加入其认证用户的私有房间
// 房间号取自认证身份而非客户端声明，防止订阅他人频道
func (h *Hub) joinUser(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	if h.userRooms[c.userID] == nil {
		h.userRooms[c.userID] = make(map[*Client]struct{})
	}
	h.userRooms[c.userID][c] = struct{}{}
}

func (h *Hub) joinLeague(c *Client, leagueID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	if h.leagueRooms[leagueID] == nil {
		h.leagueRooms[leagueID] = make(map[*Client]struct{})
	}
	h.leagueRooms[leagueID][c] = struct{}{}
	c.leagues[leagueID] = struct{}{}
}

func (h *Hub) leaveLeague(c *Client, leagueID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.leagueRooms[leagueID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.leagueRooms, leagueID)
		}
	}
	delete(c.leagues, leagueID)
}

// ConnectionCount 当前在线连接数（健康检查用）
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
