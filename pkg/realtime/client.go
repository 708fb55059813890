package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

// Client 单个 websocket 连接
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
	// 已加入的联赛房间，断开时用于清理
	leagues map[uint]struct{}
}

// clientCommand 客户端发来的订阅指令
type clientCommand struct {
	Type     string `json:"type"` // join-user | join-league | leave-league
	LeagueID uint   `json:"league_id,omitempty"`
}

// ServeClient 接管一个已升级的 websocket 连接
// userID 来自认证中间件，不信任客户端声明
func (h *Hub) ServeClient(conn *websocket.Conn, userID uint) {
	c := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		userID:  userID,
		leagues: make(map[uint]struct{}),
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

// readPump 读取并处理订阅指令，连接出错时注销
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket 连接异常断开", zap.Uint("user_id", c.userID), zap.Error(err))
			}
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			continue
		}

		switch cmd.Type {
		case "join-user":
			c.hub.joinUser(c)
		case "join-league":
			if cmd.LeagueID > 0 {
				c.hub.joinLeague(c, cmd.LeagueID)
			}
		case "leave-league":
			if cmd.LeagueID > 0 {
				c.hub.leaveLeague(c, cmd.LeagueID)
			}
		}
	}
}

// writePump 将 send 通道的消息写入连接，并定期发送 ping 保活
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub 已注销此连接
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
