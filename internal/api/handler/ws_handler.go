package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fantaprof/backend/pkg/jwt"
	"fantaprof/backend/pkg/realtime"
	"fantaprof/backend/pkg/response"
)

// WSHandler websocket 接入处理器
type WSHandler struct {
	jwtMgr   *jwt.Manager
	hub      *realtime.Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler 创建 WSHandler
func NewWSHandler(jwtMgr *jwt.Manager, hub *realtime.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		jwtMgr: jwtMgr,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 前端独立部署，跨源由网关层控制
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// Serve 建立 websocket 连接
// GET /ws?token=xxx
// 浏览器 WebSocket API 无法自定义请求头，Token 走查询参数
func (h *WSHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, 10002, "缺少 token")
		return
	}

	claims, err := h.jwtMgr.ParseToken(token)
	if err != nil || claims.TokenType != "access" {
		response.Unauthorized(c, 10002, "Token 无效或已过期")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时已写入 HTTP 错误响应
		h.logger.Warn("websocket 升级失败", zap.Uint("user_id", claims.UserID), zap.Error(err))
		return
	}

	h.hub.ServeClient(conn, claims.UserID)
}
