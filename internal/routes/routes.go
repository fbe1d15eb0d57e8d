// Package routes exposes the action server over HTTP: the orchestrator's
// webhook plus a health probe.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/actions"
	"github.com/ayambakarnusantara/action-server/internal/database"
)

const apologyText = "Maaf, terjadi kesalahan yang tidak terduga. Silakan coba lagi nanti."

// webhookRequest is the orchestrator's action call.
type webhookRequest struct {
	NextAction string `json:"next_action" binding:"required"`
	SenderID   string `json:"sender_id"`
	Tracker    struct {
		Slots         map[string]any `json:"slots"`
		LatestMessage struct {
			Entities []actions.Entity `json:"entities"`
		} `json:"latest_message"`
	} `json:"tracker"`
}

// webhookResponse is what the orchestrator applies back onto the
// conversation: state events plus messages for the user.
type webhookResponse struct {
	Events    []actions.Event    `json:"events"`
	Responses []actions.Response `json:"responses"`
}

// Server holds the webhook's dependencies.
type Server struct {
	registry *actions.Registry
	db       *database.DB
	log      *zap.SugaredLogger
}

// NewServer builds the HTTP layer on top of an action registry.
func NewServer(registry *actions.Registry, db *database.DB, log *zap.SugaredLogger) *Server {
	return &Server{registry: registry, db: db, log: log}
}

// requestID tags every request so webhook log lines can be correlated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// SetupRouter wires the routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())

	router.POST("/webhook", s.handleWebhook)
	router.GET("/health", s.handleHealth)

	return router
}

func (s *Server) handleWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	action, ok := s.registry.Lookup(req.NextAction)
	if !ok {
		s.log.Warnw("unknown action requested",
			"action", req.NextAction, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + req.NextAction})
		return
	}

	tracker := &actions.Tracker{
		SenderID: req.SenderID,
		Slots:    req.Tracker.Slots,
		Entities: req.Tracker.LatestMessage.Entities,
	}
	if tracker.Slots == nil {
		tracker.Slots = map[string]any{}
	}

	dispatcher := &actions.Dispatcher{}
	events := s.runAction(c, action, dispatcher, tracker)

	resp := webhookResponse{
		Events:    events,
		Responses: dispatcher.Responses(),
	}
	if resp.Events == nil {
		resp.Events = []actions.Event{}
	}
	if resp.Responses == nil {
		resp.Responses = []actions.Response{}
	}
	c.JSON(http.StatusOK, resp)
}

// runAction isolates a panicking action: the user gets an apology and the
// conversation keeps its state instead of the whole request failing.
func (s *Server) runAction(c *gin.Context, action actions.Action, d *actions.Dispatcher, t *actions.Tracker) (events []actions.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("action panicked",
				"action", action.Name(), "request_id", c.GetString("request_id"), "panic", r)
			d.Say(apologyText)
			events = nil
		}
	}()

	s.log.Infow("running action",
		"action", action.Name(), "sender_id", t.SenderID,
		"request_id", c.GetString("request_id"))
	return action.Run(c.Request.Context(), d, t)
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.db.EnsureLive(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"actions": len(s.registry.Names()),
	})
}
