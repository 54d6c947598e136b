package server

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seo_article_writer/generator"
	"seo_article_writer/history"
	"seo_article_writer/writer"
)

//go:embed web/index.html
var indexHTML []byte

const requestIDHeader = "X-Request-ID"

type Server struct {
	session *writer.Session
	logger  *slog.Logger
	timeout time.Duration
	busy    atomic.Bool
}

// New wires the HTTP surface to session. timeout bounds one generation
// call; zero leaves it to the client defaults.
func New(session *writer.Session, logger *slog.Logger, timeout time.Duration) (*Server, error) {
	if session == nil {
		return nil, errors.New("writer session required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{session: session, logger: logger, timeout: timeout}, nil
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	api := r.Group("/api")
	{
		api.GET("/options", s.handleOptions)
		api.GET("/credential", s.handleCredentialGet)
		api.PUT("/credential", s.handleCredentialPut)

		api.GET("/articles", s.handleList)
		api.POST("/articles", s.handleGenerate)
		api.DELETE("/articles", s.handleClear)
		api.GET("/articles/:id", s.handleOpen)
		api.GET("/articles/:id/text", s.handleText)
		api.DELETE("/articles/:id", s.handleDelete)
	}
	return r
}

// --- Handlers ---

type credentialReq struct {
	APIKey string `json:"api_key"`
}

type articleSummary struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	TargetAudience string    `json:"target_audience"`
	AudienceLabel  string    `json:"audience_label"`
	CreatedAt      time.Time `json:"created_at"`
}

type generateResp struct {
	writer.Result
	Message string `json:"message"`
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"audiences":      generator.Audiences(),
		"lengths":        generator.Lengths(),
		"default_length": generator.DefaultLength,
	})
}

func (s *Server) handleCredentialGet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"configured": s.session.APIKey() != ""})
}

func (s *Server) handleCredentialPut(c *gin.Context) {
	var req credentialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.session.SetAPIKey(c.Request.Context(), req.APIKey); err != nil {
		s.fail(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "API Key ถูกบันทึกแล้ว", "configured": req.APIKey != ""})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req writer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !s.busy.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, gin.H{"error": "กำลังสร้างบทความ กรุณารอสักครู่"})
		return
	}
	defer s.busy.Store(false)

	ctx := c.Request.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	res, err := s.session.Generate(ctx, req)
	if err != nil {
		s.fail(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, generateResp{Result: res, Message: "สร้างบทความสำเร็จ!"})
}

func (s *Server) handleList(c *gin.Context) {
	records, err := s.session.Recent(c.Request.Context())
	if err != nil {
		s.fail(c, err, http.StatusInternalServerError)
		return
	}
	out := make([]articleSummary, 0, len(records))
	for _, r := range records {
		out = append(out, articleSummary{
			ID:             r.ID,
			Title:          r.Title,
			TargetAudience: r.TargetAudience,
			AudienceLabel:  generator.AudienceLabel(r.TargetAudience),
			CreatedAt:      r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleOpen(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	res, err := s.session.Open(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, generateResp{Result: res, Message: "โหลดบทความเรียบร้อยแล้ว!"})
}

func (s *Server) handleText(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	text, err := s.session.PlainText(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, http.StatusInternalServerError)
		return
	}
	c.String(http.StatusOK, text)
}

func (s *Server) handleDelete(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}
	if err := s.session.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ลบบทความเรียบร้อยแล้ว"})
}

func (s *Server) handleClear(c *gin.Context) {
	if err := s.session.Clear(c.Request.Context()); err != nil {
		s.fail(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ลบประวัติบทความทั้งหมดแล้ว"})
}

// --- Helpers ---

func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return 0, false
	}
	return id, true
}

// fail maps err to a status and a user-facing message. fallback is used for
// errors that are not validation or lookup failures.
func (s *Server) fail(c *gin.Context, err error, fallback int) {
	var verr *writer.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, history.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ไม่พบบทความที่เลือก"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "เกิดข้อผิดพลาด: " + err.Error()})
	default:
		s.logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
		c.JSON(fallback, gin.H{"error": "เกิดข้อผิดพลาด: " + err.Error()})
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
		logger.Info("http request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
