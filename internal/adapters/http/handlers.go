package httpadapter

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
	"github.com/NirB94/EfsharHeshbon/internal/hint"
	"github.com/NirB94/EfsharHeshbon/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.handleHealth)

	api := r.Group("/api")
	api.POST("/solve", h.handleSolve)
	api.POST("/new_game", h.handleNewGame)
	api.POST("/solve_manual", h.handleSolveManual)
	api.GET("/difficulty/:level", h.handleInspectDifficulty)
	api.POST("/hint/start", h.handleHintStart)
	api.POST("/hint/next", h.handleHintNext)
	api.POST("/hint/reset", h.handleHintReset)
	api.POST("/save", h.handleSave)
	api.POST("/load", h.handleLoad)
	api.GET("/list", h.handleList)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().Unix()})
}

type puzzleReq struct {
	Board      domain.Board `json:"board" binding:"required"`
	RowTargets []int        `json:"targetRows" binding:"required"`
	ColTargets []int        `json:"targetCols" binding:"required"`
	Operation  string       `json:"operation" binding:"required"`
}

func (h *Handler) handleSolve(c *gin.Context) {
	var req puzzleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	op, err := domain.ParseOperator(req.Operation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.UC.Solve(c.Request.Context(), req.Board, req.RowTargets, req.ColTargets, op)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if res.Minimal == nil {
		c.JSON(http.StatusOK, gin.H{"solution": nil, "markedCount": 0, "allSolutions": []domain.Mask{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"solution":     res.Minimal,
		"markedCount":  res.MarkedCount,
		"allSolutions": res.All,
		"durationMs":   res.Stats.Duration.Milliseconds(),
		"nodes":        res.Stats.Nodes,
	})
}

type newGameReq struct {
	Operation  string `json:"operation" binding:"required"`
	Difficulty string `json:"difficulty"`
	Seed       int64  `json:"seed"`
}

func (h *Handler) handleNewGame(c *gin.Context) {
	var req newGameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	op, err := domain.ParseOperator(req.Operation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p, err := h.UC.NewGame(c.Request.Context(), seed, op, domain.ParseDifficulty(req.Difficulty))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrGenerationExhausted) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) handleSolveManual(c *gin.Context) {
	var req puzzleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	op, err := domain.ParseOperator(req.Operation)
	if err != nil {
		// Validation owns operator complaints for manual input.
		op = domain.Operator(req.Operation)
	}
	res, err := h.UC.SolveManual(c.Request.Context(), req.Board, req.RowTargets, req.ColTargets, op)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          res.Success,
		"optimalSolution":  res.Minimal,
		"markedCount":      res.MarkedCount,
		"totalSolutions":   res.Stats.Total,
		"allSolutions":     res.All,
		"validationErrors": res.Issues,
		"solutionStats":    res.Stats,
	})
}

func (h *Handler) handleInspectDifficulty(c *gin.Context) {
	op := domain.Product
	if q := c.Query("operation"); q != "" {
		parsed, err := domain.ParseOperator(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		op = parsed
	}
	rep, err := h.UC.InspectDifficulty(c.Request.Context(), op, domain.ParseDifficulty(c.Param("level")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}

type hintStartReq struct {
	Solution domain.Mask `json:"solution" binding:"required"`
}

func (h *Handler) handleHintStart(c *gin.Context) {
	var req hintStartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	id, err := h.UC.StartHint(req.Solution)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": id})
}

type hintSessionReq struct {
	SessionID string `json:"sessionId" binding:"required"`
}

func (h *Handler) handleHintNext(c *gin.Context) {
	var req hintSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	cell, found, err := h.UC.NextHint(req.SessionID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, hint.ErrUnknownSession) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": found, "cell": cell})
}

func (h *Handler) handleHintReset(c *gin.Context) {
	var req hintSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.UC.ResetHint(req.SessionID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, hint.ErrUnknownSession) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) handleSave(c *gin.Context) {
	var p domain.Puzzle
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": p.ID})
}

type loadReq struct {
	ID string `json:"id" binding:"required"`
}

func (h *Handler) handleLoad(c *gin.Context) {
	var req loadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	p, err := h.UC.Load(c.Request.Context(), req.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"puzzle": p})
}

func (h *Handler) handleList(c *gin.Context) {
	ps, err := h.UC.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if ps == nil {
		ps = []domain.PuzzleMeta{}
	}
	c.JSON(http.StatusOK, gin.H{"puzzles": ps})
}
