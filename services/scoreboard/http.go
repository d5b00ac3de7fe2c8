package scoreboard

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
	"github.com/Stieges/hallenfussball-pwa-sub008/repos/tournament"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PUT(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PATCH(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Scoreboard is the interface for the scoreboard service.
type Scoreboard interface {
	InitializeMatch(ctx context.Context, slug string, fixture ScheduledFixture) (*livematch.LiveMatch, error)
	GetMatch(ctx context.Context, slug, matchID string) (*MatchState, error)
	StartMatch(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error)
	PauseMatch(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error)
	ResumeMatch(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error)
	RecordGoal(ctx context.Context, slug, matchID string, req GoalRequest) (*livematch.LiveMatch, error)
	RecordCard(ctx context.Context, slug, matchID string, req CardRequest) (*livematch.LiveMatch, error)
	RecordTimePenalty(ctx context.Context, slug, matchID string, req TimePenaltyRequest) (*livematch.LiveMatch, error)
	RecordSubstitution(ctx context.Context, slug, matchID string, req SubstitutionRequest) (*livematch.LiveMatch, error)
	RecordFoul(ctx context.Context, slug, matchID string, req FoulRequest) (*livematch.LiveMatch, error)
	UpdateResult(ctx context.Context, slug, matchID string, req ResultRequest) (*livematch.LiveMatch, error)
	AdjustTime(ctx context.Context, slug, matchID string, req AdjustTimeRequest) (*livematch.LiveMatch, error)
	UpdateEvent(ctx context.Context, slug, matchID, eventID string, req EventUpdateRequest) (*livematch.LiveMatch, error)
	UndoLastEvent(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error)
	FinishMatch(ctx context.Context, slug, matchID string) (FinishResult, *livematch.LiveMatch, error)
	StartOvertime(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error)
	StartGoldenGoal(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error)
	StartPenaltyShootout(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error)
	RecordPenaltyResult(ctx context.Context, slug, matchID string, req PenaltyResultRequest) (*livematch.LiveMatch, error)
	CancelTiebreaker(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Scoreboard

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/:slug_id/matches", h.initializeMatchHandler)
	r.GET("/:slug_id/matches/:match_id", h.getMatchHandler)
	r.POST("/:slug_id/matches/:match_id/start", h.startMatchHandler)
	r.POST("/:slug_id/matches/:match_id/pause", h.pauseMatchHandler)
	r.POST("/:slug_id/matches/:match_id/resume", h.resumeMatchHandler)
	r.POST("/:slug_id/matches/:match_id/goals", h.recordGoalHandler)
	r.POST("/:slug_id/matches/:match_id/cards", h.recordCardHandler)
	r.POST("/:slug_id/matches/:match_id/time-penalties", h.recordTimePenaltyHandler)
	r.POST("/:slug_id/matches/:match_id/substitutions", h.recordSubstitutionHandler)
	r.POST("/:slug_id/matches/:match_id/fouls", h.recordFoulHandler)
	r.PUT("/:slug_id/matches/:match_id/result", h.updateResultHandler)
	r.PUT("/:slug_id/matches/:match_id/time", h.adjustTimeHandler)
	r.PATCH("/:slug_id/matches/:match_id/events/:event_id", h.updateEventHandler)
	r.POST("/:slug_id/matches/:match_id/undo", h.undoHandler)
	r.POST("/:slug_id/matches/:match_id/finish", h.finishMatchHandler)
	r.POST("/:slug_id/matches/:match_id/overtime", h.startOvertimeHandler)
	r.POST("/:slug_id/matches/:match_id/golden-goal", h.startGoldenGoalHandler)
	r.POST("/:slug_id/matches/:match_id/penalty-shootout", h.startShootoutHandler)
	r.POST("/:slug_id/matches/:match_id/penalty-result", h.penaltyResultHandler)
	r.POST("/:slug_id/matches/:match_id/cancel-tiebreaker", h.cancelTiebreakerHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) initializeMatchHandler(c *gin.Context) {
	slug := c.Param("slug_id")

	var fixture ScheduledFixture
	if err := c.ShouldBindJSON(&fixture); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	if fixture.MatchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "matchId is required"})
		c.Abort()
		return
	}

	match, err := s.Service.InitializeMatch(c, slug, fixture)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) getMatchHandler(c *gin.Context) {
	state, err := s.Service.GetMatch(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *httpHandler) startMatchHandler(c *gin.Context) {
	match, err := s.Service.StartMatch(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) pauseMatchHandler(c *gin.Context) {
	match, err := s.Service.PauseMatch(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) resumeMatchHandler(c *gin.Context) {
	match, err := s.Service.ResumeMatch(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) recordGoalHandler(c *gin.Context) {
	var request GoalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := s.Service.RecordGoal(c, c.Param("slug_id"), c.Param("match_id"), request)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) recordCardHandler(c *gin.Context) {
	var request CardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := s.Service.RecordCard(c, c.Param("slug_id"), c.Param("match_id"), request)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) recordTimePenaltyHandler(c *gin.Context) {
	var request TimePenaltyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := s.Service.RecordTimePenalty(c, c.Param("slug_id"), c.Param("match_id"), request)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) recordSubstitutionHandler(c *gin.Context) {
	var request SubstitutionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := s.Service.RecordSubstitution(c, c.Param("slug_id"), c.Param("match_id"), request)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) recordFoulHandler(c *gin.Context) {
	var request FoulRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := s.Service.RecordFoul(c, c.Param("slug_id"), c.Param("match_id"), request)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) updateResultHandler(c *gin.Context) {
	var request ResultRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := s.Service.UpdateResult(c, c.Param("slug_id"), c.Param("match_id"), request)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) adjustTimeHandler(c *gin.Context) {
	var request AdjustTimeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := s.Service.AdjustTime(c, c.Param("slug_id"), c.Param("match_id"), request)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) updateEventHandler(c *gin.Context) {
	var request EventUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := s.Service.UpdateEvent(c, c.Param("slug_id"), c.Param("match_id"), c.Param("event_id"), request)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) undoHandler(c *gin.Context) {
	match, err := s.Service.UndoLastEvent(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) finishMatchHandler(c *gin.Context) {
	result, match, err := s.Service.FinishMatch(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "match": match})
}

func (s *httpHandler) startOvertimeHandler(c *gin.Context) {
	match, err := s.Service.StartOvertime(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) startGoldenGoalHandler(c *gin.Context) {
	match, err := s.Service.StartGoldenGoal(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) startShootoutHandler(c *gin.Context) {
	match, err := s.Service.StartPenaltyShootout(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) penaltyResultHandler(c *gin.Context) {
	var request PenaltyResultRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := s.Service.RecordPenaltyResult(c, c.Param("slug_id"), c.Param("match_id"), request)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) cancelTiebreakerHandler(c *gin.Context) {
	match, err := s.Service.CancelTiebreaker(c, c.Param("slug_id"), c.Param("match_id"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *httpHandler) abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, livematch.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, tournament.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMatchFinished):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidTeam):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Scoreboard operation failed: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
	c.Abort()
}
