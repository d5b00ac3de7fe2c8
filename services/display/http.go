package display

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
)

type Router interface {
	GET(string, ...gin.HandlerFunc) gin.IRoutes
	Use(...gin.HandlerFunc) gin.IRoutes
	Group(string, ...gin.HandlerFunc) *gin.RouterGroup
}

type Display interface {
	Subscribe(ctx context.Context, tournamentID string, conn *websocket.Conn) error
	Ticker(ctx context.Context, tournamentID string, matchID string) ([]string, error)
	ShareCode(tournamentID string, matchID string) string
	ResolveShareCode(code string) (string, string, error)
}

type HTTPOptions struct {
	Service Display
	Router  Router
}

func NewHTTPHandler(opts HTTPOptions) {
	handler := &httpHandler{
		HTTPOptions: opts,
	}

	opts.Router.GET("/live/:slug_id", handler.Live)
	opts.Router.GET("/ticker/:slug_id/:match_id", handler.GetTicker)
	opts.Router.GET("/share-code/:slug_id/:match_id", handler.GetShareCode)
	opts.Router.GET("/join/:code", handler.Join)
}

type httpHandler struct {
	HTTPOptions
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: check origin against CORS_HOSTS
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Live upgrades the request and hands the connection to the hub. The first
// frame the display receives is the full snapshot of the tournament.
func (s *httpHandler) Live(c *gin.Context) {
	slugID := c.Param("slug_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed for %v: %v\n", slugID, err)
		return
	}

	err = s.Service.Subscribe(c.Request.Context(), slugID, conn)
	if err != nil {
		log.Printf("Display subscribe failed for %v: %v\n", slugID, err)
		conn.Close()
	}
}

func (s *httpHandler) GetTicker(c *gin.Context) {
	slugID := c.Param("slug_id")
	matchID := c.Param("match_id")

	lines, err := s.Service.Ticker(c.Request.Context(), slugID, matchID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matchId": matchID,
		"lines":   lines,
	})
}

func (s *httpHandler) GetShareCode(c *gin.Context) {
	slugID := c.Param("slug_id")
	matchID := c.Param("match_id")

	c.JSON(http.StatusOK, gin.H{
		"code": s.Service.ShareCode(slugID, matchID),
	})
}

func (s *httpHandler) Join(c *gin.Context) {
	code := c.Param("code")

	slugID, matchID, err := s.Service.ResolveShareCode(code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "not a valid share code",
		})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tournamentId": slugID,
		"matchId":      matchID,
	})
}

func (s *httpHandler) abortWithError(c *gin.Context, err error) {
	switch {
	case err == livematch.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{
			"error": "match not found",
		})
	default:
		log.Printf("Error in display request: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "something went wrong",
		})
	}
	c.Abort()
}
