package stream

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/lixenwraith/tether/scene"
)

var startTime = time.Now()

// NewRouter exposes sim and hub over HTTP
//
//	GET  /health        liveness
//	GET  /ws            websocket stream of snapshots and events
//	GET  /snapshot      one snapshot as JSON
//	GET  /stats         status registry
//	GET  /scenes        preset names
//	POST /scene/:name   load a preset
func NewRouter(sim Simulation, hub *Hub) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "tether",
			"uptime":  time.Since(startTime).String(),
			"viewers": hub.ClientCount(),
		})
	})

	router.GET("/ws", func(c *gin.Context) {
		if err := hub.ServeWS(c.Writer, c.Request); err != nil {
			// Upgrader already wrote the HTTP error
			log.Printf("stream: upgrade: %v", err)
		}
	})

	router.GET("/snapshot", func(c *gin.Context) {
		c.JSON(http.StatusOK, sim.Snapshot())
	})

	router.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, sim.Stats())
	})

	router.GET("/scenes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"scenes": sim.Scenes()})
	})

	router.POST("/scene/:name", func(c *gin.Context) {
		name := c.Param("name")
		if err := sim.LoadScene(name); err != nil {
			status := http.StatusUnprocessableEntity
			if errors.Cause(err) == scene.ErrUnknownPreset {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		log.Printf("stream: loaded scene %s", name)
		c.JSON(http.StatusOK, gin.H{"scene": name})
	})

	return router
}
