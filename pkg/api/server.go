// Package api provides the REST API server for bruteconfig
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/james-see/bruteconfig/pkg/editor"
	"github.com/james-see/bruteconfig/pkg/midiport"
	"github.com/james-see/bruteconfig/pkg/settings"
)

// @title bruteconfig API
// @version 1.0
// @description API for reading and changing Arturia MicroBrute settings
// @host localhost:8080
// @BasePath /api/v1

// PortLister enumerates MIDI ports. midiport.List satisfies it.
type PortLister func(ctx context.Context) (midiport.Ports, error)

const portsTimeout = 5 * time.Second

// Server serves one editor.
type Server struct {
	editor *editor.Editor
	ports  PortLister
	log    logrus.FieldLogger
}

// New creates a server. ports may be nil when no MIDI driver is available.
func New(ed *editor.Editor, ports PortLister, log logrus.FieldLogger) *Server {
	return &Server{editor: ed, ports: ports, log: log}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())

	r.GET("/health", healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/settings", s.listSettings)
		v1.PUT("/settings", s.updateSetting)
		v1.GET("/commands/encode", s.encodeCommand)
		v1.POST("/decode", decodeMessage)
		v1.GET("/ports", s.listPorts)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int, s *Server) error {
	return s.Router().Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("request")
	}
}

// SettingView is the JSON form of one setting.
type SettingView struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Selected *string  `json:"selected"`
	Options  []string `json:"options"`
}

// GroupView is the JSON form of a registry group.
type GroupView struct {
	Name     string        `json:"name"`
	Settings []SettingView `json:"settings"`
}

// CommandView is the JSON form of an encoded command.
type CommandView struct {
	Option string `json:"option"`
	Value  string `json:"value"`
	Bytes  string `json:"bytes"`
}

// SetRequest selects one value of one setting.
type SetRequest struct {
	Option string `json:"option" binding:"required"`
	Value  string `json:"value" binding:"required"`
}

func groupViews(r settings.Registry) []GroupView {
	out := make([]GroupView, 0, len(r))
	for _, g := range r {
		gv := GroupView{Name: g.Name, Settings: make([]SettingView, 0, len(g.Settings))}
		for _, s := range g.Settings {
			sv := SettingView{Key: settings.Key(s.Name()), Name: s.Name()}
			if s.Selected != nil {
				v := settings.OptionValue(s.Selected)
				sv.Selected = &v
			}
			for _, c := range s.Allowed {
				sv.Options = append(sv.Options, settings.OptionValue(c))
			}
			gv.Settings = append(gv.Settings, sv)
		}
		out = append(out, gv)
	}
	return out
}

func commandView(c settings.Command, data []byte) CommandView {
	return CommandView{
		Option: settings.OptionName(c),
		Value:  settings.OptionValue(c),
		Bytes:  settings.FormatHex(data),
	}
}

func lookupStatus(err error) int {
	switch {
	case errors.Is(err, settings.ErrUnknownOption):
		return http.StatusNotFound
	case errors.Is(err, settings.ErrUnknownValue):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "bruteconfig",
	})
}

// listSettings godoc
// @Summary List settings
// @Description Returns every setting grouped as on the device, with the current selection
// @Tags settings
// @Produce json
// @Success 200 {object} map[string][]GroupView
// @Router /api/v1/settings [get]
func (s *Server) listSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": groupViews(s.editor.Registry())})
}

// updateSetting godoc
// @Summary Change a setting
// @Description Sends the new value to the device and records it as selected
// @Tags settings
// @Accept json
// @Produce json
// @Param request body SetRequest true "Option and value"
// @Success 200 {object} CommandView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/settings [put]
func (s *Server) updateSetting(c *gin.Context) {
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd, data, err := s.editor.Set(req.Option, req.Value)
	if err != nil {
		c.JSON(lookupStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, commandView(cmd, data))
}

// encodeCommand godoc
// @Summary Encode a setting
// @Description Returns the bytes that set option to value without sending them
// @Tags commands
// @Produce json
// @Produce application/octet-stream
// @Param option query string true "Option name or key, e.g. note-priority"
// @Param value query string true "Value label, e.g. High"
// @Param format query string false "json (default) or syx"
// @Success 200 {object} CommandView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/commands/encode [get]
func (s *Server) encodeCommand(c *gin.Context) {
	cmd, err := s.editor.Registry().Find(c.Query("option"), c.Query("value"))
	if err != nil {
		c.JSON(lookupStatus(err), gin.H{"error": err.Error()})
		return
	}
	data := settings.CommandData(cmd)

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, commandView(cmd, data))
	case "syx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.syx", settings.Key(cmd.Name())))
		c.Data(http.StatusOK, "application/octet-stream", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format"})
	}
}

// decodeMessage godoc
// @Summary Decode a message
// @Description Identifies the setting carried by a hex encoded MIDI message
// @Tags commands
// @Accept plain
// @Produce json
// @Param data body string true "Hex bytes, e.g. F0 00 20 6B 05 01 00 0B 02 F7"
// @Success 200 {object} CommandView
// @Failure 400 {object} map[string]string
// @Router /api/v1/decode [post]
func decodeMessage(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	data, err := settings.ParseHex(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd, err := settings.Decode(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, commandView(cmd, data))
}

// listPorts godoc
// @Summary List MIDI ports
// @Description Returns the available MIDI outputs and inputs
// @Tags info
// @Produce json
// @Success 200 {object} midiport.Ports
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/ports [get]
func (s *Server) listPorts(c *gin.Context) {
	if s.ports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no MIDI driver"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), portsTimeout)
	defer cancel()

	ports, err := s.ports(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ports)
}
