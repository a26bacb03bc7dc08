// Package mcptools exposes the settings editor to MCP clients over stdio.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/james-see/bruteconfig/pkg/editor"
	"github.com/james-see/bruteconfig/pkg/settings"
)

const (
	serverName    = "MicroBrute MCP"
	serverVersion = "1.0.0"
)

type tools struct {
	editor *editor.Editor
	log    logrus.FieldLogger
}

// NewServer registers the settings tools on a new MCP server.
func NewServer(ed *editor.Editor, log logrus.FieldLogger) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)
	t := &tools{editor: ed, log: log}

	s.AddTool(mcp.NewTool("bruteconfig_describe-sysex",
		mcp.WithDescription("Describes the MIDI messages that change MicroBrute settings: the SysEx frame layout and every parameter and value byte."),
	), t.describe)

	s.AddTool(mcp.NewTool("bruteconfig_list-settings",
		mcp.WithDescription("Lists every MicroBrute setting with its group, allowed values and the value last sent."),
	), t.list)

	s.AddTool(mcp.NewTool("bruteconfig_set-setting",
		mcp.WithDescription("Sends a new value for one setting to the MicroBrute."),
		mcp.WithString("option", mcp.Required(), mcp.Description("The setting name or key (e.g., Note Priority, note-priority, bend-range).")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The value label as listed by bruteconfig_list-settings (e.g., High, 1/16, All, 12).")),
	), t.set)

	s.AddTool(mcp.NewTool("bruteconfig_encode-setting",
		mcp.WithDescription("Returns the MIDI bytes for one setting value without sending them."),
		mcp.WithString("option", mcp.Required(), mcp.Description("The setting name or key.")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The value label.")),
	), t.encode)

	s.AddTool(mcp.NewTool("bruteconfig_decode-message",
		mcp.WithDescription("Identifies the setting carried by a MIDI message given as hex bytes."),
		mcp.WithString("data", mcp.Required(), mcp.Description("Hex bytes, e.g. F0 00 20 6B 05 01 00 0B 02 F7.")),
	), t.decode)

	return s
}

// Serve runs s on stdin and stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

type settingInfo struct {
	Group    string   `json:"group"`
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Selected string   `json:"selected,omitempty"`
	Values   []string `json:"values"`
}

type commandInfo struct {
	Option string `json:"option"`
	Value  string `json:"value"`
	Bytes  string `json:"bytes"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (t *tools) list(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.log.Debug("[mcp] list settings")

	var out []settingInfo
	for _, g := range t.editor.Registry() {
		for _, s := range g.Settings {
			info := settingInfo{Group: g.Name, Key: settings.Key(s.Name()), Name: s.Name()}
			if s.Selected != nil {
				info.Selected = settings.OptionValue(s.Selected)
			}
			for _, c := range s.Allowed {
				info.Values = append(info.Values, settings.OptionValue(c))
			}
			out = append(out, info)
		}
	}
	return jsonResult(out)
}

func (t *tools) set(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	option, err := request.RequireString("option")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.log.WithFields(logrus.Fields{"option": option, "value": value}).Info("[mcp] set setting")

	c, data, err := t.editor.Set(option, value)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(commandInfo{Option: c.Name(), Value: c.Value(), Bytes: settings.FormatHex(data)})
}

func (t *tools) encode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	option, err := request.RequireString("option")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c, err := t.editor.Registry().Find(option, value)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(commandInfo{Option: c.Name(), Value: c.Value(), Bytes: settings.FormatHex(settings.CommandData(c))})
}

func (t *tools) decode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hex, err := request.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := settings.ParseHex(hex)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := settings.Decode(data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(commandInfo{Option: c.Name(), Value: c.Value(), Bytes: settings.FormatHex(data)})
}

func (t *tools) describe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(Describe(settings.InitialRegistry())), nil
}

// Describe renders the message reference for every setting in r.
func Describe(r settings.Registry) string {
	var b strings.Builder
	b.WriteString("Arturia MicroBrute settings messages\n\n")
	fmt.Fprintf(&b, "Set frame: F0 %s %02X %02X <counter> <param> <value> F7\n",
		settings.FormatHex(settings.ArturiaID), settings.DeviceFamily, settings.DeviceSubID)
	fmt.Fprintf(&b, "Local Control: Control Change %d (0x%02X) on channel 1, 127 = On, 0 = Off\n",
		settings.ControllerLocalControl, settings.ControllerLocalControl)

	for _, g := range r {
		fmt.Fprintf(&b, "\n%s\n", g.Name)
		for _, s := range g.Settings {
			fmt.Fprintf(&b, "  %s", s.Name())
			if sc, ok := s.Allowed[0].(settings.SysexCommand); ok {
				fmt.Fprintf(&b, " (param 0x%02X)", byte(sc.Param()))
			}
			b.WriteString("\n")
			for _, c := range s.Allowed {
				fmt.Fprintf(&b, "    %-22s %s\n", c.Value(), settings.FormatHex(settings.CommandData(c)))
			}
		}
	}
	return b.String()
}
