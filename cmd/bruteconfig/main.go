// Package main is the entry point for the bruteconfig CLI
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/james-see/bruteconfig/pkg/api"
	"github.com/james-see/bruteconfig/pkg/config"
	"github.com/james-see/bruteconfig/pkg/mcptools"
	"github.com/james-see/bruteconfig/pkg/midiport"
	"github.com/james-see/bruteconfig/pkg/patch"
	"github.com/james-see/bruteconfig/pkg/settings"
	"github.com/james-see/bruteconfig/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configFile string
	outPort    string
	inPort     string
	logLevel   string
	offline    bool
	outputFile string
	inputFile  string
	serverPort int
	writeCfg   bool
)

const portsTimeout = 5 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bruteconfig",
	Short: "Change Arturia MicroBrute settings over MIDI",
	Long: `bruteconfig edits the global settings of an Arturia MicroBrute: MIDI
channels, keyboard response, sequencer behaviour and module options.

Examples:
  bruteconfig ports
  bruteconfig list
  bruteconfig set note-priority=high receive-channel=all
  bruteconfig encode step-size=1/16 gate-length=long -o setup.syx
  bruteconfig decode F0 00 20 6B 05 01 00 0B 02 F7
  bruteconfig load setup.syx
  bruteconfig tui
  bruteconfig serve --port 8080`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input and output ports",
	Args:  cobra.NoArgs,
	RunE:  runPorts,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every setting and its allowed values",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var setCmd = &cobra.Command{
	Use:   "set <option=value>...",
	Short: "Send one or more settings to the device",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSet,
}

var encodeCmd = &cobra.Command{
	Use:   "encode <option=value>...",
	Short: "Print or save the MIDI bytes for settings without sending them",
	Long: `Prints one hex message per setting, or writes them to the file given
with -o. The file format follows the extension: .syx, .mid or .hex/.txt.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode [hex bytes]",
	Short: "Identify the settings carried by MIDI bytes or a patch file",
	RunE:  runDecode,
}

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Send every setting stored in a .syx, .mid or hex file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP tools on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default ~/.config/bruteconfig/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outPort, "out", "", "MIDI output port name fragment or number")
	rootCmd.PersistentFlags().StringVar(&inPort, "in", "", "MIDI input port to log device messages from")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&offline, "offline", "n", false, "Do not open MIDI ports; print bytes instead of sending")

	encodeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (.syx, .mid, .hex)")
	decodeCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Patch file to decode")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Server port (default from config, 8080)")
	configCmd.Flags().BoolVarP(&writeCfg, "write", "w", false, "Write the effective configuration to the config file")

	rootCmd.AddCommand(portsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// parseAssignments resolves option=value arguments against the registry.
func parseAssignments(args []string) ([]settings.Command, error) {
	reg := settings.InitialRegistry()
	cmds := make([]settings.Command, 0, len(args))
	for _, arg := range args {
		option, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected option=value, got %q", arg)
		}
		c, err := reg.Find(option, value)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func runPorts(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), portsTimeout)
	defer cancel()
	defer midiport.CloseDriver()

	ports, err := midiport.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DIR\tNUM\tNAME")
	for _, p := range ports.Outputs {
		fmt.Fprintf(w, "out\t%d\t%s\n", p.Number, p.Name)
	}
	for _, p := range ports.Inputs {
		fmt.Fprintf(w, "in\t%d\t%s\n", p.Number, p.Name)
	}
	return w.Flush()
}

func runList(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, g := range settings.InitialRegistry() {
		fmt.Fprintf(w, "%s\n", strings.ToUpper(g.Name))
		for _, s := range g.Settings {
			values := make([]string, len(s.Allowed))
			for i, c := range s.Allowed {
				values[i] = settings.OptionValue(c)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", settings.Key(s.Name()), s.Name(), strings.Join(values, ", "))
		}
	}
	return w.Flush()
}

func runSet(cmd *cobra.Command, args []string) error {
	cmds, err := parseAssignments(args)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context(), sessionOptions{requireOutput: !offline})
	if err != nil {
		return err
	}
	defer sess.Close()

	for _, c := range cmds {
		data, err := sess.editor.Apply(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\t%s\n", settings.OptionName(c), settings.OptionValue(c), settings.FormatHex(data))
	}
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	cmds, err := parseAssignments(args)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := patch.WriteFile(outputFile, cmds); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d settings to %s\n", len(cmds), outputFile)
		return nil
	}

	data, err := patch.Encode(cmds, patch.FormatHex)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runDecode(cmd *cobra.Command, args []string) error {
	var (
		cmds []settings.Command
		err  error
	)
	switch {
	case inputFile != "":
		cmds, err = patch.ReadFile(inputFile)
	case len(args) > 0:
		var data []byte
		if data, err = settings.ParseHex(strings.Join(args, " ")); err == nil {
			cmds, err = patch.Decode(data, patch.FormatSyx)
		}
	default:
		return errors.New("give hex bytes or --file")
	}
	if err != nil {
		return err
	}

	for _, c := range cmds {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", settings.OptionName(c), settings.OptionValue(c))
	}
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	cmds, err := patch.ReadFile(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context(), sessionOptions{requireOutput: !offline})
	if err != nil {
		return err
	}
	defer sess.Close()

	n, err := sess.editor.Load(cmds)
	if err != nil {
		return fmt.Errorf("sent %d of %d settings: %w", n, len(cmds), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %d settings from %s\n", n, args[0])
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context(), sessionOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer sess.Close()

	return tui.Run(sess.editor)
}

func runServe(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context(), sessionOptions{})
	if err != nil {
		return err
	}
	defer sess.Close()

	port := sess.cfg.Server.Port
	if serverPort != 0 {
		port = serverPort
	}

	var ports api.PortLister
	if !offline {
		ports = midiport.List
	}

	fmt.Printf("Starting API server on port %d...\n", port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", port)
	return api.StartServer(port, api.New(sess.editor, ports, sess.log))
}

func runMCP(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context(), sessionOptions{})
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.log.Info("starting MCP server")
	return mcptools.Serve(mcptools.NewServer(sess.editor, sess.log))
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if writeCfg {
		path := configFile
		if path == "" {
			if path, err = config.Path(); err != nil {
				return err
			}
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
