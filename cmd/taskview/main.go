package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/taskview/internal/config"
	"github.com/stellarlinkco/taskview/internal/stream"
	"github.com/stellarlinkco/taskview/internal/viewer"
)

// RenderOptions for running render with custom IO (allows testing)
type RenderOptions struct {
	Stdin  io.Reader
	Stdout io.Writer
}

var rootCmd = &cobra.Command{
	Use:   "taskview",
	Short: "taskview - render agent tool activity for humans",
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a JSONL tool event stream to stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Deliver the transcript to configured channels (console, telegram, webui)",
	RunE:  runServe,
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize config",
	RunE:  runOnboard,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show taskview status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(renderCmd, serveCmd, onboardCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	return renderWithOptions(path, RenderOptions{})
}

// renderWithOptions renders a stream with injectable IO for testing
func renderWithOptions(path string, opts RenderOptions) error {
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	input := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open event stream: %w", err)
		}
		defer f.Close()
		input = f
	}

	// render always goes to the console, whatever the config enables
	cfg := config.DefaultConfig()
	cfg.Channels = config.ChannelsConfig{Console: config.ConsoleConfig{Enabled: true}}

	v, err := viewer.NewWithOptions(cfg, viewer.Options{ConsoleOut: stdout})
	if err != nil {
		return err
	}
	return v.Consume(stream.NewReader(input))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	v, err := viewer.New(cfg)
	if err != nil {
		return fmt.Errorf("create viewer: %w", err)
	}
	return v.Run(context.Background(), os.Stdin)
}

func runOnboard(cmd *cobra.Command, args []string) error {
	cfgDir := config.ConfigDir()
	cfgPath := config.ConfigPath()

	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data, _ := json.MarshalIndent(cfg, "", "  ")
		if err := os.WriteFile(cfgPath, data, 0644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("Created config: %s\n", cfgPath)
	} else {
		fmt.Printf("Config already exists: %s\n", cfgPath)
	}

	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Edit %s to enable channels\n", cfgPath)
	fmt.Println("  2. Pipe an agent event stream: agent ... | taskview render")

	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Config: error (%v)\n", err)
		return nil
	}

	fmt.Printf("Config: %s\n", config.ConfigPath())
	fmt.Printf("Console: enabled=%v\n", cfg.Channels.Console.Enabled)
	fmt.Printf("Telegram: enabled=%v\n", cfg.Channels.Telegram.Enabled)
	fmt.Printf("WebUI: enabled=%v\n", cfg.Channels.WebUI.Enabled)
	if cfg.Digest.Schedule != "" {
		fmt.Printf("Digest: %s\n", cfg.Digest.Schedule)
	} else {
		fmt.Println("Digest: disabled")
	}

	return nil
}
