package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ethankook/UCSD-CSE-118-Team-6/pkg/headset"
)

var (
	verbose     bool
	endpoint    string
	apiBaseURL  string
	lang        string
	displayName string
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "headsetctl",
		Short: "Translation channel client CLI",
		Long:  "A command-line client for the real-time translation channel server",
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "WebSocket endpoint URL")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "HTTP API base URL")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "Language preference (e.g. en, es, zh-hans)")
	rootCmd.PersistentFlags().StringVar(&displayName, "name", "", "Display name shown to other participants")

	rootCmd.AddCommand(connectCmd())
	rootCmd.AddCommand(subtitleCmd())
	rootCmd.AddCommand(subtitleOneCmd())
	rootCmd.AddCommand(langGroupsCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		headset.GetGlobalLogger().WithError(err).Fatal("CLI execution failed")
	}
}

func buildConfig() *headset.HeadsetConfig {
	config := headset.NewHeadsetConfig()
	if endpoint != "" {
		config.WsEndpoint = endpoint
	}
	if apiBaseURL != "" {
		config.APIBaseURL = apiBaseURL
	}
	if lang != "" {
		config.Lang = strings.ToLower(lang)
	}
	if displayName != "" {
		config.DisplayName = displayName
	}
	if verbose {
		config.DebugLevel = "DEBUG"
		config.DebugWebsocket = true
		headset.SetGlobalLogger(headset.NewHeadsetLogger(&headset.LogConfig{
			Level:  headset.DebugLevel,
			Pretty: true,
			Output: os.Stdout,
			Fields: map[string]interface{}{},
		}))
	}
	return config
}

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Open an interactive channel session",
		Long: "Connect to the channel server and join the chat. Type a line to broadcast it.\n" +
			"Commands: /lang <code> changes your language, /pi <text> forwards a transcript\n" +
			"to the Pi, /quit leaves.",
		Run: func(cmd *cobra.Command, args []string) {
			config := buildConfig()
			logger := headset.GetGlobalLogger()

			display := headset.CreateConsoleDisplay(os.Stdout)
			client := headset.NewHeadsetClient(config, display, logger)
			client.AddConnectionHandler(headset.CreateConnectionStatusHandler(logger, nil))

			if err := client.Connect(); err != nil {
				logger.WithError(err).Fatal("Connect failed")
			}
			defer client.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go client.Run(ctx)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigCh
				cancel()
			}()

			fmt.Println("Connected. Type to chat, /quit to leave.")
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				switch {
				case line == "":
					continue
				case line == "/quit":
					cancel()
					return
				case strings.HasPrefix(line, "/lang "):
					code := strings.TrimSpace(strings.TrimPrefix(line, "/lang "))
					client.SetLanguage(code, "")
				case strings.HasPrefix(line, "/pi "):
					text := strings.TrimSpace(strings.TrimPrefix(line, "/pi "))
					client.SendTranscript(text)
				default:
					client.SendChat(line)
				}
			}
		},
	}
}

func subtitleCmd() *cobra.Command {
	var sourceLang string
	cmd := &cobra.Command{
		Use:   "subtitle <text>",
		Short: "Broadcast a subtitle line to all clients",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config := buildConfig()
			api := headset.NewAPIClient(config.APIBaseURL)

			text := strings.Join(args, " ")
			result := api.SubtitleBroadcast(text, sourceLang, "")
			if !result.Success {
				headset.GetGlobalLogger().LogError(result.Error)
				os.Exit(1)
			}
			fmt.Printf("Broadcast ok: %q\n", result.Data.Original)
		},
	}
	cmd.Flags().StringVar(&sourceLang, "source-lang", "en", "Language the subtitle text is in")
	return cmd
}

func subtitleOneCmd() *cobra.Command {
	var sourceLang, targetLang, from, to string
	cmd := &cobra.Command{
		Use:   "subtitle-one <text>",
		Short: "Send a subtitle line to a single client",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config := buildConfig()
			api := headset.NewAPIClient(config.APIBaseURL)

			text := strings.Join(args, " ")
			result := api.SubtitleOne(text, sourceLang, targetLang, from, to)
			if !result.Success {
				headset.GetGlobalLogger().LogError(result.Error)
				os.Exit(1)
			}
			fmt.Printf("Sent to %s: %q -> %q\n", to, result.Data.Original, result.Data.Translated)
		},
	}
	cmd.Flags().StringVar(&sourceLang, "source-lang", "en", "Language of the subtitle text")
	cmd.Flags().StringVar(&targetLang, "target-lang", "en", "Language to translate to")
	cmd.Flags().StringVar(&from, "from", "", "Sender client id")
	cmd.Flags().StringVar(&to, "to", "", "Target client id (required)")
	cmd.MarkFlagRequired("to")
	return cmd
}

func langGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang-groups",
		Short: "Show the server's language group census",
		Run: func(cmd *cobra.Command, args []string) {
			config := buildConfig()
			api := headset.NewAPIClient(config.APIBaseURL)

			result := api.GetLangGroups()
			if !result.Success {
				headset.GetGlobalLogger().LogError(result.Error)
				os.Exit(1)
			}
			fmt.Printf("Active clients: %d\n", result.Data.ActiveClients)
			for lang, count := range result.Data.Groups {
				fmt.Printf("  %-10s %d\n", lang, count)
			}
			if result.Data.PiClientID != nil {
				fmt.Printf("Pi client: %s\n", *result.Data.PiClientID)
			}
		},
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print and validate the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			config := buildConfig()
			config.PrintConfig()

			issues := config.Validate()
			if len(issues) == 0 {
				fmt.Println("\nConfiguration OK")
				return
			}
			fmt.Println("\nIssues:")
			for _, issue := range issues {
				fmt.Printf("  - %s\n", issue)
			}
			os.Exit(1)
		},
	}
}
