// Package main is the entry point for the calc command.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pocketcalc/pocketcalc/pkg/api"
	"github.com/pocketcalc/pocketcalc/pkg/config"
	"github.com/pocketcalc/pocketcalc/pkg/expr"
	"github.com/pocketcalc/pocketcalc/pkg/history"
	"github.com/pocketcalc/pocketcalc/pkg/rewrite"
	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "calc [expression]",
	Short: "Scientific calculator expression engine",
	Long: "Evaluates arithmetic and scientific expressions. With arguments the\n" +
		"expression is evaluated once; without arguments an interactive\n" +
		"session starts.",
	RunE: run,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the calculator HTTP API",
	RunE:  serve,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("calc version {{.Version}}\n")

	rootCmd.PersistentFlags().String("config", "", "Config file path (env CALC_CONFIG)")
	rootCmd.PersistentFlags().Bool("radians", false, "Evaluate trig functions in radians instead of degrees")
	rootCmd.PersistentFlags().String("history-file", "", "History file path (env CALC_HISTORY_FILE)")
	rootCmd.PersistentFlags().String("rules-file", "", "Extra natural-language rule file (env CALC_RULES_FILE)")
	rootCmd.Flags().BoolP("natural", "n", false, "Treat input as a natural-language phrase")

	serveCmd.Flags().Int("port", 0, "HTTP server port (default 8720, env PORT)")
	serveCmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env HOST)")

	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session holds everything resolved from config, env, and flags.
type session struct {
	cfg     *config.Config
	log     *history.Log
	rules   *rewrite.Ruleset
	degrees bool
	logPath string
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfgPath := os.Getenv("CALC_CONFIG")
	if v, _ := cmd.Flags().GetString("config"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	degrees := cfg.DegreesOrDefault()
	if v, _ := cmd.Flags().GetBool("radians"); v {
		degrees = false
	}

	logPath := envOrDefault("CALC_HISTORY_FILE", cfg.HistoryFile)
	if v, _ := cmd.Flags().GetString("history-file"); v != "" {
		logPath = v
	}

	rulesPath := envOrDefault("CALC_RULES_FILE", cfg.RulesFile)
	if v, _ := cmd.Flags().GetString("rules-file"); v != "" {
		rulesPath = v
	}

	rules := rewrite.Default()
	if rulesPath != "" {
		extra, err := rewrite.Load(rulesPath)
		if err != nil {
			return nil, err
		}
		rules.Extend(extra)
	}

	s := &session{
		cfg:     cfg,
		log:     history.New(),
		rules:   rules,
		degrees: degrees,
		logPath: logPath,
	}
	if logPath != "" {
		if err := s.log.Load(logPath); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	return s, nil
}

// eval runs one expression through the pipeline and records the result.
func (s *session) eval(input string, natural bool) (string, error) {
	expression := input
	if natural {
		expression = s.rules.Apply(input)
	}
	result, err := expr.Evaluate(expression, expr.Options{Degrees: s.degrees})
	if err != nil {
		return "", err
	}
	rendered := strconv.FormatFloat(result, 'g', -1, 64)
	s.log.Add(expression, rendered)
	return rendered, nil
}

func (s *session) flush() {
	if s.logPath == "" {
		return
	}
	if err := s.log.Save(s.logPath); err != nil {
		log.Printf("Warning: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.flush()

	natural, _ := cmd.Flags().GetBool("natural")

	if len(args) > 0 {
		result, err := s.eval(strings.Join(args, " "), natural)
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	}

	return repl(s)
}

// repl runs the interactive loop. Lines starting with ':' are session
// commands; everything else is evaluated as an expression, falling back to
// the natural-language rewriter when direct evaluation fails.
func repl(s *session) error {
	fmt.Printf("calc %s (mode: %s, :help for commands)\n", version, modeName(s.degrees))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if quit := replCommand(s, line); quit {
				return nil
			}
			continue
		}

		result, err := s.eval(line, false)
		if err != nil {
			// Retry as a phrase before reporting the original failure.
			if retried, retryErr := s.eval(line, true); retryErr == nil {
				fmt.Println(retried)
				continue
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(result)
	}
}

func replCommand(s *session, line string) (quit bool) {
	switch line {
	case ":deg", ":degrees":
		s.degrees = true
		fmt.Println("mode: degrees")
	case ":rad", ":radians":
		s.degrees = false
		fmt.Println("mode: radians")
	case ":mode":
		fmt.Println("mode: " + modeName(s.degrees))
	case ":history":
		for _, e := range s.log.Entries() {
			fmt.Printf("%s = %s\n", e.Expression, e.Result)
		}
	case ":clear":
		s.log.Clear()
	case ":help":
		fmt.Println("commands: :deg :rad :mode :history :clear :quit")
	case ":quit", ":q", ":exit":
		return true
	default:
		fmt.Fprintf(os.Stderr, "unknown command %s\n", line)
	}
	return false
}

func modeName(degrees bool) string {
	if degrees {
		return "degrees"
	}
	return "radians"
}

func serve(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.flush()

	port := envOrDefault("PORT", "8720")
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		port = fmt.Sprintf("%d", v)
	} else if s.cfg.ListenPort != 0 {
		port = fmt.Sprintf("%d", s.cfg.ListenPort)
	}

	host := envOrDefault("HOST", "0.0.0.0")
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		host = v
	} else if s.cfg.ListenHost != "" {
		host = s.cfg.ListenHost
	}

	addr := fmt.Sprintf("%s:%s", host, port)
	server := api.New(s.log, s.rules, s.degrees)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("calc API listening on %s", addr)
	return server.Listen(addr)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
