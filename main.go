// Package main provides the entry point for the docvoice CLI application.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/docvoice/docvoice/speech"
	"github.com/docvoice/docvoice/speech/espeak"
	"github.com/docvoice/docvoice/speech/mock"
	"github.com/docvoice/docvoice/ui"
	"github.com/docvoice/docvoice/voice"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	serverURL  string
	style      string
	width      uint
	plain      bool
	language   string
	engineName string

	rootCmd = &cobra.Command{
		Use:   "docvoice [DOCUMENT]",
		Short: "Translate documents and read them aloud, from the terminal",
		Long: paragraph(
			fmt.Sprintf("\nFetch a document from a docvoice server, %s, and read it aloud.", keyword("translate it")),
		),
		Example:          paragraph("docvoice pdfs/42\ndocvoice http://localhost:8000/images/7/ --lang hi\ncat notes.md | docvoice"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	serverURL = viper.GetString("server")
	width = viper.GetUint("width")
	style = viper.GetString("style")
	engineName = viper.GetString("engine")

	if language != "" && !voice.IsSupported(language) {
		return fmt.Errorf("unsupported language %q (supported: %s)", language, strings.Join(voice.Supported(), ", "))
	}
	if engineName != "mock" && engineName != "espeak" {
		return fmt.Errorf("unknown speech engine %q (use espeak or mock)", engineName)
	}

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	if !isTerminal {
		plain = true
		if !cmd.Flags().Changed("style") {
			style = "notty"
		}
	}

	if !cmd.Flags().Changed("width") {
		if isTerminal && width == 0 {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err == nil {
				width = uint(w) //nolint:gosec
			}
			if width > 120 {
				width = 120
			}
		}
		if width == 0 {
			width = 80
		}
	}
	return nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(_ *cobra.Command, args []string) error {
	// A piped document is read aloud locally; without a server-side
	// document there is nothing to translate.
	if yes, err := stdinIsPipe(); err != nil {
		return err
	} else if yes || (len(args) == 1 && args[0] == "-") {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("unable to read stdin: %w", err)
		}
		return run("", "", string(b))
	}

	if len(args) == 0 {
		return errors.New("missing document: pass a document path such as pdfs/42, or pipe markdown on stdin")
	}

	base, pagePath, err := resolveTarget(args[0])
	if err != nil {
		return err
	}

	content, err := fetchDocument(base, pagePath)
	if err != nil {
		return err
	}
	return run(base, pagePath, content)
}

// resolveTarget splits a document argument into the server base URL and the
// document page path. Bare paths like "pdfs/42" resolve against the
// configured server.
func resolveTarget(arg string) (base, pagePath string, err error) {
	if strings.Contains(arg, "://") {
		u, err := url.ParseRequestURI(arg)
		if err != nil {
			return "", "", fmt.Errorf("unable to parse document URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return "", "", fmt.Errorf("%s is not a supported protocol", u.Scheme)
		}
		base = u.Scheme + "://" + u.Host
		pagePath = u.Path
	} else {
		base = strings.TrimRight(serverURL, "/")
		pagePath = arg
	}

	if !strings.HasPrefix(pagePath, "/") {
		pagePath = "/" + pagePath
	}
	if !strings.HasSuffix(pagePath, "/") {
		pagePath += "/"
	}
	return base, pagePath, nil
}

func fetchDocument(base, pagePath string) (string, error) {
	resp, err := http.Get(base + pagePath) //nolint:noctx
	if err != nil {
		return "", fmt.Errorf("unable to fetch document: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("document fetch failed: HTTP status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("unable to read document: %w", err)
	}
	return string(b), nil
}

func run(base, pagePath, content string) error {
	if plain {
		return renderPlain(content, os.Stdout)
	}
	return runTUI(base, pagePath, content)
}

func renderPlain(content string, w io.Writer) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithColorProfile(lipgloss.ColorProfile()),
		glamour.WithStylePath(style),
		glamour.WithWordWrap(int(width)), //nolint:gosec
	)
	if err != nil {
		return fmt.Errorf("unable to create renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return fmt.Errorf("unable to render document: %w", err)
	}
	if _, err := fmt.Fprint(w, out); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

func runTUI(base, pagePath, content string) error {
	// Read environment to get debugging stuff.
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	cfg.BaseURL = base
	cfg.PagePath = pagePath
	cfg.Language = language
	cfg.GlamourMaxWidth = width
	if cfg.GlamourStyle == "" {
		cfg.GlamourStyle = style
	}
	if cfg.CSRFToken == "" {
		cfg.CSRFToken = viper.GetString("csrf_token")
	}
	cfg.SpeechRate = viper.GetFloat64("speech.rate")
	cfg.SpeechPitch = viper.GetFloat64("speech.pitch")
	cfg.SpeechVolume = viper.GetFloat64("speech.volume")

	m, err := ui.NewModel(cfg, content, "", newEngine(), func(target string) (string, error) {
		if strings.Contains(target, "://") {
			u, err := url.Parse(target)
			if err != nil {
				return "", fmt.Errorf("unable to parse reload target: %w", err)
			}
			return fetchDocument(u.Scheme+"://"+u.Host, u.RequestURI())
		}
		return fetchDocument(base, target)
	})
	if err != nil {
		return fmt.Errorf("unable to build program: %w", err)
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// newEngine picks the speech backend. The mock engine keeps the rest of the
// program usable on machines without espeak-ng installed.
func newEngine() speech.Engine {
	if engineName == "mock" {
		return mock.New(voice.Voice{ID: "mock-en", Name: "Mock English", Locale: voice.DefaultLocale})
	}
	e := espeak.New(viper.GetString("speech.binary"))
	if !e.Available() {
		log.Warn("espeak-ng not found, falling back to the mock engine")
		return mock.New(voice.Voice{ID: "mock-en", Name: "Mock English", Locale: voice.DefaultLocale})
	}
	return e
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)
	if lf := os.Getenv("DOCVOICE_LOG"); lf != "" {
		f, err := os.OpenFile(lf, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("error setting up log: %w", err)
		}
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
		return f.Close, nil
	}
	return func() error { return nil }, nil
}

func paragraph(s string) string {
	return lipgloss.NewStyle().Width(78).Padding(0, 0, 0, 2).Render(s)
}

func keyword(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Render(s)
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&serverURL, "server", "u", "http://localhost:8000", "docvoice server base URL")
	rootCmd.Flags().StringVarP(&style, "style", "s", styles.AutoStyle, "style name or JSON path")
	rootCmd.Flags().UintVarP(&width, "width", "w", 0, "word-wrap at width (set to 0 to disable)")
	rootCmd.Flags().BoolVarP(&plain, "plain", "p", false, "print the rendered document and exit")
	rootCmd.Flags().StringVarP(&language, "lang", "l", "", "translate the document before opening it")
	rootCmd.Flags().StringVar(&engineName, "engine", "espeak", "speech engine (espeak or mock)")

	_ = viper.BindPFlag("server", rootCmd.Flags().Lookup("server"))
	_ = viper.BindPFlag("style", rootCmd.Flags().Lookup("style"))
	_ = viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("engine", rootCmd.Flags().Lookup("engine"))

	viper.SetDefault("server", "http://localhost:8000")
	viper.SetDefault("style", styles.AutoStyle)
	viper.SetDefault("width", 0)
	viper.SetDefault("engine", "espeak")
	viper.SetDefault("csrf_token", "")
	viper.SetDefault("speech.binary", "")
	viper.SetDefault("speech.rate", 1.0)
	viper.SetDefault("speech.pitch", 1.0)
	viper.SetDefault("speech.volume", 1.0)

	rootCmd.AddCommand(configCmd, languagesCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "docvoice")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "docvoice")}, dirs...)
	}

	if c := os.Getenv("DOCVOICE_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("docvoice")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("docvoice")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "docvoice.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
