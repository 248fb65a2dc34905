package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogmates/blogmates-tui/app"
	"github.com/blogmates/blogmates-tui/infra/blogmates"
	"github.com/blogmates/blogmates-tui/infra/config"
	"github.com/blogmates/blogmates-tui/infra/editor"
	"github.com/blogmates/blogmates-tui/infra/logging"
	"github.com/blogmates/blogmates-tui/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: blogmates [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("blogmates %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Build infrastructure. Logs go to a file; stdout belongs to the TUI.
	log := logging.New(cfg.LogPath, cfg.LogLevel)

	client, err := blogmates.NewClient(cfg.BaseURL, cfg.RequestTimeout, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "client: %v\n", err)
		os.Exit(1)
	}

	// 3. Build services (concrete types satisfy app.* interfaces).
	authSvc := blogmates.NewAuthService(client)
	profileSvc := blogmates.NewProfileService(client)
	followSvc := blogmates.NewFollowService(client)
	blogSvc := blogmates.NewBlogService(client)
	searchSvc := blogmates.NewSearchService(client)
	editorSvc := editor.NewEnvEditor()

	session := app.NewSession()
	cache := app.NewProfileCache()

	uiState, _ := config.LoadUIState(cfg.UIStatePath)
	pageSize := cfg.PageSize
	if uiState.PageSize > 0 {
		pageSize = uiState.PageSize
	}

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Auth:        authSvc,
		Profiles:    profileSvc,
		Follow:      followSvc,
		Blog:        blogSvc,
		Search:      searchSvc,
		Session:     session,
		Cache:       cache,
		Editor:      editorSvc,
		Log:         log,
		TokenExpiry: blogmates.TokenExpiry,
		PageSize:    pageSize,
		StatePath:   cfg.UIStatePath,
		LastView:    uiState.LastView,
	})

	// 5. Run. The client's auth-expiry hook feeds back into the program
	// so any view can be interrupted by a dead session.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	client.OnAuthExpired(func() {
		p.Send(tui.AuthExpiredMsg{})
	})
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "blogmates: %v\n", err)
		os.Exit(1)
	}
}
