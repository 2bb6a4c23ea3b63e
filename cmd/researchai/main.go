package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"researchai/internal/apiclient"
	"researchai/internal/config"
	"researchai/internal/history"
	"researchai/internal/pages"
	"researchai/internal/session"
	"researchai/internal/util"
)

const usage = `Usage: researchai <command> [flags]

Commands:
  login           -email -password
  signup          -name -email -password -confirm
  upload          <file>
  summarize       <file> [-download dir] [-chat]
  ask             <question>
  chat            [file]
  history
  show            <doc_id> [-download dir]
  settings        [-show] [-dark-mode bool] [-notifications bool]
  passwd          -current -new
  logout
  delete-account  -yes
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(os.Getenv("RESEARCHAI_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	util.InitLogger(cfg.LogLevel)

	api := apiclient.NewClient(cfg.APIBaseURL)
	sessions, err := buildSessionStore(cfg)
	if err != nil {
		log.Fatalf("failed to init session store: %v", err)
	}

	if err := run(cfg, api, sessions, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, history.ErrNotAuthenticated) || apiclient.IsKind(err, apiclient.KindAuth) {
			fmt.Fprintln(os.Stderr, "Run: researchai login -email <email> -password <password>")
		}
		os.Exit(1)
	}
}

func buildSessionStore(cfg config.FileConfig) (session.Store, error) {
	ttl, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	switch {
	case cfg.SessionSecret != "":
		return session.NewSignedStore(cfg.SessionPath, cfg.SessionSecret, ttl)
	case cfg.RedisAddr != "":
		return session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, ttl), nil
	default:
		return session.NewFileStore(cfg.SessionPath)
	}
}

func run(cfg config.FileConfig, api *apiclient.Client, sessions session.Store, command string, args []string) error {
	ctx := context.Background()
	out := os.Stdout

	switch command {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(args)
		return pages.NewLogin(api, sessions, out).Login(ctx, *email, *password)

	case "signup":
		fs := flag.NewFlagSet("signup", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		confirm := fs.String("confirm", "", "password confirmation")
		fs.Parse(args)
		return pages.NewSignup(api, sessions, out).Signup(ctx, *name, *email, *password, *confirm)

	case "upload":
		if len(args) < 1 {
			return errors.New("usage: researchai upload <file>")
		}
		home, err := newHome(cfg, api, sessions)
		if err != nil {
			return err
		}
		defer home.Close()
		if err := home.Upload(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Document ID: %s\n", home.Doc().DocID())
		return nil

	case "summarize":
		fs := flag.NewFlagSet("summarize", flag.ExitOnError)
		download := fs.String("download", "", "directory to save the summary artifact")
		chat := fs.Bool("chat", false, "open an interactive chat after summarizing")
		fs.Parse(args)
		if fs.NArg() < 1 {
			return errors.New("usage: researchai summarize <file>")
		}
		home, err := newHome(cfg, api, sessions)
		if err != nil {
			return err
		}
		defer home.Close()
		if err := home.Upload(fs.Arg(0)); err != nil {
			return err
		}
		if err := home.GenerateSummary(); err != nil {
			return err
		}
		if *download != "" {
			if _, err := home.DownloadSummary(*download); err != nil {
				return err
			}
		}
		if *chat {
			return chatLoop(home)
		}
		return nil

	case "ask":
		if len(args) < 1 {
			return errors.New("usage: researchai ask <question>")
		}
		answer, err := api.Ask(ctx, strings.Join(args, " "), "")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, answer)
		return nil

	case "chat":
		home, err := newHome(cfg, api, sessions)
		if err != nil {
			return err
		}
		defer home.Close()
		if len(args) > 0 {
			if err := home.Upload(args[0]); err != nil {
				return err
			}
			if err := home.GenerateSummary(); err != nil {
				return err
			}
		}
		return chatLoop(home)

	case "history":
		browser := history.NewBrowser(api)
		return pages.NewHistory(browser, sessions, out).List(ctx)

	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		download := fs.String("download", "", "directory to save the summary artifact")
		fs.Parse(args)
		if fs.NArg() < 1 {
			return errors.New("usage: researchai show <doc_id>")
		}
		page := pages.NewHistory(history.NewBrowser(api), sessions, out)
		if *download != "" {
			_, err := page.Download(ctx, fs.Arg(0), *download)
			return err
		}
		return page.Show(ctx, fs.Arg(0))

	case "settings":
		fs := flag.NewFlagSet("settings", flag.ExitOnError)
		show := fs.Bool("show", false, "print current settings")
		darkMode := fs.String("dark-mode", "", "enable or disable dark mode (true/false)")
		notifications := fs.String("notifications", "", "enable or disable notifications (true/false)")
		fs.Parse(args)
		page := pages.NewSettings(api, sessions, out)
		if *darkMode != "" {
			if err := page.SetDarkMode(*darkMode == "true"); err != nil {
				return err
			}
		}
		if *notifications != "" {
			if err := page.SetNotifications(*notifications == "true"); err != nil {
				return err
			}
		}
		if *show || (*darkMode == "" && *notifications == "") {
			return page.Show()
		}
		return nil

	case "passwd":
		fs := flag.NewFlagSet("passwd", flag.ExitOnError)
		current := fs.String("current", "", "current password")
		newPass := fs.String("new", "", "new password")
		fs.Parse(args)
		return pages.NewSettings(api, sessions, out).UpdatePassword(ctx, *current, *newPass)

	case "logout":
		return pages.NewSettings(api, sessions, out).Logout()

	case "delete-account":
		fs := flag.NewFlagSet("delete-account", flag.ExitOnError)
		yes := fs.Bool("yes", false, "confirm account deletion")
		fs.Parse(args)
		if !*yes {
			return errors.New("pass -yes to confirm account deletion")
		}
		return pages.NewSettings(api, sessions, out).DeleteAccount(ctx)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func newHome(cfg config.FileConfig, api *apiclient.Client, sessions session.Store) (*pages.HomePage, error) {
	maxBytes, err := config.ParseMaxUploadSize(cfg.MaxUploadSize)
	if err != nil {
		return nil, err
	}
	interval, err := config.ParsePollInterval(cfg.PollInterval)
	if err != nil {
		return nil, err
	}
	return pages.NewHome(pages.HomeConfig{
		API:               api,
		Sessions:          sessions,
		MaxUploadBytes:    maxBytes,
		AllowedExtensions: cfg.AllowedExtensions,
		PollInterval:      interval,
		Out:               os.Stdout,
	}), nil
}

func chatLoop(home *pages.HomePage) error {
	fmt.Println(`Ask about the paper ("exit" to quit):`)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		home.Ask(line)
	}
	return scanner.Err()
}
