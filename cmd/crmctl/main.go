package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/pkg/client"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[2:]
	var err error
	switch os.Args[1] {
	case "register":
		err = cmdRegister(ctx, args)
	case "login":
		err = cmdLogin(ctx, args)
	case "logout":
		err = cmdLogout(ctx, args)
	case "whoami":
		err = cmdWhoami(ctx, args)
	case "tenants":
		err = cmdTenants(ctx, args)
	case "use":
		err = cmdUse(ctx, args)
	case "accounts":
		err = withEnv("accounts", args, func(e *env, rest []string) error {
			return runResource(ctx, e, "accounts", e.session.Client.Accounts(), rest)
		})
	case "contacts":
		err = withEnv("contacts", args, func(e *env, rest []string) error {
			return runResource(ctx, e, "contacts", e.session.Client.Contacts(), rest)
		})
	case "deals":
		err = withEnv("deals", args, func(e *env, rest []string) error {
			return runResource(ctx, e, "deals", e.session.Client.Deals(), rest)
		})
	case "leads":
		err = cmdLeads(ctx, args)
	case "activities":
		err = withEnv("activities", args, func(e *env, rest []string) error {
			return runResource(ctx, e, "activities", e.session.Client.Activities(), rest)
		})
	case "notes":
		err = withEnv("notes", args, func(e *env, rest []string) error {
			return runResource(ctx, e, "notes", e.session.Client.Notes(), rest)
		})
	case "reminders":
		err = cmdReminders(ctx, args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: crmctl <command> [flags]

Commands:
  register --email E --password P [--name N]
  login --email E --password P
  logout
  whoami
  tenants [list | create --name N [--id ID] | current | members | add-member --email E [--role R]]
  use <tenant-id>
  accounts|contacts|deals|leads|activities|notes list [--q Q] [--limit N] [--offset N] [--filter k=v]
  accounts|contacts|deals|leads|activities|notes get <id>
  accounts|contacts|deals|leads|activities|notes create --data JSON
  accounts|contacts|deals|leads|activities|notes update <id> --data JSON
  accounts|contacts|deals|leads|activities|notes delete <id>
  leads convert <id>
  reminders sync

Global flags:
  --base-url URL   API base URL (default from EXPO_PUBLIC_API_BASE_URL, CRM_API_BASE_URL)
  --timeout D      per request timeout (default 15s)
  --state PATH     state file (default $CRM_STATE_FILE or ~/.config/crm/state.json)
  --verbose        debug logging`)
}

// env holds what every command needs once global flags are parsed.
type env struct {
	session *client.Session
	kv      client.KV
	logger  *zap.Logger
}

type globalFlags struct {
	baseURL string
	timeout time.Duration
	state   string
	verbose bool
}

func newFlagSet(name string) (*flag.FlagSet, *globalFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	g := &globalFlags{}
	fs.StringVar(&g.baseURL, "base-url", "", "API base URL")
	fs.DurationVar(&g.timeout, "timeout", envDuration("CRM_TIMEOUT", client.DefaultTimeout), "per request timeout")
	fs.StringVar(&g.state, "state", "", "state file path")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")
	return fs, g
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func (g *globalFlags) env() (*env, error) {
	level := zap.InfoLevel
	if g.verbose {
		level = zap.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	path := g.state
	if path == "" {
		path, err = client.DefaultStatePath()
		if err != nil {
			return nil, err
		}
	}
	kv := client.NewFileKV(path)

	opts := []client.Option{client.WithTimeout(g.timeout)}
	if g.baseURL != "" {
		opts = append(opts, client.WithBaseURL(g.baseURL))
	}
	c := client.New(opts...)
	logger.Debug("client configured", zap.String("base_url", c.BaseURL()), zap.String("state", path))

	return &env{session: client.NewSession(client.NewStore(kv), c), kv: kv, logger: logger}, nil
}

// withEnv parses only the global flags and hands the remaining args on.
func withEnv(name string, args []string, fn func(e *env, rest []string) error) error {
	fs, g := newFlagSet(name)
	// Subcommand flags are parsed by the subcommand itself.
	global, rest := splitGlobal(args)
	if err := fs.Parse(global); err != nil {
		return err
	}
	e, err := g.env()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()
	return fn(e, rest)
}

// splitGlobal separates the global flags from everything else.
func splitGlobal(args []string) (global, rest []string) {
	takesValue := map[string]bool{"--base-url": true, "--timeout": true, "--state": true}
	for i := 0; i < len(args); i++ {
		a := args[i]
		name, _, hasValue := strings.Cut(a, "=")
		switch {
		case name == "--verbose" || name == "-v":
			global = append(global, a)
		case takesValue[name]:
			global = append(global, a)
			if !hasValue && i+1 < len(args) {
				i++
				global = append(global, args[i])
			}
		default:
			rest = append(rest, a)
		}
	}
	return global, rest
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func requireLogin(e *env) error {
	if !e.session.LoggedIn() {
		return errors.New("not logged in, run: crmctl login --email E --password P")
	}
	return nil
}

func cmdRegister(ctx context.Context, args []string) error {
	fs, g := newFlagSet("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("CRM_PASSWORD"), "account password")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := g.env()
	if err != nil {
		return err
	}
	resp, err := e.session.Register(ctx, client.Credentials{Email: *email, Password: *password, Name: *name})
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (tenant: %s)\n", resp.User.Email, resp.TenantID)
	return nil
}

func cmdLogin(ctx context.Context, args []string) error {
	fs, g := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("CRM_PASSWORD"), "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := g.env()
	if err != nil {
		return err
	}
	resp, err := e.session.Login(ctx, client.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (tenant: %s, expires: %s)\n",
		resp.User.Email, resp.TenantID, time.UnixMilli(resp.ExpiresAt).Format(time.RFC3339))
	return nil
}

func cmdLogout(ctx context.Context, args []string) error {
	fs, g := newFlagSet("logout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := g.env()
	if err != nil {
		return err
	}
	if err := e.session.Logout(ctx); err != nil {
		e.logger.Warn("server logout failed, local state cleared", zap.Error(err))
	}
	fmt.Println("Logged out")
	return nil
}

func cmdWhoami(ctx context.Context, args []string) error {
	fs, g := newFlagSet("whoami")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := g.env()
	if err != nil {
		return err
	}
	if err := requireLogin(e); err != nil {
		return err
	}
	rc := e.session.RequestContext()
	user, err := e.session.Client.Auth().Me(ctx, rc)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> tenant: %s\n", user.Name, user.Email, rc.TenantID)
	return nil
}

func cmdUse(ctx context.Context, args []string) error {
	fs, g := newFlagSet("use")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: crmctl use <tenant-id>")
	}
	e, err := g.env()
	if err != nil {
		return err
	}
	tenant, err := e.session.SwitchTenant(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Printf("Active tenant set to %q (%s, role: %s)\n", tenant.ID, tenant.Name, tenant.Role)
	return nil
}

func cmdTenants(ctx context.Context, args []string) error {
	fs, g := newFlagSet("tenants")
	name := fs.String("name", "", "tenant name (create)")
	id := fs.String("id", "", "tenant id (create)")
	email := fs.String("email", "", "member email (add-member)")
	role := fs.String("role", "", "member role (add-member)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := g.env()
	if err != nil {
		return err
	}
	if err := requireLogin(e); err != nil {
		return err
	}
	rc := e.session.RequestContext()
	tenants := e.session.Client.Tenants()

	sub := "list"
	if fs.NArg() > 0 {
		sub = fs.Arg(0)
	}
	switch sub {
	case "list":
		list, err := tenants.List(ctx, rc)
		if err != nil {
			return err
		}
		fmt.Printf("%-38s %-24s %-8s %s\n", "ID", "NAME", "ROLE", "ACTIVE")
		for _, t := range list {
			marker := ""
			if t.ID == rc.TenantID {
				marker = " *"
			}
			fmt.Printf("%-38s %-24s %-8s %s\n", t.ID, t.Name, t.Role, marker)
		}
		return nil
	case "create":
		t, err := tenants.Create(ctx, rc, client.TenantInput{ID: *id, Name: *name})
		if err != nil {
			return err
		}
		return printJSON(t)
	case "current":
		t, err := tenants.Current(ctx, rc)
		if err != nil {
			return err
		}
		return printJSON(t)
	case "members":
		members, err := tenants.Members(ctx, rc)
		if err != nil {
			return err
		}
		return printJSON(members)
	case "add-member":
		m, err := tenants.AddMember(ctx, rc, client.MemberInput{Email: *email, Role: *role})
		if err != nil {
			return err
		}
		return printJSON(m)
	default:
		return fmt.Errorf("unknown tenants subcommand %q", sub)
	}
}

func cmdLeads(ctx context.Context, args []string) error {
	return withEnv("leads", args, func(e *env, rest []string) error {
		leads := e.session.Client.Leads()
		if len(rest) > 0 && rest[0] == "convert" {
			if len(rest) < 2 {
				return errors.New("usage: crmctl leads convert <id>")
			}
			if err := requireLogin(e); err != nil {
				return err
			}
			res, err := leads.Convert(ctx, e.session.RequestContext(), rest[1])
			if err != nil {
				return err
			}
			return printJSON(res)
		}
		return runResource(ctx, e, "leads", leads.Resource, rest)
	})
}

// runResource dispatches the CRUD subcommands for one collection.
func runResource[T any, C client.Identifiable[C], P any](ctx context.Context, e *env, name string, r *client.Resource[T, C, P], args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	q := fs.String("q", "", "search text")
	limit := fs.Int("limit", 0, "page size")
	offset := fs.Int("offset", 0, "page offset")
	filters := fs.StringToString("filter", nil, "filter key=value, repeatable")
	data := fs.String("data", "", "JSON body for create and update")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireLogin(e); err != nil {
		return err
	}
	rc := e.session.RequestContext()

	sub := "list"
	if fs.NArg() > 0 {
		sub = fs.Arg(0)
	}
	needID := func() (string, error) {
		if fs.NArg() < 2 {
			return "", fmt.Errorf("usage: crmctl %s %s <id>", name, sub)
		}
		return fs.Arg(1), nil
	}

	switch sub {
	case "list":
		items, err := r.List(ctx, rc, client.ListOptions{Query: *q, Limit: *limit, Offset: *offset, Filters: *filters})
		if err != nil {
			return err
		}
		return printJSON(items)
	case "get":
		id, err := needID()
		if err != nil {
			return err
		}
		item, err := r.Get(ctx, rc, id)
		if err != nil {
			return err
		}
		return printJSON(item)
	case "create":
		var input C
		if err := json.Unmarshal([]byte(*data), &input); err != nil {
			return fmt.Errorf("parse --data: %w", err)
		}
		item, err := r.Create(ctx, rc, input)
		if err != nil {
			return err
		}
		return printJSON(item)
	case "update":
		id, err := needID()
		if err != nil {
			return err
		}
		var patch P
		if err := json.Unmarshal([]byte(*data), &patch); err != nil {
			return fmt.Errorf("parse --data: %w", err)
		}
		if err := r.Update(ctx, rc, id, patch); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	case "delete":
		id, err := needID()
		if err != nil {
			return err
		}
		if err := r.Delete(ctx, rc, id); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	default:
		return fmt.Errorf("unknown %s subcommand %q", name, sub)
	}
}

func cmdReminders(ctx context.Context, args []string) error {
	return withEnv("reminders", args, func(e *env, rest []string) error {
		if len(rest) < 1 || rest[0] != "sync" {
			return errors.New("usage: crmctl reminders sync")
		}
		if err := requireLogin(e); err != nil {
			return err
		}
		rc := e.session.RequestContext()
		activities, err := e.session.Client.Activities().All(ctx, rc, client.ListOptions{})
		if err != nil {
			return err
		}
		planner := client.NewReminderPlanner(e.kv, &logNotifier{logger: e.logger})
		res, err := planner.Sync(ctx, rc.TenantID, activities)
		fmt.Printf("Reminders scheduled: %d, cancelled: %d\n", res.Scheduled, res.Cancelled)
		return err
	})
}
