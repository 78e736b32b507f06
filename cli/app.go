package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/tripclient"
	"github.com/viant/tripclient/config"
	"github.com/viant/tripclient/logger"
	"gopkg.in/yaml.v3"
)

// App runs tripctl commands
type App struct {
	options *Options
	out     io.Writer
	config  *config.Config
	client  *tripclient.Client
}

func (a *App) parser() *flags.Parser {
	parser := flags.NewParser(a.options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "tripctl"
	_, _ = parser.AddCommand("login", "Sign in", "Signs in and stores the issued credentials.", &Login{app: a})
	_, _ = parser.AddCommand("logout", "Sign out", "Notifies the api and removes stored credentials.", &Logout{app: a})
	_, _ = parser.AddCommand("register", "Create an account", "Registers an account; a verification code is emailed.", &Register{app: a})
	_, _ = parser.AddCommand("verify", "Verify email", "Verifies the account email with a one time code.", &Verify{app: a})
	_, _ = parser.AddCommand("me", "Show profile", "Shows the signed in user.", &Me{app: a})
	_, _ = parser.AddCommand("groups", "List groups", "Lists groups the signed in user belongs to.", &Groups{app: a})
	_, _ = parser.AddCommand("group", "Show group", "Shows a group with its members.", &Group{app: a})
	_, _ = parser.AddCommand("friends", "List friends", "Lists friends of the signed in user.", &Friends{app: a})
	_, _ = parser.AddCommand("requests", "List friend requests", "Lists received or sent friend requests.", &Requests{app: a})
	_, _ = parser.AddCommand("status", "Show session status", "Shows the api address and whether credentials are stored.", &Status{app: a})
	return parser
}

// Run parses args and executes the selected command
func (a *App) Run(args []string) error {
	_, err := a.parser().ParseArgs(args)
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		_, _ = io.WriteString(a.out, flagsErr.Message+"\n")
		return nil
	}
	return err
}

func (a *App) Client(ctx context.Context) (*tripclient.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	cfg, err := config.Load(a.options.Config)
	if err != nil {
		return nil, err
	}
	if a.options.BaseURL != "" {
		cfg.API.BaseURL = a.options.BaseURL
	}
	if a.options.Store != "" {
		cfg.Store.Driver = a.options.Store
	}
	if a.options.StoreURL != "" {
		cfg.Store.URL = a.options.StoreURL
	}
	if a.options.Verbose {
		cfg.Log.Level = "debug"
	}
	logger.Init(logger.Config{Env: cfg.Env, Level: cfg.Log.Level, ServiceName: "tripctl"})
	client, err := tripclient.New(ctx, cfg, tripclient.WithLogger(logger.L().With(logger.Component("tripctl"))))
	if err != nil {
		return nil, err
	}
	a.config = cfg
	a.client = client
	return client, nil
}

func (a *App) print(value interface{}) error {
	encoder := yaml.NewEncoder(a.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	return encoder.Close()
}

// New creates an app writing command output to out
func New(out io.Writer) *App {
	return &App{options: &Options{}, out: out}
}

// Run runs tripctl with args, writing to stdout
func Run(args []string) error {
	defer func() { _ = logger.Sync() }()
	return New(os.Stdout).Run(args)
}
