package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/aussiebroadwan/healthdesk/internal/desk/dashboard"
	"github.com/aussiebroadwan/healthdesk/internal/desk/forms"
	"github.com/aussiebroadwan/healthdesk/internal/desk/profile"
	"github.com/aussiebroadwan/healthdesk/internal/desk/search"
	"github.com/aussiebroadwan/healthdesk/internal/desk/settings"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

type command struct {
	name    string
	args    string
	summary string
	run     func(a *App, ctx context.Context, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"login", "[-remember]", "log in as a staff user", (*App).cmdLogin},
		{"logout", "", "forget the stored token", (*App).cmdLogout},
		{"clients", "[-q term]", "list clients, or search by name or email", (*App).cmdClients},
		{"show", "<client-id>", "show one client and their programs", (*App).cmdShow},
		{"register", "", "register a new client", (*App).cmdRegister},
		{"edit", "<client-id>", "edit a client's details", (*App).cmdEdit},
		{"unenroll", "<client-id> <program-id>", "remove a client from a program", (*App).cmdUnenroll},
		{"programs", "", "list programs with enrollment counts", (*App).cmdPrograms},
		{"program-new", "", "create a program", (*App).cmdProgramNew},
		{"program-edit", "<program-id>", "rename or describe a program", (*App).cmdProgramEdit},
		{"enroll", "<client-id> [program]", "enroll a client in a program", (*App).cmdEnroll},
		{"dashboard", "", "summary charts", (*App).cmdDashboard},
		{"shell", "", "interactive session with live search", (*App).cmdShell},
	}
}

func (a *App) dispatch(ctx context.Context, name string, args []string, inShell bool) error {
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if inShell && c.name == "shell" {
			return errors.New("already in a shell")
		}
		return c.run(a, ctx, args)
	}

	a.printf("unknown command %q\n\n", name)
	a.usage()
	return ErrUsage
}

func (a *App) usage() {
	a.printf("usage: desk <command> [arguments]\n\ncommands:\n")
	for _, c := range commands {
		a.printf("  %-13s %-26s %s\n", c.name, c.args, c.summary)
	}
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	return nil
}

// ============================================================================
// Session
// ============================================================================

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := a.flags("login")
	remember := fs.Bool("remember", false, "keep the token after this process exits")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	username, err := a.ask("Username", "")
	if err != nil {
		return err
	}
	password, err := a.ask("Password", "")
	if err != nil {
		return err
	}

	resp, err := a.api.Login(ctx, healthsdk.LoginRequest{Username: strings.TrimSpace(username), Password: password})
	if err != nil {
		return err
	}

	if err := a.tokens.SetToken(ctx, resp.AccessToken, *remember); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	if *remember {
		a.printf("Logged in. The session will be remembered.\n")
	} else {
		a.printf("Logged in for this session.\n")
	}
	return nil
}

func (a *App) cmdLogout(ctx context.Context, _ []string) error {
	if err := a.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	a.printf("Logged out.\n")
	return nil
}

// ============================================================================
// Clients
// ============================================================================

func (a *App) cmdClients(ctx context.Context, args []string) error {
	fs := a.flags("clients")
	q := fs.String("q", "", "search term matched against name and email")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	opts := []search.Option{}
	if *q == "" {
		opts = append(opts, search.AllowEmptyQuery())
	}
	snap := search.New(a.api, opts...).Submit(ctx, *q)
	if snap.State == search.Failed {
		return errors.New(snap.Err)
	}

	renderClients(a.out, snap.Rows())
	return nil
}

func (a *App) loadProfile(ctx context.Context, id string) (*profile.View, error) {
	v := profile.New(a.api, id)
	if err := v.Load(ctx); err != nil {
		return nil, errors.New(v.Err())
	}
	return v, nil
}

func (a *App) cmdShow(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "show <client-id>"); err != nil {
		return err
	}

	v, err := a.loadProfile(ctx, args[0])
	if err != nil {
		return err
	}
	renderProfile(a.out, v.Client(), a.loc)
	return nil
}

func (a *App) cmdRegister(ctx context.Context, _ []string) error {
	f := forms.NewRegisterClient(a.api)
	if !f.CanSubmit(ctx) {
		return errors.New("Please log in to register a client.")
	}

	d := &f.Draft
	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"First name", &d.FirstName},
		{"Last name", &d.LastName},
		{"Email", &d.Email},
		{"Phone (optional)", &d.Phone},
		{"Date of birth YYYY-MM-DD (optional)", &d.DateOfBirth},
		{"Address (optional)", &d.Address},
		{"Gender Male/Female/Other (optional)", &d.Gender},
		{"Emergency contact (optional)", &d.EmergencyContact},
	} {
		v, err := a.ask(field.label, "")
		if err != nil {
			return err
		}
		*field.dst = v
	}

	if _, err := f.Submit(ctx); err != nil {
		return errors.New(f.Err())
	}
	a.printf("%s\n", f.Notice())
	return nil
}

func (a *App) cmdEdit(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "edit <client-id>"); err != nil {
		return err
	}

	v, err := a.loadProfile(ctx, args[0])
	if err != nil {
		return err
	}
	if err := v.Edit(); err != nil {
		return err
	}

	a.printf("Press enter to keep a value, or type - to clear it.\n")
	d := v.Draft()
	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"First name", &d.FirstName},
		{"Last name", &d.LastName},
		{"Email", &d.Email},
		{"Phone", &d.Phone},
		{"Date of birth", &d.DateOfBirth},
		{"Address", &d.Address},
		{"Gender", &d.Gender},
		{"Emergency contact", &d.EmergencyContact},
	} {
		val, err := a.askEdit(field.label, *field.dst)
		if err != nil {
			_ = v.Cancel()
			return err
		}
		*field.dst = val
	}

	if err := v.Save(ctx); err != nil {
		return errors.New(v.Err())
	}

	a.printf("%s\n\n", v.Notice())
	renderProfile(a.out, v.Client(), a.loc)
	return nil
}

func (a *App) cmdUnenroll(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "unenroll <client-id> <program-id>"); err != nil {
		return err
	}

	v, err := a.loadProfile(ctx, args[0])
	if err != nil {
		return err
	}
	if err := v.Unenroll(ctx, args[1]); err != nil {
		return errors.New(v.Err())
	}

	a.printf("%s\n\n", v.Notice())
	renderProfile(a.out, v.Client(), a.loc)
	return nil
}

// ============================================================================
// Programs
// ============================================================================

func (a *App) cmdPrograms(ctx context.Context, _ []string) error {
	v := settings.New(a.api)
	if err := v.Load(ctx); err != nil {
		return errors.New(v.Err())
	}
	renderPrograms(a.out, v.Rows())
	return nil
}

func (a *App) cmdProgramNew(ctx context.Context, _ []string) error {
	f := forms.NewCreateProgram(a.api)
	if !f.CanSubmit(ctx) {
		return errors.New("Please log in to create a program.")
	}

	var err error
	if f.Draft.Name, err = a.ask("Program name", ""); err != nil {
		return err
	}
	if f.Draft.Description, err = a.ask("Description (optional)", ""); err != nil {
		return err
	}

	if _, err := f.Submit(ctx); err != nil {
		return errors.New(f.Err())
	}
	a.printf("%s\n", f.Notice())
	return nil
}

func (a *App) cmdProgramEdit(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "program-edit <program-id>"); err != nil {
		return err
	}

	v := settings.New(a.api)
	if err := v.Load(ctx); err != nil {
		return errors.New(v.Err())
	}
	if err := v.Edit(args[0]); err != nil {
		return err
	}

	var err error
	if v.Draft.Name, err = a.askEdit("Program name", v.Draft.Name); err != nil {
		return err
	}
	if v.Draft.Description, err = a.askEdit("Description", v.Draft.Description); err != nil {
		return err
	}

	if err := v.Save(ctx); err != nil {
		return errors.New(v.Err())
	}
	a.printf("%s\n\n", v.Notice())
	renderPrograms(a.out, v.Rows())
	return nil
}

func (a *App) cmdEnroll(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "enroll <client-id> [program]"); err != nil {
		return err
	}

	f := forms.NewEnrollClient(a.api, args[0])
	if err := f.LoadPrograms(ctx); err != nil {
		return errors.New(f.Err())
	}
	if len(f.Programs()) == 0 {
		return errors.New("No programs exist yet. Create one with program-new.")
	}

	sel := ""
	if len(args) > 1 {
		sel = args[1]
	} else {
		renderProgramChoices(a.out, f.Programs())
		var err error
		if sel, err = a.ask("Program number or id", ""); err != nil {
			return err
		}
	}

	if err := f.Choose(sel); err != nil {
		return errors.New(f.Err())
	}
	if err := f.Submit(ctx); err != nil {
		return errors.New(f.Err())
	}
	a.printf("%s\n", f.Notice())
	return nil
}

// ============================================================================
// Dashboard
// ============================================================================

func (a *App) cmdDashboard(ctx context.Context, _ []string) error {
	clients, err := a.api.ListClients(ctx)
	if err != nil {
		return errors.New(healthsdk.Message(err, "Failed to fetch clients."))
	}
	programs, err := a.api.ListPrograms(ctx)
	if err != nil {
		return errors.New(healthsdk.Message(err, "Failed to fetch programs."))
	}

	renderDashboard(a.out, dashboard.Derive(clients, programs, a.now(), a.loc))
	return nil
}

// ============================================================================
// Shell
// ============================================================================

func (a *App) cmdShell(ctx context.Context, _ []string) error {
	view := search.New(a.api,
		search.WithDebounce(a.cfg.SearchDebounce),
		search.OnChange(func(s search.Snapshot) {
			switch s.State {
			case search.Success:
				a.printf("\n%d match(es) for %q\n", len(s.Results), s.Query)
				renderClients(a.out, s.Rows())
			case search.Failed:
				a.printf("\n%s\n", s.Err)
			}
		}),
	)
	defer view.Close()

	a.printf("healthdesk shell. Type \"? term\" to search, \"help\" for commands, \"quit\" to leave.\n")
	for {
		a.printf("> ")
		if !a.in.Scan() {
			a.printf("\n")
			return a.in.Err()
		}

		line := strings.TrimSpace(a.in.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return nil
		case line == "help":
			a.usage()
			continue
		case strings.HasPrefix(line, "?"):
			view.Type(ctx, strings.TrimSpace(strings.TrimPrefix(line, "?")))
			continue
		}

		fields := strings.Fields(line)
		err := a.dispatch(ctx, fields[0], fields[1:], true)
		switch {
		case err == nil:
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil
		case errors.Is(err, ErrUsage) && !known(fields[0]):
			// usage already printed
		default:
			a.printf("error: %s\n", err)
		}
	}
}

func known(name string) bool {
	for _, c := range commands {
		if c.name == name {
			return true
		}
	}
	return false
}
