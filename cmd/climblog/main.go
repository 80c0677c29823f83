package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"climblog/internal/bootstrap"
	analyticsdto "climblog/internal/modules/analytics/dto"
	"climblog/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir    string
	configPath string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "climblog",
		Short:         "Bouldering session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory for the credential database and log (default: user config dir)")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config.yaml")

	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newLoginCmd(&flags))
	root.AddCommand(newSignupCmd(&flags))
	root.AddCommand(newLogoutCmd(&flags))
	root.AddCommand(newWhoamiCmd(&flags))
	root.AddCommand(newGymsCmd(&flags))
	root.AddCommand(newHistoryCmd(&flags))
	return root
}

// withApp builds the application, runs fn and releases it again.
func withApp(flags *globalFlags, fn func(app *bootstrap.App) error) error {
	cfg, err := config.New(config.Options{DataDir: flags.dataDir, ConfigPath: flags.configPath})
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive session tracker",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, bootstrap.RunTUI)
		},
	}
}

// credentials fills in a missing password from stdin so it stays out of the
// shell history.
func credentials(cmd *cobra.Command, username, password string) (string, string, error) {
	if strings.TrimSpace(username) == "" {
		return "", "", fmt.Errorf("--username is required")
	}
	if password == "" {
		password = os.Getenv("CLIMBLOG_PASSWORD")
	}
	if password == "" {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "password: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}
	return username, password, nil
}

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var username, password string
	login := &cobra.Command{
		Use:   "login --username <name>",
		Short: "Log in and store the access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, pass, err := credentials(cmd, username, password)
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.AuthCLI.Login(context.Background(), user, pass)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", out.Username)
				return nil
			})
		},
	}
	login.Flags().StringVarP(&username, "username", "u", "", "account name")
	login.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin or CLIMBLOG_PASSWORD when empty)")
	return login
}

func newSignupCmd(flags *globalFlags) *cobra.Command {
	var username, password string
	signup := &cobra.Command{
		Use:   "signup --username <name>",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, pass, err := credentials(cmd, username, password)
			if err != nil {
				return err
			}
			return withApp(flags, func(app *bootstrap.App) error {
				if err := app.AuthCLI.Signup(context.Background(), user, pass); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "account %s created, run climblog login next\n", user)
				return nil
			})
		},
	}
	signup.Flags().StringVarP(&username, "username", "u", "", "account name")
	signup.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin or CLIMBLOG_PASSWORD when empty)")
	return signup
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if err := app.AuthCLI.Logout(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.AuthCLI.Whoami(context.Background())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if !out.Authenticated {
					_, _ = fmt.Fprintln(w, "not logged in")
					return nil
				}
				name := out.Username
				if name == "" {
					name = "(unknown user)"
				}
				_, _ = fmt.Fprintf(w, "user: %s\nsaved: %s\n", name, out.SavedAt.Local().Format("2006-01-02 15:04"))
				if !out.ExpiresAt.IsZero() {
					state := "valid"
					if out.Expired {
						state = "expired"
					}
					_, _ = fmt.Fprintf(w, "expires: %s (%s)\n", out.ExpiresAt.Local().Format("2006-01-02 15:04"), state)
				}
				return nil
			})
		},
	}
}

func newGymsCmd(flags *globalFlags) *cobra.Command {
	gyms := &cobra.Command{
		Use:   "gyms",
		Short: "List gyms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				list, err := app.GymCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no gyms")
					return nil
				}
				rows := make([][]string, 0, len(list))
				for _, g := range list {
					rows = append(rows, []string{g.ID, g.Name})
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name"}, rows))
				return nil
			})
		},
	}

	var location string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a gym to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.GymCLI.Create(context.Background(), args[0], location)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", out.Name, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&location, "location", "", "where the gym is")

	gyms.AddCommand(add)
	return gyms
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	history := &cobra.Command{
		Use:   "history",
		Short: "Show send rates and past sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				ctx := context.Background()
				token, err := app.AuthCLI.Token(ctx)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.History(ctx, token)
				if err != nil {
					return err
				}
				report := app.AnalyticsCLI.Report(out)
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(report)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
				return nil
			})
		},
	}
	history.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	var dir string
	export := &cobra.Command{
		Use:   "export --dir <path>",
		Short: "Write every past session as a markdown note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(dir) == "" {
				return fmt.Errorf("--dir is required")
			}
			return withApp(flags, func(app *bootstrap.App) error {
				ctx := context.Background()
				token, err := app.AuthCLI.Token(ctx)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.Export(ctx, token, dir)
				for _, p := range out.Paths {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions\n", len(out.Paths))
				return nil
			})
		},
	}
	export.Flags().StringVar(&dir, "dir", "", "target directory, e.g. an Obsidian vault")

	history.AddCommand(export)
	return history
}

func renderReport(r analyticsdto.Report) string {
	if r.Sessions == 0 {
		return "no sessions yet"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d sessions, %d climbs, %d sends\n\n", r.Sessions, r.Climbs, r.Sends)

	holds := make([][]string, 0, len(r.Holds))
	for _, h := range r.Holds {
		holds = append(holds, []string{string(h.HoldType), strconv.Itoa(h.SendPercentage) + "%", strconv.Itoa(h.Total)})
	}
	sb.WriteString(renderTable([]string{"Hold", "Send %", "Climbs"}, holds) + "\n")

	angles := make([][]string, 0, len(r.Angles))
	for _, a := range r.Angles {
		angles = append(angles, []string{string(a.Key), strconv.Itoa(a.SendPercentage) + "%", strconv.Itoa(a.Total)})
	}
	sb.WriteString(renderTable([]string{"Angle", "Send %", "Climbs"}, angles) + "\n")

	styles := make([][]string, 0, len(r.Styles))
	for _, s := range r.Styles {
		styles = append(styles, []string{string(s.Key), strconv.Itoa(s.SendPercentage) + "%", strconv.Itoa(s.Total)})
	}
	sb.WriteString(renderTable([]string{"Style", "Send %", "Climbs"}, styles) + "\n")

	timeline := make([][]string, 0, len(r.Timeline))
	for _, t := range r.Timeline {
		when := "-"
		if !t.StartedAt.IsZero() {
			when = t.StartedAt.Local().Format("2006-01-02 15:04")
		}
		hardest := string(t.HardestSend)
		if hardest == "" {
			hardest = "-"
		}
		fatigue := "-"
		if t.Fatigue > 0 {
			fatigue = strconv.Itoa(t.Fatigue)
		}
		timeline = append(timeline, []string{when, t.GymName, strconv.Itoa(t.Climbs), strconv.Itoa(t.Sends), hardest, fatigue})
	}
	sb.WriteString(renderTable([]string{"Started", "Gym", "Climbs", "Sends", "Hardest", "Fatigue"}, timeline))
	return sb.String()
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		}).
		String()
}
