// Package cli implements shellctl, an operator tool that runs the shell's
// claims, navigation and dashboard decisions offline against a token.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
	"github.com/ideaforge/portal-shell/internal/core/service"
	"github.com/ideaforge/portal-shell/internal/infrastructure/backend"
)

// NewRootCommand builds the shellctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "shellctl",
		Short: "Inspect how the portal shell composes a session",
		Long: `shellctl decodes session tokens the way the portal shell does and prints
the resulting claims, sidebar, dashboard body or route table as JSON.
Tokens are never verified.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newClaimsCommand(),
		newSidebarCommand(),
		newResolveCommand(),
		newRoutesCommand(),
	)
	return root
}

type claimsOutput struct {
	Subject     string   `json:"sub,omitempty"`
	Username    string   `json:"username,omitempty"`
	Role        string   `json:"role,omitempty"`
	Roles       []string `json:"roles"`
	Normalized  []string `json:"normalized_roles"`
	DisplayName string   `json:"display_name"`
}

func newClaimsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "claims <token>",
		Short: "Decode a token into the claims the shell sees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims := service.NewClaimsReader().Read(args[0])
			roles := claims.Roles
			if roles == nil {
				roles = []string{}
			}
			return writeJSON(cmd.OutOrStdout(), claimsOutput{
				Subject:     claims.Subject,
				Username:    claims.Username,
				Role:        claims.Role,
				Roles:       roles,
				Normalized:  claims.RoleSet().Strings(),
				DisplayName: claims.DisplayName(),
			})
		},
	}
}

func newSidebarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sidebar <token>",
		Short: "Print the sidebar chosen for a token's roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims := service.NewClaimsReader().Read(args[0])
			nav := service.NewNavigationService(domain.DefaultNavigationCatalog())
			return writeJSON(cmd.OutOrStdout(), nav.SidebarFor(claims.RoleSet()))
		},
	}
}

func newResolveCommand() *cobra.Command {
	var (
		path    string
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "resolve <token>",
		Short: "Compose the full shell for a path",
		Long: `Compose gate, chrome and dashboard body for --path as the server would.
With --backend, tokens without an explicit role claim are resolved through the
portal backend's user directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var directory ports.UserDirectory
			if baseURL != "" {
				directory = backend.NewClient(baseURL, timeout)
			}

			log := zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
			shell := service.NewShellService(
				service.NewNavigationService(domain.DefaultNavigationCatalog()),
				service.NewDashboardService(directory, log),
			)
			session := service.NewSessionService(nil, service.NewClaimsReader(), log).Open(args[0])
			return writeJSON(cmd.OutOrStdout(), shell.Compose(cmd.Context(), session, path))
		},
	}

	cmd.Flags().StringVar(&path, "path", domain.PathDashboard, "client path to compose")
	cmd.Flags().StringVar(&baseURL, "backend", "", "portal backend base URL for role lookups")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "backend request timeout")
	return cmd
}

func newRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the client route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), domain.Routes)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
