package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/minios-linux/rimloc/i18n"
	"github.com/minios-linux/rimloc/settings"
	"github.com/minios-linux/rimloc/translate"
)

// ---------------------------------------------------------------------------
// auth (manage stored API keys)
// ---------------------------------------------------------------------------

// allProviders is the ordered provider list shown by auth commands.
var allProviders = []struct {
	id      string
	name    string
	helpURL string
}{
	{translate.ProviderGoogle, "Google AI Studio", "https://aistudio.google.com/apikey"},
	{translate.ProviderOpenAI, "OpenAI-compatible", "https://platform.openai.com/api-keys"},
}

func knownProvider(id string) bool {
	for _, p := range allProviders {
		if p.id == id {
			return true
		}
	}
	return false
}

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage provider API keys",
		Long: `Manage the API keys rimloc uses for translation providers.

Keys are stored in $XDG_DATA_HOME/rimloc/auth.json with 0600 permissions.

Examples:
  rimloc auth login                          Store a Google AI key
  rimloc auth login --provider openai --base-url http://localhost:8080/v1
  rimloc auth logout --provider google       Remove the Google key
  rimloc auth logout                         Remove all keys
  rimloc auth list                           Show stored keys`,
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthListCmd(),
	)

	return cmd
}

func completeProviders(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	completions := make([]string, 0, len(allProviders))
	for _, p := range allProviders {
		completions = append(completions, fmt.Sprintf("%s\t%s", p.id, p.name))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func newAuthLoginCmd() *cobra.Command {
	var provider, baseURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !knownProvider(provider) {
				return fmt.Errorf(i18n.T("unknown provider %q"), provider)
			}
			for _, p := range allProviders {
				if p.id == provider {
					fmt.Fprintf(os.Stderr, "\n%s\n", blue(p.name))
					fmt.Fprintf(os.Stderr, "  %s %s\n\n", i18n.T("Get your API key from:"), green(p.helpURL))
				}
			}

			existing := settings.Get(provider)
			if existing != nil && existing.Key != "" {
				fmt.Fprintf(os.Stderr, "  %s %s\n", i18n.T("Current key:"), yellow(settings.MaskKey(existing.Key)))
				fmt.Fprintf(os.Stderr, "  %s ", i18n.T("Enter new key to replace, or press Enter to keep:"))
			} else {
				fmt.Fprintf(os.Stderr, "  %s ", i18n.T("Enter API key:"))
			}

			key, err := readSecret()
			if err != nil {
				return err
			}
			if key == "" {
				if existing != nil && existing.Key != "" {
					logInfo("%s", i18n.T("Keeping existing key"))
					return nil
				}
				return fmt.Errorf("%s", i18n.T("no API key provided"))
			}

			if err := settings.SetAPIKey(provider, key, baseURL); err != nil {
				return fmt.Errorf("saving API key: %w", err)
			}
			logSuccess(i18n.T("API key saved for %s"), provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", translate.ProviderGoogle, "Provider to store the key for")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Custom endpoint for OpenAI-compatible servers")
	_ = cmd.RegisterFlagCompletionFunc("provider", completeProviders)

	return cmd
}

// readSecret reads one line from stdin without echo when it is a terminal.
func readSecret() (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func newAuthLogoutCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored API keys",
		Long: `Remove the stored key of one provider, or every stored key when
--provider is not given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider == "" {
				if err := settings.RemoveAll(); err != nil {
					return err
				}
				logSuccess("%s", i18n.T("All stored credentials removed"))
				return nil
			}
			if !knownProvider(provider) {
				return fmt.Errorf(i18n.T("unknown provider %q"), provider)
			}
			if err := settings.Remove(provider); err != nil {
				return err
			}
			logSuccess(i18n.T("%s credentials removed"), provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Provider to logout (default: all)")
	_ = cmd.RegisterFlagCompletionFunc("provider", completeProviders)

	return cmd
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show stored API keys",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s\n", blue(i18n.T("Stored Credentials")))
			fmt.Fprintln(out, strings.Repeat("─", 60))

			store := settings.Load()
			for _, p := range allProviders {
				entry := store[p.id]
				if entry == nil || entry.Key == "" {
					fmt.Fprintf(out, "  %-10s %s\n", p.id, red(i18n.T("not configured")))
					continue
				}
				fmt.Fprintf(out, "  %-10s %s (%s)\n", p.id, green(i18n.T("configured")), settings.MaskKey(entry.Key))
				if entry.BaseURL != "" {
					fmt.Fprintf(out, "  %-10s %s %s\n", "", i18n.T("endpoint:"), entry.BaseURL)
				}
			}

			fmt.Fprintf(out, "\n  %s\n", yellow(i18n.T("Environment Variables")))
			for _, env := range []string{settings.EnvAPIKey, settings.EnvGeminiKey} {
				if v := os.Getenv(env); v != "" {
					fmt.Fprintf(out, "  %s: %s\n", env, green(settings.MaskKey(v)))
				} else {
					fmt.Fprintf(out, "  %s: %s\n", env, red(i18n.T("not set")))
				}
			}
			fmt.Fprintf(out, "\n  %s %s\n\n", i18n.T("File:"), settings.FilePath())
		},
	}
}
