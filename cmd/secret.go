package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"quill/internal/pkg/secret"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage the Gemini API key in the OS keychain",
	Long: `Store, inspect or remove the Gemini API key used when the server
runs with --key-source=keyring.`,
}

var secretSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the API key to the keychain (reads from stdin when piped)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := readKey(cmd)
		if err != nil {
			return err
		}
		if key == "" {
			return errors.New("empty API key")
		}
		if err := secret.NewKeyringSource().Save(key); err != nil {
			return fmt.Errorf("save API key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key saved to keychain")
		return nil
	},
}

var secretDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the API key from the keychain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := secret.NewKeyringSource().Delete()
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "no API key stored")
			return nil
		}
		if err != nil {
			return fmt.Errorf("delete API key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key removed from keychain")
		return nil
	},
}

var secretStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether an API key is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := secret.NewKeyringSource().APIKey(cmd.Context())
		if err != nil {
			return err
		}
		if key == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "keychain: not set")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "keychain: set")
		}
		return nil
	},
}

func init() {
	secretCmd.AddCommand(secretSetCmd, secretDeleteCmd, secretStatusCmd)
	rootCmd.AddCommand(secretCmd)
}

// readKey 终端下隐藏输入，管道输入时读取第一行
func readKey(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), "Gemini API key: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read API key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
