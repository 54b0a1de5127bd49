package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/spec-kit/ideaflow/internal/auth"
)

var secretCost int

var hashSecretCmd = &cobra.Command{
	Use:   "hash-secret [secret]",
	Short: "Hash the owner registration secret",
	Long: `Hash the owner registration secret with bcrypt.

Put the printed value in AUTH_OWNER_SECRET_HASH. When no secret is given
as an argument it is read from the terminal without echo, or from stdin.

Example:
  ideactl hash-secret`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := ""
		if len(args) == 1 {
			secret = args[0]
		} else {
			var err error
			fmt.Fprint(cmd.ErrOrStderr(), "Owner secret: ")
			secret, err = readSecret(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read secret: %w", err)
			}
		}
		if strings.TrimSpace(secret) == "" {
			return errors.New("secret must not be empty")
		}

		hash, err := auth.HashPassword(secret, secretCost)
		if err != nil {
			return fmt.Errorf("hash secret: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	hashSecretCmd.Flags().IntVar(&secretCost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	rootCmd.AddCommand(hashSecretCmd)
}

func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
