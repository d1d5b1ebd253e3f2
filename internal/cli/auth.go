package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/archpilot/internal/config"
	"github.com/Cyclone1070/archpilot/internal/secrets"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth [api-key]",
	Short: "Store the Gemini API key",
	Long: "Saves the Gemini API key to credentials.yaml next to the config file.\n" +
		"With no argument the key is read from stdin. " + secrets.EnvAPIKey + " takes\n" +
		"precedence over the stored key.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAuth,
}

func runAuth(cmd *cobra.Command, args []string) error {
	path, err := config.NewLoader().Path(configPath)
	if err != nil {
		return err
	}

	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		fmt.Fprint(cmd.OutOrStdout(), "Gemini API key: ")
		key, err = readKey(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	store := credentialStore(path)
	if err := store.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", secrets.Mask(strings.TrimSpace(key)), store.Path())
	return nil
}

func readKey(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
