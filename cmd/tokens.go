package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytsum/internal"
)

// tokensCmd counts tokens the way the summarize pipeline does
var tokensCmd = &cobra.Command{
	Use:   "tokens [text]",
	Short: "Count model tokens of a text, a file or stdin",
	Example: `  # Count tokens of a string
  ytsum tokens "hello world"

  # Count tokens of a saved transcript
  ytsum tokens -f transcript.txt
  cat transcript.txt | ytsum tokens`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flag := cmd.Flags().Lookup("model"); flag != nil && flag.Changed {
			config.Model = flag.Value.String()
		}

		text, err := tokensInput(cmd, args)
		if err != nil {
			return err
		}

		tokenizer, err := internal.NewTokenizer(config.Model)
		if err != nil {
			return err
		}

		count := tokenizer.Count(text)
		fmt.Println(count)
		if count > config.TokenLimit && !config.Quiet {
			fmt.Fprintf(os.Stderr, "above the token limit of %d, would not be summarized\n", config.TokenLimit)
		}
		return nil
	},
}

func tokensInput(cmd *cobra.Command, args []string) (string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(data), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func init() {
	tokensCmd.Flags().StringP("file", "f", "", "Read text from file")
	tokensCmd.Flags().StringP("model", "m", "", "Model whose tokenizer to use")
	rootCmd.AddCommand(tokensCmd)
}
