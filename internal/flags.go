package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddOpenAIFlags adds flags related to OpenAI API functionality
func AddOpenAIFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "OpenAI model to use for summaries")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (template string or file path)")
	cmd.Flags().Int("token-limit", 0, "Largest transcript, in tokens, that gets summarized")
}

// HandleGlobalFlags copies the persistent flags into config
func HandleGlobalFlags(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	config.Verbose = config.Verbose || verbose
	config.Quiet = config.Quiet || quiet
	return nil
}

// ApplyOpenAIFlags validates the API key and applies --model, --prompt and
// --token-limit when they were set
func ApplyOpenAIFlags(cmd *cobra.Command, config *Config) error {
	if err := ValidateOpenAIAPIKey(config.OpenAIAPIKey); err != nil {
		return err
	}

	if flag := cmd.Flags().Lookup("model"); flag != nil && flag.Changed {
		config.Model = flag.Value.String()
	}
	if config.Model == "" {
		return fmt.Errorf("no model configured")
	}

	if flag := cmd.Flags().Lookup("prompt"); flag != nil && flag.Changed {
		config.Prompt = flag.Value.String()
	}

	if flag := cmd.Flags().Lookup("token-limit"); flag != nil && flag.Changed {
		limit, err := cmd.Flags().GetInt("token-limit")
		if err != nil {
			return fmt.Errorf("failed to get token-limit flag: %w", err)
		}
		config.TokenLimit = limit
	}
	if config.TokenLimit <= 0 {
		return fmt.Errorf("token limit must be positive, got %d", config.TokenLimit)
	}

	return nil
}
