package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// EnvPipeline holds the pipeline set by `pipeboard use pipeline`
const EnvPipeline = "PIPEBOARD_PIPELINE"

// GetPipelineID resolves the pipeline from the --pipeline flag, falling back
// to the PIPEBOARD_PIPELINE environment variable.
func GetPipelineID(cmd *cobra.Command) (int, error) {
	if flag := cmd.Flags().Lookup("pipeline"); flag != nil && flag.Changed {
		id, err := cmd.Flags().GetInt("pipeline")
		if err != nil {
			return 0, fmt.Errorf("failed to parse pipeline flag: %w", err)
		}
		if id <= 0 {
			return 0, fmt.Errorf("pipeline must be greater than 0")
		}
		return id, nil
	}

	env := os.Getenv(EnvPipeline)
	if env == "" {
		return 0, fmt.Errorf("no pipeline specified (use --pipeline or %s)", EnvPipeline)
	}
	id, err := strconv.Atoi(env)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s value: %q", EnvPipeline, env)
	}
	return id, nil
}

// ParseIDList parses a comma separated list of positive ids such as "3,1,2".
// Duplicates are kept; the reorder service decides whether they are valid.
func ParseIDList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("id list cannot be empty")
	}

	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		if id <= 0 {
			return nil, fmt.Errorf("id must be greater than 0, got %d", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
