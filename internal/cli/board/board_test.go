package board

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/testutil"
	cliutil "github.com/thenoetrevino/pipeboard/internal/testutil/cli"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

func TestResolvePipeline(t *testing.T) {
	t.Setenv(cli.EnvPipeline, "")
	ctx := context.Background()

	t.Run("no pipelines", func(t *testing.T) {
		_, testApp := cliutil.SetupCLITest(t)

		_, err := ResolvePipeline(ctx, BoardCmd(), testApp)
		if !errors.Is(err, ErrNoPipelines) {
			t.Errorf("expected ErrNoPipelines, got %v", err)
		}
	})

	t.Run("first pipeline by default", func(t *testing.T) {
		db, testApp := cliutil.SetupCLITest(t)
		first := testutil.CreateTestPipeline(t, db, "Sales")
		testutil.CreateTestPipeline(t, db, "Partners")

		got, err := ResolvePipeline(ctx, BoardCmd(), testApp)
		if err != nil {
			t.Fatalf("ResolvePipeline failed: %v", err)
		}
		if got != types.PipelineID(first) {
			t.Errorf("pipeline = %d, want %d", got, first)
		}
	})

	t.Run("flag wins", func(t *testing.T) {
		db, testApp := cliutil.SetupCLITest(t)
		testutil.CreateTestPipeline(t, db, "Sales")
		second := testutil.CreateTestPipeline(t, db, "Partners")

		cmd := BoardCmd()
		if err := cmd.Flags().Set("pipeline", strconv.Itoa(second)); err != nil {
			t.Fatal(err)
		}
		got, err := ResolvePipeline(ctx, cmd, testApp)
		if err != nil {
			t.Fatalf("ResolvePipeline failed: %v", err)
		}
		if got != types.PipelineID(second) {
			t.Errorf("pipeline = %d, want %d", got, second)
		}
	})

	t.Run("unknown pipeline", func(t *testing.T) {
		_, testApp := cliutil.SetupCLITest(t)
		t.Setenv(cli.EnvPipeline, "42")

		_, err := ResolvePipeline(ctx, BoardCmd(), testApp)
		if !errors.Is(err, database.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
		if cli.ExitCodeFor(err) != cli.ExitNotFound {
			t.Errorf("exit code = %d, want %d", cli.ExitCodeFor(err), cli.ExitNotFound)
		}
	})
}
