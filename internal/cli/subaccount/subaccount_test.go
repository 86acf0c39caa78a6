package subaccount

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/testutil"
	clitest "github.com/thenoetrevino/pipeboard/internal/testutil/cli"
)

func TestCreateSubAccount(t *testing.T) {
	db, app := clitest.SetupCLITest(t)

	t.Run("quiet prints the new ID", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Acme Dental",
			"--quiet",
		})
		require.NoError(t, err)

		idStr := strings.TrimSpace(output)
		assert.Regexp(t, `^\d+$`, idStr)

		var name string
		err = db.QueryRowContext(context.Background(), "SELECT name FROM subaccounts WHERE id = ?", idStr).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, "Acme Dental", name)
	})

	t.Run("json output", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Beta Clinic",
			"--json",
		})
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		account := result["subaccount"].(map[string]any)
		assert.Equal(t, "Beta Clinic", account["name"])
	})

	t.Run("blank name is a validation error", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "   ",
			"--json",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, clitest.ExitCode(err))
	})
}

func TestListSubAccounts(t *testing.T) {
	db, app := clitest.SetupCLITest(t)

	t.Run("empty list", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		assert.Empty(t, result["subaccounts"])
	})

	first := testutil.CreateTestSubAccount(t, db, "First")
	second := testutil.CreateTestSubAccount(t, db, "Second")

	t.Run("quiet lists IDs", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)

		lines := strings.Fields(output)
		assert.ElementsMatch(t, []string{itoa(first), itoa(second)}, lines)
	})

	t.Run("human output", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "Found 2 sub-accounts")
		assert.Contains(t, output, "First")
	})
}

func TestContacts(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	subAccountID := testutil.CreateTestSubAccount(t, db, "Acme")

	output, err := clitest.ExecuteCLICommand(t, app, contactCreateCmd(), []string{
		"--subaccount", itoa(subAccountID),
		"--name", "Jane Doe",
		"--email", "jane@example.com",
		"--quiet",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^\d+$`, strings.TrimSpace(output))

	t.Run("list shows the contact", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, contactListCmd(), []string{
			"--subaccount", itoa(subAccountID),
		})
		require.NoError(t, err)
		assert.Contains(t, output, "Jane Doe <jane@example.com>")
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, contactCreateCmd(), []string{
			"--subaccount", itoa(subAccountID),
			"--name", "Bad",
			"--email", "not-an-email",
			"--json",
		})
		assert.Equal(t, cli.ExitValidation, clitest.ExitCode(err))
	})

	t.Run("unknown sub-account", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, contactCreateCmd(), []string{
			"--subaccount", "9999",
			"--name", "Nobody",
			"--json",
		})
		assert.Equal(t, cli.ExitNotFound, clitest.ExitCode(err))
	})
}
