package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	lines := []commands.OrderLine{{ProductID: "A", Quantity: 2}, {ProductID: "B", Quantity: 1}}

	cmd, err := commands.NewCreateOrderCommand("Jane Doe", "1 Main St", "jane@example.com", lines)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "jane@example.com", cmd.Customer().Email())
	assert.Equal(t, lines, cmd.Lines())
}

func TestNewCreateOrderCommand_NoLines(t *testing.T) {
	_, err := commands.NewCreateOrderCommand("Jane Doe", "1 Main St", "jane@example.com", nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "items")
}

func TestNewCreateOrderCommand_InvalidLines(t *testing.T) {
	lines := []commands.OrderLine{{ProductID: "", Quantity: 1}, {ProductID: "B", Quantity: 0}}

	_, err := commands.NewCreateOrderCommand("Jane Doe", "1 Main St", "jane@example.com", lines)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "items[0].productId")
	assert.Contains(t, err.Error(), "items[1].quantity")
}

func TestNewCreateOrderCommand_InvalidCustomer(t *testing.T) {
	lines := []commands.OrderLine{{ProductID: "A", Quantity: 1}}

	_, err := commands.NewCreateOrderCommand("", "1 Main St", "not-an-email", lines)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_LinesAreCopied(t *testing.T) {
	lines := []commands.OrderLine{{ProductID: "A", Quantity: 1}}
	cmd, err := commands.NewCreateOrderCommand("Jane Doe", "1 Main St", "jane@example.com", lines)
	require.NoError(t, err)

	lines[0].ProductID = "Z"

	assert.Equal(t, "A", cmd.Lines()[0].ProductID)
}
