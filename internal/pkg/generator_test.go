package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerators(t *testing.T) {
	gameID := GenerateGameID()
	sessionID := GenerateNewSessionID()

	_, err := uuid.Parse(gameID)
	require.NoError(t, err)

	_, err = uuid.Parse(sessionID)
	require.NoError(t, err)

	assert.NotEqual(t, gameID, GenerateGameID())
}
