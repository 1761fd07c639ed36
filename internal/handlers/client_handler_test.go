package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

func TestLogMentionPatterns(t *testing.T) {
	client := &models.Client{
		Name:  "María García",
		Email: "maria@example.com",
	}

	patterns := logMentionPatterns(client)
	require.Len(t, patterns, 2)

	// el nombre es el token primario de la heurística; el email refuerza
	assert.Equal(t, "%María García%", patterns[0])
	assert.Equal(t, "%maria@example.com%", patterns[1])
}

func TestLogMentionPatterns_NoEmail(t *testing.T) {
	patterns := logMentionPatterns(&models.Client{Name: "Pedro"})
	require.Len(t, patterns, 1)
	assert.Equal(t, "%Pedro%", patterns[0])
}

func TestEscapeLike(t *testing.T) {
	// los comodines del nombre no pueden ampliar el borrado
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
	assert.Equal(t, "sin comodines", escapeLike("sin comodines"))
}
