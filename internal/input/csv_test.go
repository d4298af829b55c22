package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/limaJavier/alignments/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChoices(t *testing.T) {
	t.Run("Comma separated", func(t *testing.T) {
		//** Arrange
		content := "student,first,second,third\nana, Physics ,Math,Art\nbob,Math,,Biology\n\n"

		//** Act
		choices, err := ParseChoices(strings.NewReader(content), 3)

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, model.Choices{
			"ana": {"Art", "Math", "Physics"},
			"bob": {"Biology", "Math"},
		}, choices)
	})

	t.Run("Semicolon separated", func(t *testing.T) {
		content := "student;first;second;third\nana;Physics;Math;Art\ncarl\n"

		choices, err := ParseChoices(strings.NewReader(content), 3)

		require.Nil(t, err)
		assert.Equal(t, model.Choices{
			"ana":  {"Art", "Math", "Physics"},
			"carl": {},
		}, choices)
	})

	t.Run("Rejected rows", func(t *testing.T) {
		header := "student,first,second,third,fourth\n"
		for _, content := range []string{
			header + "ana,Math,Math\n",
			header + "ana,Math,Art,Physics,Biology\n",
			header + ",Math\n",
			header + "ana,Math\nana,Art\n",
			"",
		} {
			_, err := ParseChoices(strings.NewReader(content), 3)
			assert.NotNil(t, err, "%q should be rejected", content)
		}
	})
}

func TestChoicesFromCsv(t *testing.T) {
	//** Arrange
	path := filepath.Join(t.TempDir(), "students.csv")
	require.Nil(t, os.WriteFile(path, []byte("student,a,b,c\nana,Art,Math,Physics\n"), 0666))

	//** Act
	choices, err := ChoicesFromCsv(path, 3)

	//** Assert
	require.Nil(t, err)
	assert.Len(t, choices, 1)

	_, err = ChoicesFromCsv(filepath.Join(t.TempDir(), "missing.csv"), 3)
	assert.NotNil(t, err)
}
