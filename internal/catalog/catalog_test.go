package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "characters.json")
	data := `[
		{"name": "Asuka", "roles": {"Captain": 92, "Vice": 84, "Tank": 55, "Healer": 40, "Support1": 61, "Support2": 58}},
		{"name": "Brom", "roles": {"Captain": 70, "Vice": 66, "Tank": 95, "Healer": 35, "Support1": 52, "Support2": 50}}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	chars, err := Load(path)
	require.NoError(t, err)
	require.Len(t, chars, 2)
	require.Equal(t, "Asuka", chars[0].Name)
	require.Equal(t, 95, chars[1].Roles["Tank"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Character {
		return Character{Name: "X", Roles: map[string]int{
			"Captain": 1, "Vice": 1, "Tank": 1, "Healer": 1, "Support1": 1, "Support2": 1,
		}}
	}

	cases := []struct {
		name  string
		chars []Character
	}{
		{"empty catalog", nil},
		{"duplicate name", []Character{base(), base()}},
		{"empty name", []Character{{Name: "", Roles: base().Roles}}},
		{"missing role", []Character{{Name: "Y", Roles: map[string]int{"Captain": 1}}}},
		{"non-positive power", func() []Character {
			c := base()
			c.Roles["Tank"] = 0
			return []Character{c}
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, Validate(tc.chars))
		})
	}
}
