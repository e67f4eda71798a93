package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestMigrationVersion(t *testing.T) {
	version, err := LatestMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestParseMigrationVersion(t *testing.T) {
	cases := []struct {
		name    string
		version uint
		ok      bool
	}{
		{"000001_init.up.sql", 1, true},
		{"000042_add_index.up.sql", 42, true},
		{"init.up.sql", 0, false},
		{"_init.up.sql", 0, false},
		{"000000_zero.up.sql", 0, false},
	}

	for _, tc := range cases {
		version, ok := parseMigrationVersion(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.version, version, tc.name)
	}
}
