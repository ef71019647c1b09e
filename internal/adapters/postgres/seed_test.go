package postgres

import (
	"food-rescue-service/internal/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSeed(t *testing.T) {
	dir := t.TempDir()
	body := `[{"name":"NYC Food Bank","email":"info@nycfoodbank.org","address":"355 Food Center Dr",
		"categories_needed":["produce","bakery"],"storage_capacity_lbs":5000}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recipients.json"), []byte(body), 0o600))

	rows, err := readSeed[RecipientSeed](dir, "recipients.json")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"produce", "bakery"}, rows[0].CategoriesNeeded)
	require.NotNil(t, rows[0].StorageCapacityLbs)
	assert.Equal(t, 5000.0, *rows[0].StorageCapacityLbs)
	assert.Nil(t, rows[0].Lat)
}

func TestReadSeedMissingFile(t *testing.T) {
	rows, err := readSeed[DonorSeed](t.TempDir(), "donors.json")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadSeedMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drivers.json"), []byte(`{"not":"a list"}`), 0o600))

	_, err := readSeed[DriverSeed](dir, "drivers.json")
	require.Error(t, err)
}

func TestSeedFromJSONNilDB(t *testing.T) {
	require.Error(t, SeedFromJSON(t.Context(), nil, t.TempDir()))
}

func TestInstructionsRoundTrip(t *testing.T) {
	in := []domain.Instruction{
		{Text: "Head north on Broadway", Distance: "0.50 mi", Duration: "2.0 min"},
		{Text: "Arrive at destination", Distance: "0 mi", Duration: "0 min"},
	}

	raw, err := encodeInstructions(in)
	require.NoError(t, err)
	assert.Contains(t, raw, `"instruction":"Head north on Broadway"`)

	out, err := decodeInstructions([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeNoInstructions(t *testing.T) {
	raw, err := encodeInstructions(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestStoreRequiresDB(t *testing.T) {
	s := NewStore(nil)
	_, err := s.GetDonation(t.Context(), 1)
	require.Error(t, err)
	require.Error(t, Migrate(nil))
}
