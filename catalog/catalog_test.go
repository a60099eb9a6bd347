package catalog

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jtejido/afisnet/config"
	"github.com/jtejido/afisnet/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id int, name string, associates ...int) Record {
	return Record{
		ID:   id,
		Name: name,
		Points: []primitives.Minutia{
			{X: id, Y: 2 * id, Angle: 10, Kind: primitives.RidgeEnding, Orientation: 0.5},
			{X: 40, Y: 50, Angle: 300, Kind: primitives.Bifurcation, Orientation: 0.25},
		},
		Associates: associates,
	}
}

func openStores() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"file": func(t *testing.T) Store {
			s, err := OpenFileStore(filepath.Join(t.TempDir(), "catalog.cbor"))
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestStores(t *testing.T) {
	for name, open := range openStores() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			records, err := s.List()
			require.NoError(t, err)
			assert.Empty(t, records)

			for _, id := range []int{7, 2, 5} {
				require.NoError(t, s.Insert(testRecord(id, "person", 1)))
			}

			records, err = s.List()
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, []int{2, 5, 7}, []int{records[0].ID, records[1].ID, records[2].ID})

			got, err := s.Get(5)
			require.NoError(t, err)
			assert.Equal(t, testRecord(5, "person", 1), got)

			_, err = s.Get(99)
			assert.ErrorIs(t, err, ErrNotFound)

			err = s.Insert(testRecord(5, "other"))
			assert.ErrorIs(t, err, ErrDuplicateID)
			got, err = s.Get(5)
			require.NoError(t, err)
			assert.Equal(t, "person", got.Name)
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert(testRecord(1, "a", 2)))

	got, err := s.Get(1)
	require.NoError(t, err)
	got.Points[0].X = 999
	got.Associates[0] = 42

	again, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Points[0].X)
	assert.Equal(t, []int{2}, again.Associates)
}

func TestFileStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.cbor")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Insert(testRecord(3, "c", 1, 2)))
	require.NoError(t, s.Insert(testRecord(1, "a")))
	require.NoError(t, s.Close())

	s, err = OpenFileStore(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 2, s.Len())
	got, err := s.Get(3)
	require.NoError(t, err)
	assert.Equal(t, testRecord(3, "c", 1, 2), got)
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Insert(testRecord(4, "d", 9)))
	require.NoError(t, s.Close())

	s, err = OpenSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(4)
	require.NoError(t, err)
	assert.Equal(t, testRecord(4, "d", 9), got)
}

func TestOpenByBackend(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{config.BackendMemory, config.BackendFile, config.BackendSQLite} {
		s, err := Open(config.Store{Backend: backend, Path: filepath.Join(dir, backend)})
		require.NoError(t, err, backend)
		require.NoError(t, s.Close())
	}
	_, err := Open(config.Store{Backend: "tape"})
	assert.Error(t, err)
}

func TestRecordValidate(t *testing.T) {
	assert.NoError(t, testRecord(1, "a").Validate())

	cases := map[string]Record{
		"zero id":   testRecord(0, "a"),
		"no name":   testRecord(1, "  "),
		"no points": {ID: 1, Name: "a"},
		"bad angle": {ID: 1, Name: "a", Points: []primitives.Minutia{{Angle: 400}}},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, r.Validate(), ErrInvalid)
		})
	}
}

func TestReadLegacy(t *testing.T) {
	input := strings.Join([]string{
		"2|Bob|5|0|15|R|0.3|AC|1",
		"garbage|line",
		"",
		"1|Alice|0|0|10|R|0.5|10|10|90|B|0.75|AC|2|3",
		"3|Carol|1|2|x|4|5|nope|6",
		"4|Dave|AC",
		"2|Bobby|5|0|15|R|0.3|AC",
	}, "\n")

	records, err := ReadLegacy(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 4)

	alice := records[0]
	assert.Equal(t, 1, alice.ID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, []primitives.Minutia{
		{X: 0, Y: 0, Angle: 10, Kind: primitives.RidgeEnding, Orientation: 0.5},
		{X: 10, Y: 10, Angle: 90, Kind: primitives.Bifurcation, Orientation: 0.75},
	}, alice.Points)
	assert.Equal(t, []int{2, 3}, alice.Associates)

	assert.Equal(t, "Bobby", records[1].Name)
	assert.Empty(t, records[1].Associates)

	carol := records[2]
	assert.Empty(t, carol.Points)
	assert.Equal(t, []int{4, 5}, carol.Associates)

	assert.Empty(t, records[3].Points)
}

func TestWriteLegacyRoundTrip(t *testing.T) {
	records := []Record{testRecord(1, "Alice", 2, 3), testRecord(2, "Bob")}
	var buf bytes.Buffer
	require.NoError(t, WriteLegacy(&buf, records))
	assert.Equal(t, "1|Alice|1|2|10|R|0.5|40|50|300|B|0.25|AC|2|3\n", strings.SplitAfter(buf.String(), "\n")[0])

	back, err := ReadLegacy(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, back)
}
