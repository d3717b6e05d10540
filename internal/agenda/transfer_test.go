package agenda_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/agenda/internal/agenda"
	"github.com/calvinalkan/agenda/internal/store"
)

func Test_Import_Replaces_Document(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	repo := openRepo(t, s)

	n, err := repo.Import([]byte(`<agenda><contact id="x"><name>X</name></contact><contact id="y"/></agenda>`), false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []string{"x", "y"}, ids(repo.All()))
	assert.Equal(t, []string{"x", "y"}, ids(storedDocument(t, s, agenda.DefaultStorageKey).Contacts()))
}

func Test_Import_Rejects_Malformed_Data_Without_Changes(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"not a document", "<not xml", "", `<agenda><contact/></agenda>`} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			s := &failingStore{Store: store.NewMemory()}
			repo := openRepo(t, s)
			writes := s.sets

			before, err := repo.Export()
			require.NoError(t, err)

			_, err = repo.Import([]byte(input), true)
			require.ErrorIs(t, err, agenda.ErrParse)

			after, err := repo.Export()
			require.NoError(t, err)

			assert.Equal(t, string(before), string(after))
			assert.Equal(t, writes, s.sets)
		})
	}
}

func Test_Import_Foreign_Root_Requires_Confirmation(t *testing.T) {
	t.Parallel()

	data := []byte(`<contacts><contact id="z"><name>Z</name></contact></contacts>`)

	t.Run("declined", func(t *testing.T) {
		t.Parallel()

		repo := openRepo(t, store.NewMemory())

		_, err := repo.Import(data, false)
		require.ErrorIs(t, err, agenda.ErrUnexpectedRoot)
		require.ErrorContains(t, err, "<contacts>")

		assert.Equal(t, []agenda.Contact{agenda.DefaultContact()}, repo.All())
	})

	t.Run("confirmed", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemory()
		repo := openRepo(t, s)

		n, err := repo.Import(data, true)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "contacts", repo.Snapshot().Root())

		reopened := openRepo(t, s)
		assert.Equal(t, []string{"z"}, ids(reopened.All()))
	})
}

func Test_Import_Namespaced_Agenda_Root_Requires_Confirmation(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		`<x:agenda xmlns:x="urn:other"><x:contact id="n"><x:name>N</x:name></x:contact></x:agenda>`,
		`<agenda xmlns="urn:other"><contact id="n"><name>N</name></contact></agenda>`,
	} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			s := &failingStore{Store: store.NewMemory()}
			repo := openRepo(t, s)
			writes := s.sets

			_, err := repo.Import([]byte(input), false)
			require.ErrorIs(t, err, agenda.ErrUnexpectedRoot)
			require.ErrorContains(t, err, `urn:other`)

			assert.Equal(t, []agenda.Contact{agenda.DefaultContact()}, repo.All())
			assert.Equal(t, writes, s.sets)

			_, err = repo.Import([]byte(input), true)
			require.NoError(t, err)
			assert.Equal(t, []string{"n"}, ids(repo.All()))

			stored := storedDocument(t, s, agenda.DefaultStorageKey)
			assert.Equal(t, "urn:other", stored.Namespace())
			assert.False(t, stored.IsAgenda())
		})
	}
}

func Test_Export_Normalizes_Hand_Written_Document(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	handWritten := `<agenda><contact id="h"><name>H</name><extra>dropped</extra></contact></agenda>`
	require.NoError(t, s.Set(agenda.DefaultStorageKey, []byte(handWritten)))

	repo := openRepo(t, s)

	exported, err := repo.Export()
	require.NoError(t, err)

	assert.NotEqual(t, handWritten, string(exported))
	assert.NotContains(t, string(exported), "extra")

	doc, err := agenda.Parse(exported)
	require.NoError(t, err)
	assert.Equal(t, repo.All(), doc.Contacts())
}

func Test_Export_Matches_Stored_Bytes(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	repo := openRepo(t, s)

	_, err := repo.Upsert(agenda.Fields{Name: "Frank & Sons"}, "")
	require.NoError(t, err)

	exported, err := repo.Export()
	require.NoError(t, err)

	stored, err := s.Get(agenda.DefaultStorageKey)
	require.NoError(t, err)

	assert.Equal(t, string(stored), string(exported))
}

func Test_Export_Then_Import_Round_Trips(t *testing.T) {
	t.Parallel()

	src := openRepo(t, store.NewMemory(), agenda.WithIDGenerator(counterIDs()))

	_, err := src.Upsert(agenda.Fields{Name: "Gina", Address: "1 Road\n2nd floor"}, "")
	require.NoError(t, err)

	data, err := src.Export()
	require.NoError(t, err)

	dst := openRepo(t, store.NewMemory())

	_, err = dst.Import(data, false)
	require.NoError(t, err)

	assert.Equal(t, src.All(), dst.All())
}
