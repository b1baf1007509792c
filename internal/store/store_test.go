package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"homeplan/pkg/plan"
)

func repositories(t *testing.T) map[string]Repository {
	t.Helper()

	sqlite, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlite.Close()
	})

	return map[string]Repository{
		"memory": NewMemoryRepository(),
		"sqlite": sqlite,
	}
}

func TestRepositoryCRUD(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			in := plan.DefaultInputs()
			created, err := repo.Create(Plan{Name: "baseline", Inputs: in})
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.False(t, created.CreatedAt.IsZero())

			// Stored inputs replay verbatim.
			got, err := repo.Get(created.ID)
			require.NoError(t, err)
			assert.Equal(t, in, got.Inputs)
			assert.Equal(t, plan.Summarize(in), plan.Summarize(got.Inputs))

			// Update changes the snapshot but keeps identity.
			got.Inputs.PurchasePrice = 650000
			got.Name = "cheaper house"
			updated, err := repo.Update(got)
			require.NoError(t, err)
			assert.Equal(t, created.ID, updated.ID)
			assert.Equal(t, 650000.0, updated.Inputs.PurchasePrice)
			assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())

			second, err := repo.Create(Plan{Name: "variant", Inputs: in})
			require.NoError(t, err)

			plans, err := repo.List()
			require.NoError(t, err)
			assert.Len(t, plans, 2)

			require.NoError(t, repo.Delete(second.ID))
			plans, err = repo.List()
			require.NoError(t, err)
			assert.Len(t, plans, 1)
		})
	}
}

func TestRepositoryNotFound(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Get("nope")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = repo.Update(Plan{ID: "nope", Name: "x"})
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, repo.Delete("nope"), ErrNotFound)
		})
	}
}

func TestRepositoryNameFallback(t *testing.T) {
	repo := NewMemoryRepository()

	in := plan.DefaultInputs()
	created, err := repo.Create(Plan{Inputs: in})
	require.NoError(t, err)
	assert.Equal(t, in.ProjectName, created.Name)
}

func TestExportImportRoundTrip(t *testing.T) {
	source := NewMemoryRepository()

	in := plan.DefaultInputs()
	first, err := source.Create(Plan{Name: "baseline", Inputs: in})
	require.NoError(t, err)

	in.PurchasePrice = 500000
	_, err = source.Create(Plan{Name: "smaller", Inputs: in})
	require.NoError(t, err)

	data, err := ExportYAML(source)
	require.NoError(t, err)

	target := NewMemoryRepository()
	n, err := ImportYAML(target, data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// IDs survive the round trip so re-imports update instead of duplicate.
	got, err := target.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "baseline", got.Name)

	n, err = ImportYAML(target, data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	plans, err := target.List()
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestImportYAMLMalformed(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := ImportYAML(repo, []byte("{not yaml"))
	assert.Error(t, err)
}
