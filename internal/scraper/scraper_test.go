package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamehub/pkg/models"
)

type fakeSource struct {
	name  string
	games []models.GameCanonical
	err   error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchAll(ctx context.Context) ([]models.GameCanonical, error) {
	return f.games, f.err
}

func TestFetchAndMergeGroupsByCleanedTitle(t *testing.T) {
	t.Parallel()

	a := NewAggregator(nil,
		&fakeSource{name: "site-a", games: []models.GameCanonical{
			{Title: "Palworld v0.6.5-CODEX", Genres: []string{"Survival"}, PageURL: "http://a/palworld"},
		}},
		&fakeSource{name: "site-b", games: []models.GameCanonical{
			{Title: "Palworld (v0.6.6) Free Download", Genres: []string{"Open World"}, PageURL: "http://b/palworld"},
		}},
	)

	out, err := a.FetchAndMerge(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)

	g := out[0]
	assert.Equal(t, "palworld", g.ID)
	assert.Equal(t, "palworld", g.CleanTitle)
	assert.Equal(t, "0.6.6", g.Version, "newer version wins the merge")
	assert.Equal(t, "http://b/palworld", g.PageURL, "page follows the accepted release")
	assert.ElementsMatch(t, []string{"Survival", "Open World"}, g.Genres)
	assert.Contains(t, g.AltTitles, "Palworld (v0.6.6) Free Download")
}

func TestFetchAndMergeOlderListingDoesNotDowngrade(t *testing.T) {
	t.Parallel()

	a := NewAggregator(nil,
		&fakeSource{name: "site-a", games: []models.GameCanonical{
			{Title: "Hades II v1.2 Build 9002"},
		}},
		&fakeSource{name: "site-b", games: []models.GameCanonical{
			{Title: "Hades II v1.1"},
		}},
	)

	out, err := a.FetchAndMerge(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "1.2", out[0].Version)
	assert.Equal(t, "9002", out[0].Build)
}

func TestFetchAndMergeDetectsVersionAndBuildFromTitle(t *testing.T) {
	t.Parallel()

	a := NewAggregator(nil, &fakeSource{name: "site-a", games: []models.GameCanonical{
		{Title: "Palworld v0.6.6 Build 12345-CODEX (2024)"},
	}})

	out, err := a.FetchAndMerge(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)

	g := out[0]
	assert.Equal(t, "palworld", g.CleanTitle)
	assert.Equal(t, "0.6.6", g.Version)
	assert.Equal(t, "12345", g.Build)
}

func TestFetchAndMergeSkipsBrokenSource(t *testing.T) {
	t.Parallel()

	a := NewAggregator(nil,
		&fakeSource{name: "broken", err: errors.New("boom")},
		&fakeSource{name: "ok", games: []models.GameCanonical{
			{Title: "Stardew Valley v1.6.8"},
		}},
	)

	out, err := a.FetchAndMerge(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestFetchAndMergeSourceIDsUnion(t *testing.T) {
	t.Parallel()

	a := NewAggregator(nil,
		&fakeSource{name: "site-a", games: []models.GameCanonical{
			{Title: "Factorio v2.0", SourceIDs: map[string]string{"steam": "427520"}},
		}},
		&fakeSource{name: "site-b", games: []models.GameCanonical{
			{Title: "Factorio v2.0.7", SourceIDs: map[string]string{"gog": "1238653230"}},
		}},
	)

	out, err := a.FetchAndMerge(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "427520", out[0].SourceIDs["steam"])
	assert.Equal(t, "1238653230", out[0].SourceIDs["gog"])
}
