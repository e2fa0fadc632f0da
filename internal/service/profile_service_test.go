package service

import (
	"context"
	"testing"

	"Lumina/internal/api/dto"
	"Lumina/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	setupRedis(t)
	repo := newFakeProfileRepo(testProfile(1, "Fiction"))
	svc := NewProfileService(repo)
	ctx := context.Background()

	t.Run("missing profile", func(t *testing.T) {
		_, err := svc.LoadProfile(ctx, 99)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("second read served from cache", func(t *testing.T) {
		p, err := svc.LoadProfile(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, model.StringList{"Fiction"}, p.FavoriteGenres)
		reads := repo.reads

		p, err = svc.LoadProfile(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, model.StringList{"Fiction"}, p.FavoriteGenres)
		assert.Equal(t, reads, repo.reads)
	})
}

func TestUpsertProfile(t *testing.T) {
	setupRedis(t)
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		got, err := svc.UpsertProfile(ctx, 5, &dto.ProfileDTO{FavoriteGenres: []string{" Fantasy ", "Fantasy", "Romance"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Fantasy", "Romance"}, got.FavoriteGenres)
		assert.Equal(t, model.PaceMedium, got.ReadingPace)
		assert.Equal(t, model.LengthMedium, got.PreferredLength)
		assert.Empty(t, got.MoodTags)
		assert.Nil(t, got.LifeMoment)
	})

	t.Run("blank genres rejected", func(t *testing.T) {
		_, err := svc.UpsertProfile(ctx, 5, &dto.ProfileDTO{FavoriteGenres: []string{" "}})
		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("unknown vibe dimension rejected", func(t *testing.T) {
		_, err := svc.UpsertProfile(ctx, 5, &dto.ProfileDTO{
			FavoriteGenres:  []string{"Fantasy"},
			VibePreferences: map[string]float64{"spicy": 3},
		})
		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("vibe weight out of range rejected", func(t *testing.T) {
		_, err := svc.UpsertProfile(ctx, 5, &dto.ProfileDTO{
			FavoriteGenres:  []string{"Fantasy"},
			VibePreferences: map[string]float64{model.VibeDimAtmospheric: 11},
		})
		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("update replaces cached profile", func(t *testing.T) {
		_, err := svc.LoadProfile(ctx, 5)
		require.NoError(t, err)

		_, err = svc.UpsertProfile(ctx, 5, &dto.ProfileDTO{
			FavoriteGenres:  []string{"Horror"},
			ReadingPace:     model.PaceFast,
			VibePreferences: map[string]float64{model.VibeDimPlotDriven: 8},
		})
		require.NoError(t, err)

		p, err := svc.LoadProfile(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, model.StringList{"Horror"}, p.FavoriteGenres)
		assert.Equal(t, model.PaceFast, p.ReadingPace)
		assert.Equal(t, 8.0, p.VibePreferences[model.VibeDimPlotDriven])
	})
}

func TestMergeFavoriteGenres(t *testing.T) {
	setupRedis(t)
	repo := newFakeProfileRepo(testProfile(1, "Fiction", "Drama"))
	svc := NewProfileService(repo)
	ctx := context.Background()

	added, err := svc.MergeFavoriteGenres(ctx, 1, []string{"Drama", "Horror", "Poetry", "History", "Travel"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Horror", "Poetry", "History"}, added)
	assert.Equal(t, model.StringList{"Fiction", "Drama", "Horror", "Poetry", "History"}, repo.profiles[1].FavoriteGenres)

	t.Run("nothing new", func(t *testing.T) {
		added, err := svc.MergeFavoriteGenres(ctx, 1, []string{"Fiction"})
		require.NoError(t, err)
		assert.Empty(t, added)
	})

	t.Run("missing profile is a no-op", func(t *testing.T) {
		added, err := svc.MergeFavoriteGenres(ctx, 42, []string{"Fiction"})
		require.NoError(t, err)
		assert.Empty(t, added)
	})
}
