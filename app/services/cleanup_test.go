package services

import (
	"os"
	"path/filepath"
	"testing"

	"eduface/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCleanup_RemovesGalleryAndPhoto(t *testing.T) {
	mediaDir := t.TempDir()
	galleryDir := t.TempDir()

	galleryFolder := filepath.Join(galleryDir, "alice_m")
	require.NoError(t, os.MkdirAll(galleryFolder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(galleryFolder, "profile.jpg"), []byte("x"), 0o644))
	photo := filepath.Join(mediaDir, "alice_m.png")
	require.NoError(t, os.WriteFile(photo, []byte("x"), 0o644))

	cleanup := FileCleanup(mediaDir, galleryDir)
	cleanup(&models.Student{Code: "alice_m"})

	_, err := os.Stat(galleryFolder)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(photo)
	assert.True(t, os.IsNotExist(err))
}

func TestFileCleanup_NothingToRemove(t *testing.T) {
	cleanup := FileCleanup(t.TempDir(), t.TempDir())
	// must not panic or create anything
	cleanup(&models.Student{Code: "ghost"})
}

func TestDeletionHooks_RunsAllHooks(t *testing.T) {
	var calls []string
	hooks := &DeletionHooks{}
	hooks.Register(func(st *models.Student) { calls = append(calls, "a:"+st.Code) })
	hooks.Register(func(st *models.Student) { calls = append(calls, "b:"+st.Code) })

	hooks.Run(&models.Student{Code: "alice_m"})
	assert.Equal(t, []string{"a:alice_m", "b:alice_m"}, calls)
}
