package services

import (
	"log"
	"os"
	"path/filepath"

	"eduface/app/models"
)

// CleanupFunc releases external resources tied to a deleted student.
// Hooks are best-effort: failures are logged and never abort the deletion.
type CleanupFunc func(st *models.Student)

// DeletionHooks collects the cleanup callbacks run after a student is
// removed from the registry.
type DeletionHooks struct {
	hooks []CleanupFunc
}

func (h *DeletionHooks) Register(fn CleanupFunc) {
	h.hooks = append(h.hooks, fn)
}

// Run invokes every registered hook for the student.
func (h *DeletionHooks) Run(st *models.Student) {
	for _, fn := range h.hooks {
		fn(st)
	}
}

// imageExtensions are the photo file extensions probed during cleanup.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// FileCleanup returns the hook that removes a student's gallery folder and
// display photo from disk.
func FileCleanup(mediaDir, galleryDir string) CleanupFunc {
	return func(st *models.Student) {
		galleryFolder := filepath.Join(galleryDir, st.Code)
		if _, err := os.Stat(galleryFolder); err == nil {
			if err := os.RemoveAll(galleryFolder); err != nil {
				log.Printf("[cleanup] failed to remove gallery folder %s: %v", galleryFolder, err)
			} else {
				log.Printf("[cleanup] removed gallery folder %s", galleryFolder)
			}
		}

		for _, ext := range imageExtensions {
			photo := filepath.Join(mediaDir, st.Code+ext)
			if _, err := os.Stat(photo); err != nil {
				continue
			}
			if err := os.Remove(photo); err != nil {
				log.Printf("[cleanup] failed to remove photo %s: %v", photo, err)
			} else {
				log.Printf("[cleanup] removed photo %s", photo)
			}
			break
		}
	}
}
