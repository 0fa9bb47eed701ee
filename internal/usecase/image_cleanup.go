package usecase

import (
	"context"
	"log"

	"copiadora_xpto/internal/usecase/interfaces"
)

// purgeStepImages removes stored objects and image records of the given
// steps. Failures are logged and skipped: the steps are already gone.
func purgeStepImages(ctx context.Context, images interfaces.IImageRepository, storage interfaces.IImageStorage, stepIDs []string) {
	if images == nil {
		return
	}
	for _, stepID := range stepIDs {
		list, err := images.ListByStepID(ctx, stepID)
		if err != nil {
			log.Printf("[image][cleanup] list failed step_id=%s err=%v", stepID, err)
			continue
		}
		for _, img := range list {
			if storage != nil {
				if err := storage.Delete(ctx, img.Path); err != nil {
					log.Printf("[image][cleanup] storage delete failed image_id=%s path=%s err=%v", img.ID, img.Path, err)
				}
			}
			if err := images.Delete(ctx, img.ID); err != nil {
				log.Printf("[image][cleanup] record delete failed image_id=%s err=%v", img.ID, err)
			}
		}
	}
}
