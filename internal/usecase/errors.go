package usecase

import "copiadora_xpto/internal/domain/entities"

var (
	ErrStepNotFound        = entities.NewError(entities.ErrNotFound, "step not found")
	ErrServiceNotFound     = entities.NewError(entities.ErrNotFound, "service not found")
	ErrCategoryNotFound    = entities.NewError(entities.ErrNotFound, "category not found")
	ErrClientNotFound      = entities.NewError(entities.ErrNotFound, "client not found")
	ErrCopyMachineNotFound = entities.NewError(entities.ErrNotFound, "client copy machine not found")
	ErrImageNotFound       = entities.NewError(entities.ErrNotFound, "image not found or does not belong to this step")

	ErrInvalidID              = entities.NewError(entities.ErrValidation, "invalid id")
	ErrInvalidStepFilter      = entities.NewError(entities.ErrValidation, "filter must be created_today or expires_today")
	ErrStepNameRequired       = entities.NewError(entities.ErrValidation, "step name is required")
	ErrUnknownStepID          = entities.NewError(entities.ErrValidation, "step does not belong to this service")
	ErrClientRequired         = entities.NewError(entities.ErrValidation, "client_id is required")
	ErrCategoryRequired       = entities.NewError(entities.ErrValidation, "category_id is required")
	ErrCategoryNameRequired   = entities.NewError(entities.ErrValidation, "category name is required")
	ErrInvalidServiceStatus   = entities.NewError(entities.ErrValidation, "invalid service status")
	ErrServiceReasonRequired  = entities.NewError(entities.ErrValidation, "reason_cancellament is required to cancel a service")
	ErrInvalidAcquisitionType = entities.NewError(entities.ErrValidation, "acquisition_type must be RENT, SOLD or OWNED")
	ErrImageRequired          = entities.NewError(entities.ErrValidation, "no image file provided")
	ErrImageType              = entities.NewError(entities.ErrValidation, "file must be an image")
	ErrInvalidMonth           = entities.NewError(entities.ErrValidation, "month must be between 1 and 12")
	ErrInvalidYear            = entities.NewError(entities.ErrValidation, "invalid year")

	ErrCategoryInUse = entities.NewError(entities.ErrConflict, "category is used by existing services")
)
