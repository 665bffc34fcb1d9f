package serviceimpl

import (
	"errors"

	"gorm.io/gorm"

	"task-manager-api/domain/apperror"
	"task-manager-api/pkg/utils"
)

// fromRepoError: record not found → NotFound, อย่างอื่น → PersistenceFailure
func fromRepoError(err error, notFoundMessage string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFoundMessage)
	}
	return apperror.Persistence("operation failed", err)
}

func validateRequest(req any) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperror.Validation("validation failed", utils.GetValidationErrors(err))
	}
	return nil
}
