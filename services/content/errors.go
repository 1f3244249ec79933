package content

import (
	"errors"

	"oasis/database/repository"
	"oasis/utils"
)

func notFound(err error, resource, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFoundError(resource, id)
	}
	return err
}

func conflict(err error, resource string) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		return utils.NewConflictError("%s already exists", resource)
	}
	return err
}
