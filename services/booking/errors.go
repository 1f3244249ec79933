package booking

import (
	"errors"

	"oasis/database/repository"
	"oasis/utils"
)

var (
	ErrAlreadyBlocked         = &utils.ConflictError{Message: "date is already blocked"}
	ErrFullDayBlock           = &utils.ConflictError{Message: "date is blocked for the full day; update or delete the block instead"}
	ErrConcurrentModification = &utils.ConflictError{Message: "concurrent modification, please retry"}
	ErrSlotTaken              = &utils.ConflictError{Message: "this time slot just got taken, please choose another"}
	ErrSlotBooked             = &utils.ConflictError{Message: "this time slot is already booked"}
	ErrBookingDisabled        = &utils.ConflictError{Message: "online booking is currently disabled"}
)

// notFound converts repository.ErrNotFound into the service taxonomy.
func notFound(err error, resource, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFoundError(resource, id)
	}
	return err
}
