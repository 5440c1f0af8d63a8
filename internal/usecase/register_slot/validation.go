package register_slot

import "fmt"

func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: student id is required", ErrValidation)
	}
	if req.PanelID <= 0 {
		return fmt.Errorf("%w: panel id is required", ErrValidation)
	}
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slot id is required", ErrValidation)
	}
	return nil
}
