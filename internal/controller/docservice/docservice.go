package docservice

// ControllerV1 implements the v1 document API.
type ControllerV1 struct{}

// NewV1 creates the v1 document controller.
func NewV1() *ControllerV1 {
	return &ControllerV1{}
}
