package rdm_test

import "github.com/openlighting/rdmresponder/internal/rdm"

var (
	_ rdm.Responder = (*rdm.AckTimerResponder)(nil)
	_ rdm.Responder = (*rdm.AdvancedDimmerResponder)(nil)
	_ rdm.Responder = (*rdm.DimmerRootDevice)(nil)
	_ rdm.Responder = (*rdm.MovingLightResponder)(nil)
	_ rdm.Responder = (*rdm.NetworkResponder)(nil)
	_ rdm.Responder = (*rdm.SensorResponder)(nil)
)
