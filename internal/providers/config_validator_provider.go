package providers

import (
	"github.com/gookit/validate"

	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct tag rules on the loaded config and returns the
// first violation.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors.OneError()
	}
	return nil
}
