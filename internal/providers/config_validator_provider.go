package providers

import (
	"errors"

	"github.com/gookit/validate"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	target interface{}
}

// NewCnfValidator validates any struct carrying gookit `validate` tags.
func NewCnfValidator(target interface{}) CnfValidatorInterface {
	return &CnfValidator{target: target}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.target)
	v.StopOnError = false
	if v.Validate() {
		return nil
	}
	return errors.New("config validation failed: " + v.Errors.String())
}
