package providers

import (
	"sid/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks every config section against its struct tags.
// Sections are validated one by one so the first error names the
// offending field instead of a nested path.
func (cv *CnfValidator) Validate() error {
	sections := []interface{}{
		&cv.conf.WebServer,
		&cv.conf.Upstream,
		&cv.conf.Freshness,
		&cv.conf.Logger,
	}

	for _, section := range sections {
		v := validate.Struct(section)
		if !v.Validate() {
			return v.Errors.OneError()
		}
	}
	return nil
}
