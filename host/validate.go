package host

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/TWDickson/ObsidianSyncWASM/wireformat"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateMetadata checks describe output: name and ABI version present,
// version a valid semver.
func ValidateMetadata(md wireformat.Metadata) error {
	err := validate.Struct(md)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("metadata validation failed: %s", strings.Join(parts, "; "))
}
