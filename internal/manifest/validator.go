package manifest

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

var componentIDPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator used
// across the manifest package, grounded on the teacher's
// validator_instance.go pattern of a lazily-built singleton with custom
// field tags.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("component_id", func(fl validator.FieldLevel) bool {
			return componentIDPattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks structural constraints beyond what struct tags alone
// capture: component id uniqueness, and that connections only reference
// declared components (spec §6 "Configuration source").
func Validate(m *Manifest) error {
	if err := validatorInstance().Struct(m); err != nil {
		return nxerrors.NewValidationError("manifest", "struct validation failed", err)
	}

	seen := make(map[string]bool, len(m.Components))
	for _, c := range m.Components {
		if seen[c.ComponentID] {
			return nxerrors.NewValidationError("components", "duplicate component_id: "+c.ComponentID, nil)
		}
		seen[c.ComponentID] = true
	}

	for _, conn := range m.Connections {
		if !seen[conn.Source] {
			return nxerrors.NewValidationError("connections", "unknown connection source: "+conn.Source, nil)
		}
		if !seen[conn.Target] {
			return nxerrors.NewValidationError("connections", "unknown connection target: "+conn.Target, nil)
		}
	}

	return nil
}
