package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	devbencherrors "github.com/devbench/devbench/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern     = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	moduleNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	sshGitPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+:[a-zA-Z0-9._/~-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("module_name", func(fl validator.FieldLevel) bool {
			return moduleNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("repo_url", func(fl validator.FieldLevel) bool {
			return isRepoURL(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

func isRepoURL(urlStr string) bool {
	if strings.TrimSpace(urlStr) == "" {
		return false
	}

	if parsedURL, err := url.Parse(urlStr); err == nil {
		scheme := strings.ToLower(parsedURL.Scheme)
		if (scheme == "http" || scheme == "https") && parsedURL.Host != "" {
			return true
		}
	}

	return sshGitPattern.MatchString(urlStr)
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return devbencherrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(cfg.Modules))
	for i, mod := range cfg.Modules {
		if prev, exists := seen[mod.Name]; exists {
			return devbencherrors.NewValidationError(
				fmt.Sprintf("modules[%d].name", i),
				fmt.Sprintf("duplicate module name %q (first declared at modules[%d])", mod.Name, prev),
				nil,
			)
		}
		seen[mod.Name] = i
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return devbencherrors.NewValidationError(field, msg, err)
	}

	return devbencherrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
