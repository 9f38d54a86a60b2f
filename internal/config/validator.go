// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `loader.go` calls `validateFile` right after koanf unmarshals the
// settings tree.  The rules are range checks on raw numbers (no negative
// counts, ports within 0..65535).  A failure is reported as ErrParse since
// the value is malformed for its field, not a cross-field problem.
//
// Cross-field invariants (stats url, network name, peer list) live in
// `config.go` because their order and messages are fixed.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = newValidator()

// newValidator reports fields by their koanf key so errors read like the
// settings file ("http.server.port"), not like Go identifiers.
func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
	})
	return val
}

//
// public API
//

// validateFile returns nil or one error that names every offending key.
func validateFile(f *fileSettings) error {
	err := v.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "fileSettings.")
		fields = append(fields, fmt.Sprintf("%s (%s=%s, got %v)",
			key, fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("value out of range: %s", strings.Join(fields, "; "))
}
