package config

//
// validate.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

//nolint:gochecknoglobals
var structValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

// ValidateStruct check `validate` tags of value; first violation become user message
// "invalid <what>: <field> (<tag>)".
func ValidateStruct(what string, value any) error {
	err := structValidator().Struct(value)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]

		return aerr.ApplyFor(aerr.ErrValidation, err, "",
			fmt.Sprintf("invalid %s: %s (%s)", what, fe.Field(), fe.Tag()))
	}

	return aerr.ApplyFor(aerr.ErrInvalidConf, err, "validate "+what+" failed")
}
