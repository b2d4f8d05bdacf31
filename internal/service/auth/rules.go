package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hosi121/Bansho-sub000/internal/config"
)

var (
	emailRules = []validation.Rule{
		validation.Required.Error("Invalid email address"),
		is.EmailFormat.Error("Invalid email address"),
	}

	newPasswordRules = []validation.Rule{
		validation.Required.Error("Password must be at least 8 characters"),
		validation.RuneLength(config.MinPasswordLength, 0).Error("Password must be at least 8 characters"),
		validation.RuneLength(0, config.MaxPasswordLength).Error("Password must be less than 100 characters"),
	}

	nameRules = []validation.Rule{
		validation.Required.Error("Name is required"),
		validation.RuneLength(1, config.MaxUserNameLength).Error("Name must be less than 100 characters"),
	}
)
