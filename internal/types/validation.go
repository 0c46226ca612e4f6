package types

import "strings"

// Local preconditions only; the server remains the authority on everything
// it can check itself.

const minPasswordLen = 8

// ValidateCredentials checks the password-path login inputs.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	return nil
}

// ValidateRegistration checks registration inputs; failures here never
// reach the network.
func ValidateRegistration(email, password, confirm string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if len(password) < minPasswordLen {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	if password != confirm {
		return &ValidationError{Field: "confirmPassword", Reason: "passwords do not match"}
	}
	return nil
}

// ValidateSecondFactorCode checks a login challenge answer: 6 characters.
func ValidateSecondFactorCode(code string) error {
	if len(code) != 6 {
		return &ValidationError{Field: "code", Reason: "must be 6 characters"}
	}
	return nil
}

// ValidateDigitCode checks an enrollment/disable code: exactly 6 digits.
func ValidateDigitCode(code string) error {
	if len(code) != 6 {
		return &ValidationError{Field: "code", Reason: "must be 6 digits"}
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return &ValidationError{Field: "code", Reason: "must be 6 digits"}
		}
	}
	return nil
}
