package handlers

import (
	"errors"
	"strings"

	"github.com/Werneck0live/painel-contabil/internal/models"
	"github.com/Werneck0live/painel-contabil/internal/utils"
)

var (
	complexityLevels = []string{models.ComplexityLow, models.ComplexityMedium, models.ComplexityHigh}
	clientClasses    = []string{"Executive", "VIP", "Diamond"}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// CNPJ/CPF é opcional; quando vier, precisa ter formato de CPF (11) ou CNPJ (14).
func validateTaxID(taxID string) error {
	if taxID == "" {
		return nil
	}
	if !utils.ValidateTaxID(utils.SanitizeTaxID(taxID)) {
		return errors.New("invalid taxId")
	}
	return nil
}

func validateCreateDTO(d CompanyCreateDTO) error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	if err := validateTaxID(strings.TrimSpace(d.TaxID)); err != nil {
		return err
	}
	if d.HonoraryValue < 0 {
		return errors.New("honoraryValue must be >= 0")
	}
	if d.ComplexityLevel != "" && !oneOf(d.ComplexityLevel, complexityLevels) {
		return errors.New("complexityLevel must be Low, Medium or High")
	}
	if d.ClientClass != "" && !oneOf(d.ClientClass, clientClasses) {
		return errors.New("clientClass must be Executive, VIP or Diamond")
	}
	return nil
}

func validatePutDTO(d CompanyPutDTO) error {
	return validateCreateDTO(d)
}

func validateUpdateDTO(d CompanyPatchDTO) error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if d.TaxID != nil {
		if err := validateTaxID(strings.TrimSpace(*d.TaxID)); err != nil {
			return err
		}
	}
	if d.HonoraryValue != nil && *d.HonoraryValue < 0 {
		return errors.New("honoraryValue must be >= 0")
	}
	if d.ComplexityLevel != nil && *d.ComplexityLevel != "" && !oneOf(*d.ComplexityLevel, complexityLevels) {
		return errors.New("complexityLevel must be Low, Medium or High")
	}
	if d.ClientClass != nil && *d.ClientClass != "" && !oneOf(*d.ClientClass, clientClasses) {
		return errors.New("clientClass must be Executive, VIP or Diamond")
	}
	return nil
}
