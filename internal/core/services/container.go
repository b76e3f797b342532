package services

import (
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
)

// NewServiceContainer wires the repository provider into the full service
// container used by the handlers.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	propertySvc := NewPropertyService(repos.PropertyRepo)
	userSvc := NewUserService(repos.UserRepo)
	ledgerSvc := NewLedgerService(repos.LedgerRepo)
	mortgageSvc := NewMortgageService(repos.MortgageRepo, propertySvc, userSvc)

	return &portssvc.ServiceContainer{
		Mortgage: mortgageSvc,
		Property: propertySvc,
		User:     userSvc,
		Ledger:   ledgerSvc,
	}
}
