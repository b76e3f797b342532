package pgsql

import (
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	mortgageRepo := newPgxMortgageRepository(dbPool)
	propertyRepo := newPgxPropertyRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)

	return portsrepo.RepositoryProvider{
		MortgageRepo: mortgageRepo,
		PropertyRepo: propertyRepo,
		UserRepo:     userRepo,
		LedgerRepo:   ledgerRepo,
	}
}
