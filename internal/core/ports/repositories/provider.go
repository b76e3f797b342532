package repositories

// RepositoryProvider holds instances of all repository facades. Built once at
// startup and handed to the service layer.
type RepositoryProvider struct {
	MortgageRepo MortgageRepositoryFacade
	PropertyRepo PropertyRepositoryFacade
	UserRepo     UserRepositoryFacade
	LedgerRepo   LedgerRepositoryFacade
}
