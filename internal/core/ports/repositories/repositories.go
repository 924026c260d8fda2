package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	InvoiceRepo       InvoiceRepositoryFacade
	PartyRepo         PartyRepositoryFacade
	TransactionRepo   TransactionRepositoryFacade
	PaymentIntentRepo PaymentIntentRepositoryFacade
}
