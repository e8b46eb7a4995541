package services

// ServiceContainer bundles every service facade for handler wiring.
type ServiceContainer struct {
	Account  AccountSvcFacade
	Ledger   LedgerSvcFacade
	Purchase PurchaseSvcFacade
	Receipt  ReceiptSvcFacade
	Payment  PaymentSvcFacade
}
