package services

import (
	portsrepo "github.com/snngymn-development/modatasar-m/internal/core/ports/repositories"
	portssvc "github.com/snngymn-development/modatasar-m/internal/core/ports/services"
	"github.com/snngymn-development/modatasar-m/pkg/config"
)

// NewServiceContainer wires every service with its repositories. The payment
// tracker mirrors into the ledger only when both bridge accounts are
// configured; otherwise payments move the counter alone.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo, repos.AccountRepo)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo)
	container.Receipt = NewReceiptService(repos.PurchaseRepo, cfg.DefaultWarehouse)

	if cfg.PaymentCashAccountID != "" && cfg.PaymentAPAccountID != "" {
		ledgerPoster := container.Ledger.(portssvc.LedgerPoster)
		container.Payment = NewPaymentServiceWithLedger(repos.PurchaseRepo, ledgerPoster, cfg.PaymentCashAccountID, cfg.PaymentAPAccountID)
	} else {
		container.Payment = NewPaymentService(repos.PurchaseRepo)
	}

	return container
}
