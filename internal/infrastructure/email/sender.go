package email

import (
	"github.com/sirupsen/logrus"
)

// ConsoleSender logs outgoing emails instead of delivering them. Delivery is
// an external collaborator's concern; the engine only signals it.
type ConsoleSender struct {
	log *logrus.Logger
}

func NewConsoleSender(log *logrus.Logger) *ConsoleSender {
	return &ConsoleSender{log: log}
}

// SendInvestmentReceipt notifies an investor that their contribution was
// accepted.
func (s *ConsoleSender) SendInvestmentReceipt(email, loanID string, amount int64) error {
	s.log.WithFields(logrus.Fields{
		"email":   email,
		"loan_id": loanID,
		"amount":  amount,
	}).Info("sending investment receipt")
	return nil
}

// SendAgreementEmail sends the agreement letter link to an investor once the
// loan is fully funded.
func (s *ConsoleSender) SendAgreementEmail(email, loanID, agreementURL string) error {
	s.log.WithFields(logrus.Fields{
		"email":         email,
		"loan_id":       loanID,
		"agreement_url": agreementURL,
	}).Info("sending agreement email")
	return nil
}
