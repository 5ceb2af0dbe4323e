package email

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConsoleSender_LogsAndSucceeds(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	s := NewConsoleSender(log)

	if err := s.SendInvestmentReceipt("investor@example.com", "abc123", 5_000_000); err != nil {
		t.Fatalf("SendInvestmentReceipt: %v", err)
	}
	if err := s.SendAgreementEmail("investor@example.com", "abc123", "https://storage.example.com/letter.pdf"); err != nil {
		t.Fatalf("SendAgreementEmail: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "investment receipt") || !strings.Contains(out, "agreement email") {
		t.Fatalf("log output missing entries: %s", out)
	}
	if !strings.Contains(out, "investor@example.com") {
		t.Fatalf("log output missing recipient: %s", out)
	}
}
