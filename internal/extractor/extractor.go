// Package extractor maps a parsed credit report onto models.Report.
package extractor

import (
	"strings"

	"github.com/Dan9191/credit-report-service/internal/models"
	"github.com/Dan9191/credit-report-service/internal/xmltree"
)

// Extract builds a report from doc. It never fails: every missing or
// unparsable field falls back to "" or 0.
func Extract(doc *xmltree.Document) models.Report {
	var rootNode *xmltree.Node
	if doc != nil {
		rootNode = doc.Root
	}

	f := apply(rootNode, reportRules)
	report := models.Report{
		Name:        composeName(f.str(FieldFirstName), f.str(FieldMiddleName), f.str(FieldLastName)),
		MobilePhone: f.str(FieldMobilePhone),
		PAN:         f.str(FieldPAN),
		CreditScore: f.integer(FieldCreditScore),
		ReportSummary: models.ReportSummary{
			TotalAccounts:            f.integer(FieldTotalAccounts),
			ActiveAccounts:           f.integer(FieldActiveAccounts),
			ClosedAccounts:           f.integer(FieldClosedAccounts),
			CurrentBalanceAmount:     f.decimal(FieldCurrentBalanceAmount),
			SecuredAccountsAmount:    f.decimal(FieldSecuredAccountsAmount),
			UnsecuredAccountsAmount:  f.decimal(FieldUnsecuredAccountsAmount),
			Last7DaysCreditEnquiries: f.integer(FieldLast7DaysCreditEnquiries),
		},
	}

	nodes := rootNode.Sequence(AccountsPath...)
	report.CreditAccountsInformation = make([]models.Account, 0, len(nodes))
	for _, node := range nodes {
		report.CreditAccountsInformation = append(report.CreditAccountsInformation, extractAccount(node))
	}
	return report
}

func extractAccount(node *xmltree.Node) models.Account {
	f := apply(node, accountRules)
	return models.Account{
		CreditCard:     f.str(FieldCreditCard),
		Bank:           f.str(FieldBank),
		Address:        composeAddress(f.str(FieldAddressLine), f.str(FieldAddressCity)),
		AccountNumber:  f.str(FieldAccountNumber),
		AmountOverdue:  f.decimal(FieldAmountOverdue),
		CurrentBalance: f.decimal(FieldCurrentBalance),
	}
}

// composeName keeps the separator of an empty middle name, so a missing
// middle name leaves a double space between first and last name.
func composeName(first, middle, last string) string {
	return trimSpace(first + " " + middle + " " + last)
}

// composeAddress always keeps the ", " separator; two empty parts yield ",".
func composeAddress(line, city string) string {
	return trimSpace(line + ", " + city)
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}
