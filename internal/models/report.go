package models

import "time"

// Report is the record extracted from one uploaded credit report
type Report struct {
	Name                      string        `json:"name"`
	MobilePhone               string        `json:"mobilePhone"`
	PAN                       string        `json:"pan"`
	CreditScore               int64         `json:"creditScore"`
	ReportSummary             ReportSummary `json:"reportSummary"`
	CreditAccountsInformation []Account     `json:"creditAccountsInformation"`
}

// ReportSummary holds the account counts and outstanding balances of a report
type ReportSummary struct {
	TotalAccounts            int64   `json:"totalAccounts"`
	ActiveAccounts           int64   `json:"activeAccounts"`
	ClosedAccounts           int64   `json:"closedAccounts"`
	CurrentBalanceAmount     float64 `json:"currentBalanceAmount"`
	SecuredAccountsAmount    float64 `json:"securedAccountsAmount"`
	UnsecuredAccountsAmount  float64 `json:"unsecuredAccountsAmount"`
	Last7DaysCreditEnquiries int64   `json:"last7DaysCreditEnquiries"`
}

// Account represents one credit account listed in a report
type Account struct {
	CreditCard     string  `json:"creditCard"`
	Bank           string  `json:"bank"`
	Address        string  `json:"address"`
	AccountNumber  string  `json:"accountNumber"`
	AmountOverdue  float64 `json:"amountOverdue"`
	CurrentBalance float64 `json:"currentBalance"`
}

// StoredReport is a persisted report as returned by the record store
type StoredReport struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Report
}

// Clone returns a copy of r that shares no slices with it.
func (r Report) Clone() Report {
	out := r
	out.CreditAccountsInformation = make([]Account, len(r.CreditAccountsInformation))
	copy(out.CreditAccountsInformation, r.CreditAccountsInformation)
	return out
}
