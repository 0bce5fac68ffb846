package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/credit-report-service/internal/models"
	"github.com/google/uuid"
)

// PGRepository stores reports in Postgres
type PGRepository struct {
	db    *sql.DB
	newID func() string
}

// NewPGRepository initializes a new Postgres repository
func NewPGRepository(db *sql.DB) *PGRepository {
	return &PGRepository{db: db, newID: uuid.NewString}
}

// Save inserts the report and its accounts in one transaction and returns the new record id
func (r *PGRepository) Save(ctx context.Context, report models.Report) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", storeError("begin transaction", err)
	}
	defer tx.Rollback()

	id := r.newID()
	query := `
		INSERT INTO credit_reports (
			id, name, mobile_phone, pan, credit_score,
			total_accounts, active_accounts, closed_accounts,
			current_balance_amount, secured_accounts_amount, unsecured_accounts_amount,
			last_7_days_credit_enquiries, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, CURRENT_TIMESTAMP)
		RETURNING seq`
	s := report.ReportSummary
	var seq int64
	err = tx.QueryRowContext(ctx, query,
		id, report.Name, report.MobilePhone, report.PAN, report.CreditScore,
		s.TotalAccounts, s.ActiveAccounts, s.ClosedAccounts,
		s.CurrentBalanceAmount, s.SecuredAccountsAmount, s.UnsecuredAccountsAmount,
		s.Last7DaysCreditEnquiries,
	).Scan(&seq)
	if err != nil {
		return "", storeError("create report", err)
	}

	accountQuery := `
		INSERT INTO credit_accounts (
			report_seq, position, credit_card, bank, address,
			account_number, amount_overdue, current_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, a := range report.CreditAccountsInformation {
		_, err := tx.ExecContext(ctx, accountQuery,
			seq, i, a.CreditCard, a.Bank, a.Address,
			a.AccountNumber, a.AmountOverdue, a.CurrentBalance,
		)
		if err != nil {
			return "", storeError(fmt.Sprintf("create account %d", i), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", storeError("commit report", err)
	}
	return id, nil
}

// FindAll returns every stored report in insertion order
func (r *PGRepository) FindAll(ctx context.Context) ([]models.StoredReport, error) {
	query := `
		SELECT seq, id, name, mobile_phone, pan, credit_score,
			total_accounts, active_accounts, closed_accounts,
			current_balance_amount, secured_accounts_amount, unsecured_accounts_amount,
			last_7_days_credit_enquiries, created_at
		FROM credit_reports
		ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("find reports", err)
	}
	defer rows.Close()

	reports := []models.StoredReport{}
	index := map[int64]int{}
	for rows.Next() {
		var seq int64
		var rep models.StoredReport
		s := &rep.ReportSummary
		err := rows.Scan(&seq, &rep.ID, &rep.Name, &rep.MobilePhone, &rep.PAN, &rep.CreditScore,
			&s.TotalAccounts, &s.ActiveAccounts, &s.ClosedAccounts,
			&s.CurrentBalanceAmount, &s.SecuredAccountsAmount, &s.UnsecuredAccountsAmount,
			&s.Last7DaysCreditEnquiries, &rep.CreatedAt)
		if err != nil {
			return nil, storeError("scan report", err)
		}
		rep.CreditAccountsInformation = []models.Account{}
		index[seq] = len(reports)
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("find reports", err)
	}
	if len(reports) == 0 {
		return reports, nil
	}

	if err := r.attachAccounts(ctx, reports, index); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *PGRepository) attachAccounts(ctx context.Context, reports []models.StoredReport, index map[int64]int) error {
	query := `
		SELECT report_seq, credit_card, bank, address, account_number, amount_overdue, current_balance
		FROM credit_accounts
		ORDER BY report_seq, position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return storeError("find accounts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var seq int64
		var a models.Account
		if err := rows.Scan(&seq, &a.CreditCard, &a.Bank, &a.Address, &a.AccountNumber, &a.AmountOverdue, &a.CurrentBalance); err != nil {
			return storeError("scan account", err)
		}
		// Accounts of reports inserted after the report query ran are skipped.
		i, ok := index[seq]
		if !ok {
			continue
		}
		reports[i].CreditAccountsInformation = append(reports[i].CreditAccountsInformation, a)
	}
	if err := rows.Err(); err != nil {
		return storeError("find accounts", err)
	}
	return nil
}
