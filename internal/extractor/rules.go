package extractor

import "github.com/Dan9191/credit-report-service/internal/xmltree"

// Field names produced by the rule tables.
const (
	FieldFirstName                = "firstName"
	FieldMiddleName               = "middleName"
	FieldLastName                 = "lastName"
	FieldMobilePhone              = "mobilePhone"
	FieldPAN                      = "pan"
	FieldCreditScore              = "creditScore"
	FieldTotalAccounts            = "totalAccounts"
	FieldActiveAccounts           = "activeAccounts"
	FieldClosedAccounts           = "closedAccounts"
	FieldCurrentBalanceAmount     = "currentBalanceAmount"
	FieldSecuredAccountsAmount    = "securedAccountsAmount"
	FieldUnsecuredAccountsAmount  = "unsecuredAccountsAmount"
	FieldLast7DaysCreditEnquiries = "last7DaysCreditEnquiries"

	FieldCreditCard     = "creditCard"
	FieldBank           = "bank"
	FieldAddressLine    = "addressLine"
	FieldAddressCity    = "addressCity"
	FieldAccountNumber  = "accountNumber"
	FieldAmountOverdue  = "amountOverdue"
	FieldCurrentBalance = "currentBalance"
)

// Rule maps the leaf at Path to Field using Coercion.
type Rule struct {
	Field    string
	Path     []string
	Coercion Coercion
}

var (
	root        = []string{"INProfileResponse"}
	applicant   = join(root, "Current_Application", "Current_Application_Details", "Current_Applicant_Details")
	caisAccount = join(root, "CAIS_Account")
	caisSummary = join(caisAccount, "CAIS_Summary")
	creditTotal = join(caisSummary, "Credit_Account")
	outstanding = join(caisSummary, "Total_Outstanding_Balance")

	// AccountsPath locates the sequence of account nodes.
	AccountsPath = join(caisAccount, "CAIS_Account_DETAILS")
)

// reportRules are resolved from the document root.
var reportRules = []Rule{
	{FieldFirstName, join(applicant, "First_Name"), AsString},
	{FieldMiddleName, join(applicant, "Middle_Name1"), AsString},
	{FieldLastName, join(applicant, "Last_Name"), AsString},
	{FieldMobilePhone, join(applicant, "MobilePhoneNumber"), AsString},
	{FieldPAN, join(caisAccount, "CAIS_Holder_ID_Details", "Income_TAX_PAN"), AsString},
	{FieldCreditScore, join(root, "SCORE", "BureauScore"), AsInteger},
	{FieldTotalAccounts, join(creditTotal, "CreditAccountTotal"), AsInteger},
	{FieldActiveAccounts, join(creditTotal, "CreditAccountActive"), AsInteger},
	{FieldClosedAccounts, join(creditTotal, "CreditAccountClosed"), AsInteger},
	{FieldCurrentBalanceAmount, join(outstanding, "Outstanding_Balance_All"), AsDecimal},
	{FieldSecuredAccountsAmount, join(outstanding, "Outstanding_Balance_Secured"), AsDecimal},
	{FieldUnsecuredAccountsAmount, join(outstanding, "Outstanding_Balance_UnSecured"), AsDecimal},
	{FieldLast7DaysCreditEnquiries, join(root, "TotalCAPS_Summary", "TotalCAPSLast7Days"), AsInteger},
}

// accountRules are resolved from each node of AccountsPath.
var accountRules = []Rule{
	{FieldCreditCard, []string{"Portfolio_Type"}, AsString},
	{FieldBank, []string{"Subscriber_Name"}, AsTrimmedString},
	{FieldAddressLine, []string{"CAIS_Holder_Address_Details", "First_Line_Of_Address_non_normalized"}, AsString},
	{FieldAddressCity, []string{"CAIS_Holder_Address_Details", "City_non_normalized"}, AsString},
	{FieldAccountNumber, []string{"Account_Number"}, AsString},
	{FieldAmountOverdue, []string{"Amount_Past_Due"}, AsDecimal},
	{FieldCurrentBalance, []string{"Current_Balance"}, AsDecimal},
}

// ReportRules returns a copy of the rules applied to the document root.
func ReportRules() []Rule {
	return cloneRules(reportRules)
}

// AccountRules returns a copy of the rules applied to each account node.
func AccountRules() []Rule {
	return cloneRules(accountRules)
}

type value struct {
	str string
	i   int64
	f   float64
}

type fields map[string]value

func (f fields) str(name string) string { return f[name].str }

func (f fields) integer(name string) int64 { return f[name].i }

func (f fields) decimal(name string) float64 { return f[name].f }

// apply resolves every rule against node. Fields whose path is missing get
// the zero value for their coercion.
func apply(node *xmltree.Node, rules []Rule) fields {
	out := make(fields, len(rules))
	for _, r := range rules {
		raw := node.String(r.Path...)
		var v value
		switch r.Coercion {
		case AsString:
			v.str = raw
		case AsTrimmedString:
			v.str = trimSpace(raw)
		case AsInteger:
			v.i = parseInteger(raw)
		case AsDecimal:
			v.f = parseDecimal(raw)
		}
		out[r.Field] = v
	}
	return out
}

func join(base []string, names ...string) []string {
	out := make([]string, 0, len(base)+len(names))
	out = append(out, base...)
	return append(out, names...)
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = r
		out[i].Path = append([]string(nil), r.Path...)
	}
	return out
}
