package xmltree

import (
	"errors"
	"strings"
	"testing"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<INProfileResponse>
  <SCORE>
    <BureauScore>750</BureauScore>
  </SCORE>
  <CAIS_Account>
    <CAIS_Account_DETAILS><Account_Number>A1</Account_Number></CAIS_Account_DETAILS>
    <CAIS_Account_DETAILS><Account_Number>A2</Account_Number></CAIS_Account_DETAILS>
    <CAIS_Account_DETAILS><Account_Number>A3</Account_Number></CAIS_Account_DETAILS>
  </CAIS_Account>
  <Empty/>
  <Padded>  text  </Padded>
</INProfileResponse>`

func TestParseBuildsTree(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := doc.String("INProfileResponse", "SCORE", "BureauScore"); got != "750" {
		t.Fatalf("expected score 750, got %q", got)
	}
	if got := doc.String("INProfileResponse", "Empty"); got != "" {
		t.Fatalf("expected empty leaf, got %q", got)
	}
	if got := doc.String("INProfileResponse", "Padded"); got != "  text  " {
		t.Fatalf("expected untrimmed text, got %q", got)
	}

	accounts := doc.Sequence("INProfileResponse", "CAIS_Account", "CAIS_Account_DETAILS")
	if len(accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accounts))
	}
	for i, want := range []string{"A1", "A2", "A3"} {
		if got := accounts[i].String("Account_Number"); got != want {
			t.Fatalf("account %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestParseDropsNamespacePrefix(t *testing.T) {
	doc, err := Parse([]byte(`<ns:Root xmlns:ns="urn:x"><ns:Value>1</ns:Value></ns:Root>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.String("Root", "Value"); got != "1" {
		t.Fatalf("expected 1, got %q", got)
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"whitespace": "   \n ",
		"mismatched": "<a><b></a>",
		"unclosed":   "<a><b>1</b>",
		"plain text": "not xml at all",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]byte(input))
			if err == nil {
				t.Fatalf("expected error, got document %+v", doc)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if got := doc.String("INProfileResponse", "SCORE", "BureauScore"); got != "750" {
		t.Fatalf("expected 750, got %q", got)
	}
}
