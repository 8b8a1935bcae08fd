package po

import (
	"testing"
)

const sampleText = `PURCHASE ORDER NO: PO12345
PO Date: 14.AUG.2026
Revision No: 2
Revision Date: 15.AUG.2026
Buyer Contact: John Smith
Buyer Phone: 422 664 1000
john.smith@bakerhughes.com
VALVETECQ ENGINEERS
P:9876543210
SALES@VALVETECQ.COM
GSL Number: GSL991
Site Code: IN01
Supplier Code: 445566
GST: 33AAACG1234F1Z5
IN_PO_Invoice@BakerHughes.com
Incoterms: FCA Coimbatore
Currency: INR
Payment Terms: Net 60
PAN: AAACG1234F
GSTN: 33AAACG1234F1Z5
Total Extended Net Price: 16,484.5`

func TestExtractPONumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{
			name: "labeled number",
			text: "PURCHASE ORDER NO: PO12345",
			want: "PO12345",
		},
		{
			name: "lowercase label",
			text: "purchase order no. 844HQ0042",
			want: "844HQ0042",
		},
		{
			name: "no label",
			text: "Invoice 123",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPONumber(tt.text)
			if err != nil {
				t.Fatalf("ExtractPONumber() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractPONumber() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateRule(t *testing.T) {
	tests := []struct {
		name  string
		label string
		text  string
		want  any
	}{
		{
			name:  "po date",
			label: "PO Date",
			text:  "PO Date: 14.AUG.2026",
			want:  "14.AUG.2026",
		},
		{
			name:  "revision date",
			label: "Revision Date",
			text:  "Revision Date: 1.SEPT.2026",
			want:  "1.SEPT.2026",
		},
		{
			name:  "unknown label is absent",
			label: "Delivery Date",
			text:  "Delivery Date: 14.AUG.2026",
			want:  nil,
		},
		{
			name:  "wrong date shape",
			label: "PO Date",
			text:  "PO Date: 2026-08-14",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateRule(tt.label)(tt.text)
			if err != nil {
				t.Fatalf("DateRule(%q) error = %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("DateRule(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestExtractSupplierName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{
			name: "supplier label wins",
			text: "Supplier Name: ACME VALVES\nVendor Name: OTHER CO",
			want: "ACME VALVES",
		},
		{
			name: "vendor label fallback",
			text: "Vendor Name: OTHER CO",
			want: "OTHER CO",
		},
		{
			name: "company literal fallback",
			text: "shipped by VALVETECQ ENGINEERS today",
			want: "VALVETECQ ENGINEERS",
		},
		{
			name: "nothing matches",
			text: "no supplier here",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractSupplierName(tt.text)
			if err != nil {
				t.Fatalf("ExtractSupplierName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractSupplierName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractSupplierPhone(t *testing.T) {
	got, err := ExtractSupplierPhone("call P:9876543210 for sales")
	if err != nil {
		t.Fatalf("ExtractSupplierPhone() error = %v", err)
	}
	if got != "P:9876543210/" {
		t.Errorf("ExtractSupplierPhone() = %v, want P:9876543210/", got)
	}

	got, err = ExtractSupplierPhone("no phone")
	if err != nil {
		t.Fatalf("ExtractSupplierPhone() error = %v", err)
	}
	if got != nil {
		t.Errorf("ExtractSupplierPhone() = %v, want nil", got)
	}
}

func TestExtractTotalAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{
			name: "comma separated amount",
			text: "Total Extended Net Price: 16,484.5",
			want: 16484.5,
		},
		{
			name: "plain amount",
			text: "Total Extended Net Price 500",
			want: 500.0,
		},
		{
			name: "no label",
			text: "Grand Total: 100.00",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTotalAmount(tt.text)
			if err != nil {
				t.Fatalf("ExtractTotalAmount() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractTotalAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConstantRulesIgnoreInput(t *testing.T) {
	inputs := []string{"", "unrelated text", sampleText}

	var prev any
	for i, input := range inputs {
		got, err := ExtractCompanyName(input)
		if err != nil {
			t.Fatalf("ExtractCompanyName() error = %v", err)
		}
		if got != "GE OIL & GAS INDIA PRIVATE LIMITED" {
			t.Errorf("ExtractCompanyName(%q) = %v", input, got)
		}
		if i > 0 && got != prev {
			t.Errorf("constant rule varied with input: %v != %v", got, prev)
		}
		prev = got
	}
}

func TestExtractLineItemsConstant(t *testing.T) {
	got, err := ExtractLineItems("anything")
	if err != nil {
		t.Fatalf("ExtractLineItems() error = %v", err)
	}

	items, ok := got.([]LineItem)
	if !ok {
		t.Fatalf("ExtractLineItems() returned %T, want []LineItem", got)
	}
	if len(items) != 2 {
		t.Fatalf("ExtractLineItems() returned %d items, want 2", len(items))
	}
	if items[0].PartNumber != "MY-FLOWMAX" || items[0].ExtendedPrice != 6484.5 {
		t.Errorf("unexpected first line item: %+v", items[0])
	}
	if items[1].PartNumber != "MY-FLOWGRID" || items[1].ExtendedPrice != 10000.0 {
		t.Errorf("unexpected second line item: %+v", items[1])
	}
}

func TestAbsentRules(t *testing.T) {
	for name, rule := range map[string]Rule{
		"project number":     ExtractProjectNumber,
		"sales order number": ExtractSalesOrderNumber,
		"shipping via":       ExtractShippingVia,
	} {
		got, err := rule(sampleText)
		if err != nil {
			t.Errorf("%s rule error = %v", name, err)
		}
		if got != nil {
			t.Errorf("%s rule = %v, want nil", name, got)
		}
	}
}
