package po

import (
	"strings"
)

// Extract applies a rule to the text and substitutes def whenever the
// rule fails, panics, or comes back empty. A single broken rule must
// never abort assembly of the whole record.
func Extract(rule Rule, text string, def any) (result any) {
	defer func() {
		if r := recover(); r != nil {
			result = def
		}
	}()

	value, err := rule(text)
	if err != nil || value == nil {
		return def
	}
	if s, ok := value.(string); ok && s == "" {
		return def
	}
	return value
}

// fieldRule pairs a rule with its per-field default
type fieldRule struct {
	rule Rule
	def  any
}

// fieldRules maps every output field to its rule and default. The
// rules are mutually independent; iteration order never matters.
var fieldRules = map[string]fieldRule{
	"metadata.company_name":    {ExtractCompanyName, ""},
	"metadata.company_address": {ExtractCompanyAddress, ""},
	"metadata.company_phone":   {ExtractCompanyPhone, ""},

	"order_details.po_number":       {ExtractPONumber, ""},
	"order_details.po_date":         {DateRule("PO Date"), ""},
	"order_details.revision_number": {ExtractRevisionNumber, "0"},
	"order_details.revision_date":   {DateRule("Revision Date"), ""},
	"order_details.buyer_contact":   {ExtractBuyerContact, ""},
	"order_details.buyer_phone":     {ExtractBuyerPhone, ""},
	"order_details.buyer_email":     {ExtractBuyerEmail, ""},

	"supplier_details.name":                 {ExtractSupplierName, ""},
	"supplier_details.address":              {ExtractSupplierAddress, ""},
	"supplier_details.contact_person_phone": {ExtractSupplierPhone, ""},
	"supplier_details.contact_person_email": {ExtractSupplierEmail, ""},
	"supplier_details.gsl_number":           {ExtractGSLNumber, ""},
	"supplier_details.site_code":            {ExtractSiteCode, ""},
	"supplier_details.supplier_code":        {ExtractSupplierCode, ""},
	"supplier_details.vendor_gst":           {ExtractVendorGST, ""},

	"ship_to_details.name":    {ExtractShipToName, ""},
	"ship_to_details.address": {ExtractShipToAddress, ""},

	"administrative_details.email_invoice_to":   {ExtractInvoiceEmail, ""},
	"administrative_details.incoterms":          {ExtractIncoterms, ""},
	"administrative_details.currency":           {ExtractCurrency, ""},
	"administrative_details.payment_terms":      {ExtractPaymentTerms, ""},
	"administrative_details.project_number":     {ExtractProjectNumber, ""},
	"administrative_details.sales_order_number": {ExtractSalesOrderNumber, ""},
	"administrative_details.shipping_via":       {ExtractShippingVia, ""},

	"line_items": {ExtractLineItems, []LineItem{{}}},

	"totals.total_extended_net_price": {ExtractTotalAmount, ""},
	"totals.currency":                 {ExtractCurrency, ""},

	"special_instructions":   {ExtractSpecialInstructions, map[string]string{}},
	"invoicing_instructions": {ExtractInvoicingInstructions, map[string]string{}},

	"tax_and_compliance.msmed_declaration": {ExtractMSMEDDeclaration, ""},
	"tax_and_compliance.quality_documents": {ExtractQualityDocuments, ""},
	"tax_and_compliance.pan_card":          {ExtractPANCard, ""},
	"tax_and_compliance.gstn_no":           {ExtractGSTNNumber, ""},

	"terms_and_conditions.governing_terms": {ExtractGoverningTerms, ""},
}

// field runs the named field's rule under the safe-extraction wrapper
func field(name, text string) any {
	fr, ok := fieldRules[name]
	if !ok {
		return nil
	}
	return Extract(fr.rule, text, fr.def)
}

// Parse assembles the purchase-order record from extracted text. Each
// field is extracted independently against the same input, so partial
// matches degrade field by field rather than failing the record.
func Parse(text, filename string) *Record {
	return &Record{
		Metadata: RecordMetadata{
			DocumentType:   DocumentType,
			FileName:       filename,
			TotalPages:     countPages(text),
			CompanyName:    asString(field("metadata.company_name", text)),
			CompanyAddress: asString(field("metadata.company_address", text)),
			CompanyPhone:   asString(field("metadata.company_phone", text)),
		},
		OrderDetails: OrderDetails{
			PONumber:       asString(field("order_details.po_number", text)),
			PODate:         asString(field("order_details.po_date", text)),
			RevisionNumber: asString(field("order_details.revision_number", text)),
			RevisionDate:   asString(field("order_details.revision_date", text)),
			BuyerContact:   asString(field("order_details.buyer_contact", text)),
			BuyerPhone:     asString(field("order_details.buyer_phone", text)),
			BuyerEmail:     asString(field("order_details.buyer_email", text)),
		},
		SupplierDetails: SupplierDetails{
			Name:               asString(field("supplier_details.name", text)),
			Address:            asString(field("supplier_details.address", text)),
			ContactPersonPhone: asString(field("supplier_details.contact_person_phone", text)),
			ContactPersonEmail: asString(field("supplier_details.contact_person_email", text)),
			GSLNumber:          asString(field("supplier_details.gsl_number", text)),
			SiteCode:           asString(field("supplier_details.site_code", text)),
			SupplierCode:       asString(field("supplier_details.supplier_code", text)),
			VendorGST:          asString(field("supplier_details.vendor_gst", text)),
		},
		ShipToDetails: ShipToDetails{
			Name:    asString(field("ship_to_details.name", text)),
			Address: asString(field("ship_to_details.address", text)),
		},
		AdministrativeDetails: AdministrativeDetails{
			EmailInvoiceTo:   asString(field("administrative_details.email_invoice_to", text)),
			Incoterms:        asString(field("administrative_details.incoterms", text)),
			Currency:         asString(field("administrative_details.currency", text)),
			PaymentTerms:     asString(field("administrative_details.payment_terms", text)),
			ProjectNumber:    asString(field("administrative_details.project_number", text)),
			SalesOrderNumber: asString(field("administrative_details.sales_order_number", text)),
			ShippingVia:      asString(field("administrative_details.shipping_via", text)),
		},
		LineItems: asLineItems(field("line_items", text)),
		Totals: Totals{
			TotalExtendedNetPrice: field("totals.total_extended_net_price", text),
			Currency:              asString(field("totals.currency", text)),
		},
		SpecialInstructions:   asStringMap(field("special_instructions", text)),
		InvoicingInstructions: asStringMap(field("invoicing_instructions", text)),
		TaxAndCompliance: TaxAndCompliance{
			MSMEDDeclaration: asString(field("tax_and_compliance.msmed_declaration", text)),
			QualityDocuments: asString(field("tax_and_compliance.quality_documents", text)),
			PANCard:          asString(field("tax_and_compliance.pan_card", text)),
			GSTNNumber:       asString(field("tax_and_compliance.gstn_no", text)),
		},
		TermsAndConditions: TermsAndConditions{
			GoverningTerms:    asString(field("terms_and_conditions.governing_terms", text)),
			Source:            "",
			OrderOfPrecedence: []string{},
		},
		Approval: Approval{
			Method: ApprovalMethod,
		},
	}
}

// countPages counts form feeds between pages, defaulting to one page
// for text without page breaks
func countPages(text string) int {
	if strings.Contains(text, "\f") {
		return len(strings.Split(text, "\f"))
	}
	return 1
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asLineItems(v any) []LineItem {
	items, _ := v.([]LineItem)
	return items
}

func asStringMap(v any) map[string]string {
	m, _ := v.(map[string]string)
	return m
}
