// Package po extracts structured purchase-order fields from document
// text using a fixed pipeline of independent best-effort rules.
package po

// DocumentType is the fixed document classification for this pipeline
const DocumentType = "PURCHASE_ORDER"

// ApprovalMethod is the fixed approval note attached to every record
const ApprovalMethod = "ELECTRONICALLY APPROVED. NO SIGNATURE REQUIRED"

// Record is the assembled purchase-order document. Every leaf field is
// independently optional: rules never depend on each other, so a
// record may mix extracted values with template constants.
type Record struct {
	Metadata              RecordMetadata        `json:"metadata"`
	OrderDetails          OrderDetails          `json:"order_details"`
	SupplierDetails       SupplierDetails       `json:"supplier_details"`
	ShipToDetails         ShipToDetails         `json:"ship_to_details"`
	AdministrativeDetails AdministrativeDetails `json:"administrative_details"`
	LineItems             []LineItem            `json:"line_items"`
	Totals                Totals                `json:"totals"`
	SpecialInstructions   map[string]string     `json:"special_instructions"`
	InvoicingInstructions map[string]string     `json:"invoicing_instructions"`
	TaxAndCompliance      TaxAndCompliance      `json:"tax_and_compliance"`
	TermsAndConditions    TermsAndConditions    `json:"terms_and_conditions"`
	Approval              Approval              `json:"approval"`
}

// RecordMetadata describes the document itself and the issuing company
type RecordMetadata struct {
	DocumentType   string `json:"document_type"`
	FileName       string `json:"file_name"`
	TotalPages     int    `json:"total_pages"`
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyPhone   string `json:"company_phone"`
}

// OrderDetails holds the PO identity and buyer contact fields
type OrderDetails struct {
	PONumber       string `json:"po_number"`
	PODate         string `json:"po_date"`
	RevisionNumber string `json:"revision_number"`
	RevisionDate   string `json:"revision_date"`
	BuyerContact   string `json:"buyer_contact"`
	BuyerPhone     string `json:"buyer_phone"`
	BuyerEmail     string `json:"buyer_email"`
}

// SupplierDetails holds the supplier identity fields
type SupplierDetails struct {
	Name               string `json:"name"`
	Address            string `json:"address"`
	ContactPersonPhone string `json:"contact_person_phone"`
	ContactPersonEmail string `json:"contact_person_email"`
	GSLNumber          string `json:"gsl_number"`
	SiteCode           string `json:"site_code"`
	SupplierCode       string `json:"supplier_code"`
	VendorGST          string `json:"vendor_gst"`
}

// ShipToDetails holds the delivery destination fields
type ShipToDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// AdministrativeDetails holds payment and logistics fields
type AdministrativeDetails struct {
	EmailInvoiceTo   string `json:"email_invoice_to"`
	Incoterms        string `json:"incoterms"`
	Currency         string `json:"currency"`
	PaymentTerms     string `json:"payment_terms"`
	ProjectNumber    string `json:"project_number"`
	SalesOrderNumber string `json:"sales_order_number"`
	ShippingVia      string `json:"shipping_via"`
}

// LineItem represents one ordered line. Quantity and the price fields
// are numbers when extracted and empty strings when absent, mirroring
// the per-field fallback semantics of the rest of the record.
type LineItem struct {
	LineNumber     string `json:"line_number"`
	PartNumber     string `json:"part_number"`
	Description    string `json:"description"`
	Quantity       any    `json:"quantity"`
	UOM            string `json:"uom"`
	Price          any    `json:"price"`
	PriceCurrency  string `json:"price_currency"`
	ExtendedPrice  any    `json:"extended_price"`
	Taxable        string `json:"taxable"`
	PromiseDate    string `json:"promise_date"`
	RequiredByDate string `json:"required_by_date"`
	HSNCode        string `json:"hsn_code"`
}

// Totals holds the order totals
type Totals struct {
	TotalExtendedNetPrice any    `json:"total_extended_net_price"`
	Currency              string `json:"currency"`
}

// TaxAndCompliance holds statutory declarations and registrations
type TaxAndCompliance struct {
	MSMEDDeclaration string `json:"msmed_declaration"`
	QualityDocuments string `json:"quality_documents"`
	PANCard          string `json:"pan_card"`
	GSTNNumber       string `json:"gstn_no"`
}

// TermsAndConditions holds the governing contractual terms
type TermsAndConditions struct {
	GoverningTerms    string   `json:"governing_terms"`
	Source            string   `json:"source"`
	OrderOfPrecedence []string `json:"order_of_precedence"`
}

// Approval describes how the order was approved
type Approval struct {
	Method string `json:"method"`
}
