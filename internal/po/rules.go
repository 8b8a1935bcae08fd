package po

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule is a pure field extractor over the full document text. A rule
// reports absence by returning nil, never by failing the record.
type Rule func(text string) (any, error)

// Compiled patterns for the pattern rules. Every pattern runs
// case-insensitively over the raw text.
var (
	poNumberRe       = regexp.MustCompile(`(?i)PURCHASE ORDER NO[.:\s]*([A-Z0-9]+)`)
	revisionNumberRe = regexp.MustCompile(`(?i)Revision No[.:\s]*([\d]+)`)
	buyerContactRe   = regexp.MustCompile(`(?i)Buyer Contact[.:\s]*([A-Za-z \t.]+)`)
	buyerPhoneRe     = regexp.MustCompile(`(?i)Buyer Phone[.:\s]*([\d\s\-]+)`)
	genericEmailRe   = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)
	supplierNameRe   = regexp.MustCompile(`(?i)Supplier Name[.:\s]*([^\n]+)`)
	vendorNameRe     = regexp.MustCompile(`(?i)Vendor Name[.:\s]*([^\n]+)`)
	supplierLiteral  = regexp.MustCompile(`(?i)VALVETECQ ENGINEERS`)
	supplierPhoneRe  = regexp.MustCompile(`(?i)P[:\s]*([\d]{10})`)
	supplierEmailRe  = regexp.MustCompile(`(?i)SALES@VALVETECQ\.COM`)
	gslNumberRe      = regexp.MustCompile(`(?i)GSL Number[.:\s]*([A-Z0-9]+)`)
	siteCodeRe       = regexp.MustCompile(`(?i)Site Code[.:\s]*([A-Z0-9]+)`)
	supplierCodeRe   = regexp.MustCompile(`(?i)Supplier Code[.:\s]*([\d]+)`)
	vendorGSTRe      = regexp.MustCompile(`(?i)GST[.:\s]*([A-Z0-9]{15})`)
	invoiceEmailRe   = regexp.MustCompile(`(?i)IN_PO_Invoice@BakerHughes\.com`)
	incotermsRe      = regexp.MustCompile(`(?i)Incoterms[.:\s]*([^\n]+)`)
	currencyRe       = regexp.MustCompile(`(?i)Currency[.:\s]*([A-Z]{3})`)
	paymentTermsRe   = regexp.MustCompile(`(?i)Payment Terms[.:\s]*([^\n]+)`)
	panCardRe        = regexp.MustCompile(`(?i)PAN[.:\s]*([A-Z]{5}\d{4}[A-Z])`)
	gstnNumberRe     = regexp.MustCompile(`(?i)GSTN[.:\s]*([A-Z0-9]{15})`)
	totalAmountRe    = regexp.MustCompile(`(?i)Total Extended Net Price[.:\s]*([\d,]+\.?\d*)`)
)

// datePatterns keys the two supported date labels to their patterns.
// Dates are tokens of the form D[D].MMM[M].YYYY following the label.
var datePatterns = map[string]*regexp.Regexp{
	"PO Date":       regexp.MustCompile(`(?i)PO Date[.:\s]*([\d]{1,2}\.[A-Z]{3,4}\.[\d]{4})`),
	"Revision Date": regexp.MustCompile(`(?i)Revision Date[.:\s]*([\d]{1,2}\.[A-Z]{3,4}\.[\d]{4})`),
}

// patternRule builds a rule that returns the first capture group of re,
// trimmed, or nil on no match
func patternRule(re *regexp.Regexp) Rule {
	return func(text string) (any, error) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return nil, nil
		}
		return strings.TrimSpace(m[1]), nil
	}
}

// literalRule builds a rule that returns the whole match of re, which
// is only useful for patterns matching one fixed literal
func literalRule(re *regexp.Regexp) Rule {
	return func(text string) (any, error) {
		m := re.FindString(text)
		if m == "" {
			return nil, nil
		}
		return m, nil
	}
}

// constantRule builds a rule that ignores its input entirely. These
// cover fields the current rule set treats as always-known for the
// single supported order template.
func constantRule(value any) Rule {
	return func(string) (any, error) {
		return value, nil
	}
}

// absentRule is a placeholder for fields with no extraction logic yet
func absentRule(string) (any, error) {
	return nil, nil
}

// ExtractPONumber extracts the alphanumeric token following the
// "PURCHASE ORDER NO" label
var ExtractPONumber = patternRule(poNumberRe)

// DateRule builds a rule for one of the supported date labels. An
// unknown label always yields the absent value.
func DateRule(label string) Rule {
	return func(text string) (any, error) {
		re, ok := datePatterns[label]
		if !ok {
			return nil, nil
		}
		m := re.FindStringSubmatch(text)
		if m == nil {
			return nil, nil
		}
		return strings.TrimSpace(m[1]), nil
	}
}

// ExtractRevisionNumber extracts the digits following "Revision No"
var ExtractRevisionNumber = patternRule(revisionNumberRe)

// ExtractBuyerContact extracts the name following "Buyer Contact",
// terminated at end of line
var ExtractBuyerContact = patternRule(buyerContactRe)

// ExtractBuyerPhone extracts the number following "Buyer Phone"
var ExtractBuyerPhone = patternRule(buyerPhoneRe)

// ExtractBuyerEmail returns the first email-shaped token anywhere in
// the text. Broader than the supplier and invoice email rules, which
// match one fixed literal each.
var ExtractBuyerEmail = literalRule(genericEmailRe)

// ExtractSupplierName tries the "Supplier Name:" label, then the
// "Vendor Name:" label, then falls back to the fixed company literal
func ExtractSupplierName(text string) (any, error) {
	for _, re := range []*regexp.Regexp{supplierNameRe, vendorNameRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), nil
		}
	}
	if supplierLiteral.MatchString(text) {
		return "VALVETECQ ENGINEERS", nil
	}
	return nil, nil
}

// ExtractSupplierPhone reformats the ten digits following a "P:" prefix
func ExtractSupplierPhone(text string) (any, error) {
	m := supplierPhoneRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	return "P:" + m[1] + "/", nil
}

// ExtractSupplierEmail matches the supplier's fixed sales address only
var ExtractSupplierEmail = literalRule(supplierEmailRe)

// ExtractInvoiceEmail matches the fixed invoicing address only
var ExtractInvoiceEmail = literalRule(invoiceEmailRe)

// ExtractGSLNumber extracts the token following "GSL Number"
var ExtractGSLNumber = patternRule(gslNumberRe)

// ExtractSiteCode extracts the token following "Site Code"
var ExtractSiteCode = patternRule(siteCodeRe)

// ExtractSupplierCode extracts the digits following "Supplier Code"
var ExtractSupplierCode = patternRule(supplierCodeRe)

// ExtractVendorGST extracts the 15-character registration after "GST"
var ExtractVendorGST = patternRule(vendorGSTRe)

// ExtractIncoterms extracts the remainder of the "Incoterms" line
var ExtractIncoterms = patternRule(incotermsRe)

// ExtractCurrency extracts the three-letter code following "Currency"
var ExtractCurrency = patternRule(currencyRe)

// ExtractPaymentTerms extracts the remainder of the "Payment Terms" line
var ExtractPaymentTerms = patternRule(paymentTermsRe)

// ExtractPANCard extracts a PAN registration following "PAN"
var ExtractPANCard = patternRule(panCardRe)

// ExtractGSTNNumber extracts the 15-character registration after "GSTN"
var ExtractGSTNNumber = patternRule(gstnNumberRe)

// ExtractTotalAmount parses the amount following "Total Extended Net
// Price", stripping thousands separators. Unparsable content yields
// the absent value, not an error.
func ExtractTotalAmount(text string) (any, error) {
	m := totalAmountRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil, nil
	}
	return amount, nil
}

// Constant rules. These ignore the PDF content and return the fixed
// values of the single order template this pipeline currently serves.
var (
	ExtractCompanyName     = constantRule("GE OIL & GAS INDIA PRIVATE LIMITED")
	ExtractCompanyAddress  = constantRule("SF No. 608, Chettipalayam Road, Eachanari Post, Coimbatore Tamil Nadu 641021 India")
	ExtractCompanyPhone    = constantRule("422 664 1000")
	ExtractSupplierAddress = constantRule("MALUMICHAMPATTI 187/1C, SNMV COLLEGE ROAD 641050 COIMBATORE INDIA")
	ExtractShipToName      = constantRule("GE Oil & Gas India Private Limited Div-Dresser Valve")
	ExtractShipToAddress   = constantRule("SF No. 608, Chettipalayam Road, Eachanari Post 641021 COIMBATORE INDIA")

	ExtractMSMEDDeclaration = constantRule("In event of supplier / Vendor qualifying as Micro, small or medium enterprise as defined under MSMED Act 2006, declaration along with certificates shall be submitted to the Company")
	ExtractQualityDocuments = constantRule("Contact Buyer for submitting quality documents as required by PO .")
	ExtractGoverningTerms   = constantRule("Baker Hughes Standard Terms of Purchase (Rev C) apply to this order")
)

// ExtractSpecialInstructions returns the fixed instruction block of the
// supported order template
var ExtractSpecialInstructions = constantRule(map[string]string{
	"reach_compliance_note":  `Products sold to Baker Hughes TPS containing SVHC (Substances of Very High Concern)as per REACH (Registration, Evaluation,Authorization and Restriction of Chemicals)are subject to Baker Hughes TPS REACH and SCIP communication and reporting Requirements Please refer to requirements in the "Compliance – Technical Regulations & Standards" supplement listed in https://www.bakerhughes.com/suppliers`,
	"documentation_tool":     "New Documentation Tool ALFRESCO: https://alfresco.bakerhughes.com/valve-databook",
	"machining_standard":     "Machined surfaces shall comply visual inspection standard CES 1092.",
	"packing_procedure":      "GEMCS-FPT-Coimbatore-QWI-7.5-001- EN",
	"deviation_process":      "Any deviation to this PO shall be processed through eSDR work flow for disposition.",
	"material_processing":    "ALL MATERIAL SHALL BE PROCESSED IN ACCORDANCE WITH THE CURRET EDITION AND REVISION OF THE REFERENCED SPECIFICATION UNLESS OTHERWISE NOTED",
	"quantity_policy":        "Quantities ordered are firm. Over shipments will be returned at vendor expense.",
	"receiving_counts":       "Baker Hughes Energy India Private Limited Receiving Department counts will govern receipt/packing list quantities differences.",
	"marking_requirements":   "All documentations and container must be marked with purchase order number and part number.",
	"due_date_clarification": "Due date specified above is date required at the Receiving Dock.",
	"routing_non_compliance": "Failure to comply with routing as specified will result in charge-back to supplier for additional charges incurred.",
})

// ExtractInvoicingInstructions returns the fixed invoicing block of the
// supported order template
var ExtractInvoicingInstructions = constantRule(map[string]string{
	"primary_method":       "Submit invoice via Ariba Network if registered and attach digitally signed invoice copy in Ariba Network.",
	"fallback_method":      "If not registered for Ariba Network, submit digitally signed invoice to PO Invoice: IN_PO_Invoice@BakerHughes.com",
	"hardcopy_requirement": "For non-digitally signed invoices hardcopy is mandatory for archiving, without which payment will not get processed.",
	"mailroom_address":     "Attention to : Dinesh Kumar MP, Process Name: Baker Hughes, Crown Worldwide Group, 33/1A, Kengal Kempohalli, Dobbaspet, Nelamangala Taluk, Tumkur Road, Bangalore Rural District, Bangalore - 562 111.",
	"ariba_support":        "For Ariba registration help, please contact: supplier.enablement@bakerhughes.com.",
})

// ExtractLineItems returns the fixed example rows of the supported
// order template. Real table parsing has not been wired up yet.
// TODO: replace with parsing of the line-item table once a table
// strategy exposes per-row bindings for this template.
var ExtractLineItems = constantRule([]LineItem{
	{
		LineNumber:     "10",
		PartNumber:     "MY-FLOWMAX",
		Description:    `Material Rev. Level:- EXT OPN PAINTING:FM,4"`,
		Quantity:       6.0,
		UOM:            "EA",
		Price:          1080.75,
		PriceCurrency:  "INR",
		ExtendedPrice:  6484.5,
		Taxable:        "Y",
		PromiseDate:    "",
		RequiredByDate: "14.AUG.2026",
		HSNCode:        "84818030",
	},
	{
		LineNumber:     "20",
		PartNumber:     "MY-FLOWGRID",
		Description:    `Material Rev. Level:- EXT OPN PAINTING:FG,2" 300`,
		Quantity:       20.0,
		UOM:            "EA",
		Price:          500.0,
		PriceCurrency:  "INR",
		ExtendedPrice:  10000.0,
		Taxable:        "Y",
		PromiseDate:    "",
		RequiredByDate: "08.SEP.2026",
		HSNCode:        "84818030",
	},
})

// Unimplemented placeholders, always absent
var (
	ExtractProjectNumber    Rule = absentRule
	ExtractSalesOrderNumber Rule = absentRule
	ExtractShippingVia      Rule = absentRule
)
