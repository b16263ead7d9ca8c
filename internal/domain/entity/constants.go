package entity

// Material names as they appear on challans and invoices
const (
	MaterialWashsand          = "Washsand"
	MaterialCrushsand         = "Crushsand"
	MaterialMetal1            = "Metal 1"
	MaterialMetal2            = "Metal 2"
	MaterialMetal4            = "Metal 4"
	MaterialRubble            = "Rubble"
	MaterialGSB               = "GSB"
	MaterialConstructionWater = "Construction Water"
	MaterialDrinkingWater     = "Drinking Water"
	MaterialBoringWater       = "Boring Water"
	MaterialDrinkingJar       = "Drinking Jar (20L)"
	MaterialJCB               = "JCB"
	MaterialDumper            = "Dumper"
)

// Billing categories
const (
	CategoryBuildingMaterial = "Building Material"
	CategoryWaterSupply      = "Water Supply"
	CategoryMachinery        = "Machinery"
)

// Materials lists every material accepted by the entry workflow
var Materials = []string{
	MaterialWashsand,
	MaterialCrushsand,
	MaterialMetal1,
	MaterialMetal2,
	MaterialMetal4,
	MaterialRubble,
	MaterialGSB,
	MaterialConstructionWater,
	MaterialDrinkingWater,
	MaterialBoringWater,
	MaterialDrinkingJar,
	MaterialJCB,
	MaterialDumper,
}

// Units maps each material to its billing unit
var Units = map[string]string{
	MaterialWashsand:          "Brass",
	MaterialCrushsand:         "Brass",
	MaterialMetal1:            "Brass",
	MaterialMetal2:            "Brass",
	MaterialMetal4:            "Brass",
	MaterialRubble:            "Brass",
	MaterialGSB:               "Brass",
	MaterialConstructionWater: "Tanker",
	MaterialDrinkingWater:     "Tanker",
	MaterialBoringWater:       "Tanker",
	MaterialDrinkingJar:       "Jars",
	MaterialJCB:               "Hours",
	MaterialDumper:            "Hours",
}

// MaterialCategories maps each material to its billing category.
// Category is always derived from this table, never stored per record.
var MaterialCategories = map[string]string{
	MaterialWashsand:          CategoryBuildingMaterial,
	MaterialCrushsand:         CategoryBuildingMaterial,
	MaterialMetal1:            CategoryBuildingMaterial,
	MaterialMetal2:            CategoryBuildingMaterial,
	MaterialMetal4:            CategoryBuildingMaterial,
	MaterialRubble:            CategoryBuildingMaterial,
	MaterialGSB:               CategoryBuildingMaterial,
	MaterialConstructionWater: CategoryWaterSupply,
	MaterialDrinkingWater:     CategoryWaterSupply,
	MaterialBoringWater:       CategoryWaterSupply,
	MaterialDrinkingJar:       CategoryWaterSupply,
	MaterialJCB:               CategoryMachinery,
	MaterialDumper:            CategoryMachinery,
}

// DefaultRates is the default per-unit price list. Callers may override
// individual rates when compiling an invoice.
var DefaultRates = map[string]float64{
	MaterialMetal1:            2650,
	MaterialMetal2:            2650,
	MaterialMetal4:            2650,
	MaterialGSB:               2000,
	MaterialWashsand:          6600,
	MaterialCrushsand:         3550,
	MaterialRubble:            2200,
	MaterialDumper:            7000,
	MaterialJCB:               1000,
	MaterialConstructionWater: 1400,
	MaterialDrinkingWater:     1900,
	MaterialBoringWater:       1400,
	MaterialDrinkingJar:       40,
}

// TaxRates holds the CGST/SGST percentages for a category
type TaxRates struct {
	CGST float64 `json:"cgst"`
	SGST float64 `json:"sgst"`
}

// GSTRates maps each billing category to its tax configuration.
// Water Supply is exempt.
var GSTRates = map[string]TaxRates{
	CategoryBuildingMaterial: {CGST: 2.5, SGST: 2.5},
	CategoryMachinery:        {CGST: 9, SGST: 9},
	CategoryWaterSupply:      {CGST: 0, SGST: 0},
}

// SiteName is the construction site all deliveries belong to
const SiteName = "Arihant Aaradhya"

// Phases accepted by the entry form
var Phases = []string{
	"Phase - 1",
	"Phase - 2",
	"Phase - 3",
	"Phase - 4",
	"Phase - 5",
	"Phase - 6",
	"Phase - 7",
	"Any other",
}

// Suppliers eligible for payments
var Suppliers = []string{
	"Pralhad Kene",
	"Ajay Kene",
	"Vijay Bhandari",
	"Kalpesh Patil",
	"Rajesh Yadav",
	"Shehnawaz (Washsand supplier)",
	"Om Sai Quarry",
}

// CompanyDetails holds the seller identity printed on invoices
type CompanyDetails struct {
	Name      string
	Subtitle  string
	Address   string
	GSTIN     string
	State     string
	StateCode string
	BankName  string
	AccountNo string
	IFSC      string
}

// Company is the invoice issuer
var Company = CompanyDetails{
	Name:      "JAY MALHAR ENTERPRISES",
	Subtitle:  "BUILDING MATERIAL SUPPLIER",
	Address:   "At. Bapgaon, Post. Loand, Tal. Bhiwandi, Dist. Thane, Maharashtra",
	GSTIN:     "27AASFJ3172C1ZA",
	State:     "Maharashtra",
	StateCode: "27",
	BankName:  "Federal Bank, Kalyan (W)",
	AccountNo: "15420200005950",
	IFSC:      "FDRL0001542",
}

// CustomerDetails holds the buyer identity printed on invoices
type CustomerDetails struct {
	Name      string
	Address   string
	GSTIN     string
	State     string
	StateCode string
}

// Customer is the billed client
var Customer = CustomerDetails{
	Name:      "Arihant Superstructures Ltd.",
	Address:   "Arihant Aura, B-Wing, 25th Floor, Plot 13/1, TTC Industrial Area, Vashi",
	GSTIN:     "27AABCS1848L1Z2",
	State:     "MAHARASHTRA",
	StateCode: "421302",
}
