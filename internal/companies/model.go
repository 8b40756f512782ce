package companies

// Company is a curated reference entry for a factoring provider.
type Company struct {
	Slug               string   `json:"slug"`
	Name               string   `json:"name"`
	RecourseType       string   `json:"recourseType"`
	AdvertisedRateText string   `json:"advertisedRateText"`
	RateType           string   `json:"rateType"`
	SourceURLs         []string `json:"sourceUrls"`
	Notes              string   `json:"notes"`
	LastVerifiedAt     string   `json:"lastVerifiedAt"`
}

// Recourse types.
const (
	RecourseRecourse    = "recourse"
	RecourseNonRecourse = "non-recourse"
	RecourseMixed       = "mixed"
	RecourseVaries      = "varies"
)

// Rate types.
const (
	RateAsLowAs       = "as_low_as"
	RateRange         = "range"
	RateQuoteRequired = "quote_required"
	RatePromo         = "promo"
)
