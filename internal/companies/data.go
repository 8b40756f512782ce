package companies

// reference is the curated provider dataset. Rates and notes reflect
// publicly advertised terms at the last verification date; actual quotes
// vary by volume and credit.
var reference = []Company{
	{
		Slug:               "basicblock",
		Name:               "BasicBlock",
		RecourseType:       RecourseRecourse,
		AdvertisedRateText: "Quote required (public rate not published)",
		RateType:           RateQuoteRequired,
		SourceURLs:         []string{"https://www.basicblock.io/"},
		Notes:              "Technology-focused factoring platform for trucking companies.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "bobtail",
		Name:               "Bobtail",
		RecourseType:       RecourseNonRecourse,
		AdvertisedRateText: "As low as 1%",
		RateType:           RateAsLowAs,
		SourceURLs:         []string{"https://www.bobtail.com/freight-factoring/"},
		Notes:              "Non-recourse with fast funding. Rates may vary by credit and volume.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "otr-solutions",
		Name:               "OTR Solutions",
		RecourseType:       RecourseNonRecourse,
		AdvertisedRateText: "As low as 2.5%",
		RateType:           RateAsLowAs,
		SourceURLs:         []string{"https://www.otrsolutions.com/freight-factoring/"},
		Notes:              "100% non-recourse factoring. Includes fuel discount program.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "capital-depot",
		Name:               "Capital Depot Inc",
		RecourseType:       RecourseRecourse,
		AdvertisedRateText: "Quote required (public rate not published)",
		RateType:           RateQuoteRequired,
		SourceURLs:         []string{"https://www.capitaldepot.com/"},
		Notes:              "Recourse factoring for trucking and staffing industries.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "triumph-business-capital",
		Name:               "Triumph Business Capital",
		RecourseType:       RecourseRecourse,
		AdvertisedRateText: "As low as 1.5%",
		RateType:           RateAsLowAs,
		SourceURLs:         []string{"https://www.triumphbusinesscapital.com/freight-factoring/"},
		Notes:              "One of the largest factoring companies. Recourse with competitive rates for high-volume fleets.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "thunder-funding",
		Name:               "Thunder Funding",
		RecourseType:       RecourseNonRecourse,
		AdvertisedRateText: "2% - 5%",
		RateType:           RateRange,
		SourceURLs:         []string{"https://www.thunderfunding.com/"},
		Notes:              "Non-recourse with quick approval. Rates depend on volume and broker creditworthiness.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "apex-capital",
		Name:               "Apex Capital",
		RecourseType:       RecourseNonRecourse,
		AdvertisedRateText: "As low as 1.5%",
		RateType:           RateAsLowAs,
		SourceURLs:         []string{"https://www.apexcapitalcorp.com/freight-factoring/"},
		Notes:              "Non-recourse factoring with fuel card program. No hidden fees advertised.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "factor-loads",
		Name:               "Factor Loads",
		RecourseType:       RecourseRecourse,
		AdvertisedRateText: "Quote required (public rate not published)",
		RateType:           RateQuoteRequired,
		SourceURLs:         []string{"https://www.factorloads.com/"},
		Notes:              "Recourse factoring with same-day funding claims.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "rts-financial",
		Name:               "RTS Financial",
		RecourseType:       RecourseNonRecourse,
		AdvertisedRateText: "As low as 2.5%",
		RateType:           RateAsLowAs,
		SourceURLs:         []string{"https://www.rtsfinancial.com/freight-factoring"},
		Notes:              "Non-recourse with fuel card and ELD integrations.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "instapay",
		Name:               "Instapay (Love's)",
		RecourseType:       RecourseRecourse,
		AdvertisedRateText: "Quote required (public rate not published)",
		RateType:           RateQuoteRequired,
		SourceURLs:         []string{"https://www.loves.com/instapay"},
		Notes:              "Factoring program by Love's Travel Stops. Tied to Love's ecosystem.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "england-carrier-services",
		Name:               "England Carrier Services (ECS)",
		RecourseType:       RecourseRecourse,
		AdvertisedRateText: "As low as 2%",
		RateType:           RateAsLowAs,
		SourceURLs:         []string{"https://www.englandcarrierservices.com/"},
		Notes:              "Factoring arm of C.R. England. Competitive rates for owner-operators.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "express-freight-finance",
		Name:               "Express Freight Finance",
		RecourseType:       RecourseNonRecourse,
		AdvertisedRateText: "1.5% - 3.5%",
		RateType:           RateRange,
		SourceURLs:         []string{"https://www.expressfreightfinance.com/"},
		Notes:              "Non-recourse factoring with transparent fee structure advertised.",
		LastVerifiedAt:     "2025-12-01",
	},
	{
		Slug:               "tafs",
		Name:               "TAFS",
		RecourseType:       RecourseRecourse,
		AdvertisedRateText: "As low as 2%",
		RateType:           RateAsLowAs,
		SourceURLs:         []string{"https://www.tafs.com/freight-factoring/"},
		Notes:              "Recourse factoring with fuel card and tire discount programs.",
		LastVerifiedAt:     "2025-12-01",
	},
}

// All returns the full reference dataset.
func All() []Company {
	out := make([]Company, len(reference))
	copy(out, reference)
	return out
}
