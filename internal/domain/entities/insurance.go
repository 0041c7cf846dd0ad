package entities

// InsuranceCarrier identifies the company behind a plan
type InsuranceCarrier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CoverageArea is where a plan applies
type CoverageArea struct {
	IsNational bool     `json:"is_national"`
	States     []string `json:"states,omitempty"`
}

// ReferenceMetadata carries vendor bookkeeping timestamps
type ReferenceMetadata struct {
	CreatedTimestampUTC     string `json:"created_timestamp_utc"`
	LastUpdatedTimestampUTC string `json:"last_updated_timestamp_utc"`
}

// InsurancePlan mirrors the vendor's insurance plan resource
type InsurancePlan struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Carrier        InsuranceCarrier  `json:"carrier"`
	PlanType       string            `json:"plan_type"`
	ProgramType    string            `json:"program_type"`
	CareCategories []string          `json:"care_categories"`
	Status         string            `json:"status"`
	CoverageArea   CoverageArea      `json:"coverage_area"`
	RefMetadata    ReferenceMetadata `json:"ref_metadata"`
}

// InsurancePlanPage is one page of insurance plans
type InsurancePlanPage struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int             `json:"total_count"`
	NextURL    string          `json:"next_url,omitempty"`
	Plans      []InsurancePlan `json:"plans"`
}
