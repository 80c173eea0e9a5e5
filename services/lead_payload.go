package services

import (
	"strings"

	"warehouse_landing_go/models"
)

// FormState holds raw field values keyed by field name.
type FormState map[string]string

// ValidationErrors holds one message per invalid field.
type ValidationErrors map[string]string

// Lead form field names with a dedicated slot in the CRM payload.
const (
	FieldFullName          = "fullName"
	FieldCompanyName       = "companyName"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldWarehouseSize     = "warehouseSize"
	FieldPreferredLocation = "preferredLocation"
	FieldBudget            = "budget"
	FieldLeaseDuration     = "leaseDuration"
	FieldTimeline          = "timeline"
	FieldAdditionalNotes   = "additionalNotes"
)

// LeadFormData is the form_data object expected by the CRM.
type LeadFormData struct {
	FullName              string               `json:"full_name"`
	CompanyName           string               `json:"company_name"`
	Email                 string               `json:"email"`
	Phone                 string               `json:"phone"`
	WarehouseSizeSqft     *models.NumericValue `json:"warehouse_size_sqft,omitempty"`
	PreferredLocation     string               `json:"preferred_location"`
	MonthlyBudget         *models.NumericValue `json:"monthly_budget,omitempty"`
	LeaseDuration         string               `json:"lease_duration"`
	TimelineToMoveIn      string               `json:"timeline_to_move_in"`
	AdditionalInformation string               `json:"additional_information"`
	Timezone              string               `json:"timezone"`
	IPAddress             string               `json:"ip_address"`
	Browser               string               `json:"browser"`
	DeviceType            string               `json:"device_type"`
}

// SubmissionPayload is the body POSTed to {api_host}/forms.
type SubmissionPayload struct {
	ClientID string       `json:"client_id"`
	FormData LeadFormData `json:"form_data"`
}

// BuildPayload snapshots the form values and environment at submit time.
func BuildPayload(clientID string, state FormState, env Environment) SubmissionPayload {
	get := func(name string) string {
		return strings.TrimSpace(state[name])
	}

	return SubmissionPayload{
		ClientID: clientID,
		FormData: LeadFormData{
			FullName:              get(FieldFullName),
			CompanyName:           get(FieldCompanyName),
			Email:                 get(FieldEmail),
			Phone:                 get(FieldPhone),
			WarehouseSizeSqft:     models.ParseNumericValue(state[FieldWarehouseSize]),
			PreferredLocation:     get(FieldPreferredLocation),
			MonthlyBudget:         models.ParseNumericValue(state[FieldBudget]),
			LeaseDuration:         get(FieldLeaseDuration),
			TimelineToMoveIn:      get(FieldTimeline),
			AdditionalInformation: get(FieldAdditionalNotes),
			Timezone:              env.Timezone,
			IPAddress:             env.IPAddress,
			Browser:               env.Browser,
			DeviceType:            env.DeviceType,
		},
	}
}
