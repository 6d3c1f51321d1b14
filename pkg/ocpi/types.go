package ocpi

import (
	"encoding/json"
	"time"
)

// DisplayText is a localized text.
type DisplayText struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// GeoLocation is a WGS84 coordinate pair, encoded as decimal strings.
type GeoLocation struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Location is a charging location.
type Location struct {
	CountryCode string       `json:"country_code,omitempty"`
	PartyID     string       `json:"party_id,omitempty"`
	ID          string       `json:"id"`
	Publish     *bool        `json:"publish,omitempty"`
	Type        string       `json:"type,omitempty"`
	Name        string       `json:"name,omitempty"`
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city,omitempty"`
	PostalCode  string       `json:"postal_code,omitempty"`
	Country     string       `json:"country,omitempty"`
	Coordinates *GeoLocation `json:"coordinates,omitempty"`
	EVSEs       []EVSE       `json:"evses,omitempty"`
	TimeZone    string       `json:"time_zone,omitempty"`
	LastUpdated time.Time    `json:"last_updated"`
}

// EVSE is an electric vehicle supply equipment at a location.
type EVSE struct {
	UID          string      `json:"uid"`
	EVSEID       string      `json:"evse_id,omitempty"`
	Status       string      `json:"status"`
	Capabilities []string    `json:"capabilities,omitempty"`
	Connectors   []Connector `json:"connectors,omitempty"`
	FloorLevel   string      `json:"floor_level,omitempty"`
	PhysicalRef  string      `json:"physical_reference,omitempty"`
	LastUpdated  time.Time   `json:"last_updated"`
}

// Connector is a socket or cable on an EVSE.
type Connector struct {
	ID                 string    `json:"id"`
	Standard           string    `json:"standard"`
	Format             string    `json:"format"`
	PowerType          string    `json:"power_type"`
	MaxVoltage         int       `json:"max_voltage,omitempty"`
	MaxAmperage        int       `json:"max_amperage,omitempty"`
	MaxElectricPower   int       `json:"max_electric_power,omitempty"`
	TariffIDs          []string  `json:"tariff_ids,omitempty"`
	TermsAndConditions string    `json:"terms_and_conditions,omitempty"`
	LastUpdated        time.Time `json:"last_updated"`
}

// PriceComponent is one dimension of a tariff element.
type PriceComponent struct {
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	VAT      float64 `json:"vat,omitempty"`
	StepSize int     `json:"step_size"`
}

// TariffElement groups price components with their restrictions.
type TariffElement struct {
	PriceComponents []PriceComponent `json:"price_components"`
	Restrictions    json.RawMessage  `json:"restrictions,omitempty"`
}

// Tariff is a set of prices applied to charging.
type Tariff struct {
	CountryCode string          `json:"country_code,omitempty"`
	PartyID     string          `json:"party_id,omitempty"`
	ID          string          `json:"id"`
	Currency    string          `json:"currency"`
	Type        string          `json:"type,omitempty"`
	AltText     []DisplayText   `json:"tariff_alt_text,omitempty"`
	Elements    []TariffElement `json:"elements"`
	StartDate   *time.Time      `json:"start_date_time,omitempty"`
	EndDate     *time.Time      `json:"end_date_time,omitempty"`
	LastUpdated time.Time       `json:"last_updated"`
}

// CdrToken identifies the token used for a session or CDR.
type CdrToken struct {
	CountryCode string `json:"country_code,omitempty"`
	PartyID     string `json:"party_id,omitempty"`
	UID         string `json:"uid"`
	Type        string `json:"type"`
	ContractID  string `json:"contract_id"`
}

// Price is an amount with and without VAT.
type Price struct {
	ExclVAT float64  `json:"excl_vat"`
	InclVAT *float64 `json:"incl_vat,omitempty"`
}

// Session is an ongoing or finished charging session.
type Session struct {
	CountryCode   string     `json:"country_code,omitempty"`
	PartyID       string     `json:"party_id,omitempty"`
	ID            string     `json:"id"`
	StartDateTime time.Time  `json:"start_date_time"`
	EndDateTime   *time.Time `json:"end_date_time,omitempty"`
	KWh           float64    `json:"kwh"`
	CdrToken      *CdrToken  `json:"cdr_token,omitempty"`
	AuthMethod    string     `json:"auth_method,omitempty"`
	LocationID    string     `json:"location_id"`
	EVSEUID       string     `json:"evse_uid"`
	ConnectorID   string     `json:"connector_id"`
	Currency      string     `json:"currency"`
	TotalCost     *Price     `json:"total_cost,omitempty"`
	Status        string     `json:"status"`
	LastUpdated   time.Time  `json:"last_updated"`
}

// CDR is a charge detail record.
type CDR struct {
	CountryCode      string          `json:"country_code,omitempty"`
	PartyID          string          `json:"party_id,omitempty"`
	ID               string          `json:"id"`
	StartDateTime    time.Time       `json:"start_date_time"`
	EndDateTime      time.Time       `json:"end_date_time"`
	SessionID        string          `json:"session_id,omitempty"`
	CdrToken         *CdrToken       `json:"cdr_token,omitempty"`
	AuthMethod       string          `json:"auth_method"`
	CdrLocation      json.RawMessage `json:"cdr_location,omitempty"`
	Currency         string          `json:"currency"`
	Tariffs          []Tariff        `json:"tariffs,omitempty"`
	ChargingPeriods  json.RawMessage `json:"charging_periods,omitempty"`
	TotalCost        Price           `json:"total_cost"`
	TotalEnergy      float64         `json:"total_energy"`
	TotalTime        float64         `json:"total_time"`
	TotalParkingTime float64         `json:"total_parking_time,omitempty"`
	LastUpdated      time.Time       `json:"last_updated"`
}

// Token is an authorization token issued by an eMSP.
type Token struct {
	CountryCode  string    `json:"country_code,omitempty"`
	PartyID      string    `json:"party_id,omitempty"`
	UID          string    `json:"uid"`
	Type         string    `json:"type"`
	ContractID   string    `json:"contract_id"`
	VisualNumber string    `json:"visual_number,omitempty"`
	Issuer       string    `json:"issuer"`
	GroupID      string    `json:"group_id,omitempty"`
	Valid        bool      `json:"valid"`
	Whitelist    string    `json:"whitelist"`
	Language     string    `json:"language,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Token types.
const (
	TokenTypeAdHocUser = "AD_HOC_USER"
	TokenTypeAppUser   = "APP_USER"
	TokenTypeOther     = "OTHER"
	TokenTypeRFID      = "RFID"
)

// LocationReferences narrows a real-time authorization to a location.
type LocationReferences struct {
	LocationID string   `json:"location_id"`
	EVSEUIDs   []string `json:"evse_uids,omitempty"`
}

// AuthorizationInfo is the answer to a real-time authorization request.
type AuthorizationInfo struct {
	Allowed                string              `json:"allowed"`
	Token                  *Token              `json:"token,omitempty"`
	Location               *LocationReferences `json:"location,omitempty"`
	AuthorizationReference string              `json:"authorization_reference,omitempty"`
	Info                   *DisplayText        `json:"info,omitempty"`
}

// ChargingProfilePeriod is one step of a charging profile.
type ChargingProfilePeriod struct {
	StartPeriod int     `json:"start_period"`
	Limit       float64 `json:"limit"`
}

// ChargingProfile limits power or current over time.
type ChargingProfile struct {
	StartDateTime    *time.Time              `json:"start_date_time,omitempty"`
	Duration         int                     `json:"duration,omitempty"`
	ChargingRateUnit string                  `json:"charging_rate_unit"`
	MinChargingRate  float64                 `json:"min_charging_rate,omitempty"`
	Periods          []ChargingProfilePeriod `json:"charging_profile_period,omitempty"`
}

// ActiveChargingProfile is the profile currently applied to a session.
type ActiveChargingProfile struct {
	StartDateTime   time.Time       `json:"start_date_time"`
	ChargingProfile ChargingProfile `json:"charging_profile"`
}

// ChargingProfileResponse is the synchronous answer to a charging profile request.
type ChargingProfileResponse struct {
	Result  string `json:"result"`
	Timeout int    `json:"timeout"`
}

// VersionInfo is one entry of the versions list.
type VersionInfo struct {
	Version Version `json:"version"`
	URL     string  `json:"url"`
}

// Endpoint is one module endpoint in a version details document.
type Endpoint struct {
	Identifier ModuleID `json:"identifier"`
	Role       Role     `json:"role,omitempty"`
	URL        string   `json:"url"`
}

// VersionDetails lists the endpoints of one version.
type VersionDetails struct {
	Version   Version    `json:"version"`
	Endpoints []Endpoint `json:"endpoints"`
}
