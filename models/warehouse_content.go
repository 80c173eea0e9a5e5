package models

import (
	"fmt"
	"regexp"
	"strings"
)

// WarehouseContent is everything the landing page renders for one language.
type WarehouseContent struct {
	Brand             Brand             `yaml:"brand"`
	Contact           ContactInfo       `yaml:"contact"`
	Banner            Banner            `yaml:"banner"`
	WarehouseFeatures FeatureSection    `yaml:"warehouseFeatures"`
	Locations         LocationSection   `yaml:"locations"`
	CTAs              CTAs              `yaml:"ctas"`
	TargetIndustries  IndustrySection   `yaml:"targetIndustries"`
	Specifications    SpecSection       `yaml:"specifications"`
	Availability      Availability      `yaml:"availability"`
	Gallery           GallerySection    `yaml:"gallery"`
	LeadForm          LeadFormContent   `yaml:"leadForm"`
	ContactMethods    ContactMethodList `yaml:"contactMethods"`
	Disclaimer        string            `yaml:"disclaimer"`
	SEO               ContentSEO        `yaml:"seo"`
}

type Brand struct {
	Name string `yaml:"name"`
	Logo string `yaml:"logo"`
}

type ContactInfo struct {
	PhoneNumber string `yaml:"phoneNumber"`
	Email       string `yaml:"email"`
	Address     string `yaml:"address"`
	Hours       string `yaml:"hours"`
}

type Banner struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Description string `yaml:"description"`
	CTAText     string `yaml:"ctaText"`
	CTALink     string `yaml:"ctaLink"`
	Image       string `yaml:"image"`
}

type Feature struct {
	Label       string `yaml:"label"`
	Value       string `yaml:"value"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description,omitempty"`
	Image       string `yaml:"image,omitempty"`
}

type FeatureSection struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Features []Feature `yaml:"features"`
}

type LocationAddress struct {
	Name     string   `yaml:"name"`
	Address  string   `yaml:"address"`
	MapLink  string   `yaml:"mapLink"`
	Image    string   `yaml:"image,omitempty"`
	USPs     []string `yaml:"usps"`
	IdealFor []string `yaml:"idealFor"`
}

type LocationSection struct {
	Addresses []LocationAddress `yaml:"addresses"`
}

type CTA struct {
	Text string `yaml:"text"`
	Link string `yaml:"link"`
}

type CTAs struct {
	Primary CTA `yaml:"primary"`
}

type Industry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type IndustrySection struct {
	Title      string     `yaml:"title"`
	Subtitle   string     `yaml:"subtitle"`
	Industries []Industry `yaml:"industries"`
}

type SpecTab struct {
	ID    string   `yaml:"id"`
	Label string   `yaml:"label"`
	Items []string `yaml:"items"`
}

type SpecSection struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Tabs     []SpecTab `yaml:"tabs"`
}

type Availability struct {
	Status       string `yaml:"status"`
	StatusText   string `yaml:"statusText"`
	Pricing      string `yaml:"pricing"`
	PricingModel string `yaml:"pricingModel"`
	LeaseTerms   string `yaml:"leaseTerms"`
}

type GalleryImage struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

type GallerySection struct {
	Title  string         `yaml:"title"`
	Images []GalleryImage `yaml:"images"`
}

type LeadFormContent struct {
	Title    string      `yaml:"title"`
	Subtitle string      `yaml:"subtitle"`
	Fields   []FormField `yaml:"fields"`
}

type ContactMethod struct {
	Kind  string `yaml:"kind"` // phone, email, address, hours
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Link  string `yaml:"link,omitempty"`
}

type ContactMethodList struct {
	Title   string          `yaml:"title"`
	Methods []ContactMethod `yaml:"methods"`
}

type ContentSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Keywords    string `yaml:"keywords"`
	OGImage     string `yaml:"ogImage"`
}

// Validate checks that the lead form definition is usable: unique field
// names and supported field types.
func (w *WarehouseContent) Validate() error {
	seen := make(map[string]bool, len(w.LeadForm.Fields))
	for _, f := range w.LeadForm.Fields {
		if f.Name == "" {
			return fmt.Errorf("lead form field with label %q has no name", f.Label)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate lead form field %q", f.Name)
		}
		seen[f.Name] = true
		if !IsValidFieldType(f.Type) {
			return fmt.Errorf("lead form field %q has unsupported type %q", f.Name, f.Type)
		}
	}
	return nil
}

// FieldNames returns the configured lead form field names in order.
func (w *WarehouseContent) FieldNames() []string {
	names := make([]string, 0, len(w.LeadForm.Fields))
	for _, f := range w.LeadForm.Fields {
		names = append(names, f.Name)
	}
	return names
}

var (
	phoneStripRe = regexp.MustCompile(`[\s\-()]`)
	slugSpaceRe  = regexp.MustCompile(`\s+`)
)

// DialablePhone returns the contact phone without spaces, dashes or brackets,
// suitable for a tel: link.
func (c ContactInfo) DialablePhone() string {
	return phoneStripRe.ReplaceAllString(c.PhoneNumber, "")
}

// TrackingSlug lowercases the location name and joins words with dashes.
func (l LocationAddress) TrackingSlug() string {
	return slugSpaceRe.ReplaceAllString(strings.ToLower(l.Name), "-")
}
