// Package domain defines the legacy document model edited locally and carried inside every export.
//
// The JSON shape of Document is a wire contract: it is the plaintext sealed into exported HTML files
// and rendered by the browser decryptor, so field names must stay stable across releases.
package domain

import "time"

// SectionNames lists the fixed sections in display order.
var SectionNames = []string{
	"financial",
	"insurance",
	"bills",
	"property",
	"legal",
	"digital",
	"household",
	"personal",
	"contacts",
	"medical",
	"pets",
}

// Document is the single working document of the application.
type Document struct {
	Meta           Meta            `json:"meta"`
	Financial      Financial       `json:"financial"`
	Insurance      Insurance       `json:"insurance"`
	Bills          Bills           `json:"bills"`
	Property       Property        `json:"property"`
	Legal          Legal           `json:"legal"`
	Digital        Digital         `json:"digital"`
	Household      Household       `json:"household"`
	Personal       Personal        `json:"personal"`
	Contacts       Contacts        `json:"contacts"`
	Medical        Medical         `json:"medical"`
	Pets           Pets            `json:"pets"`
	WelcomeScreen  *WelcomeScreen  `json:"welcome_screen"`
	CustomSections []CustomSection `json:"custom_sections"`
}

// Meta holds authoring information. Timestamps are RFC 3339 strings.
type Meta struct {
	CreatorName string `json:"creator_name"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// NewDocument returns an empty document stamped with now.
func NewDocument(now time.Time) *Document {
	ts := now.UTC().Format(time.RFC3339)
	doc := &Document{Meta: Meta{CreatedAt: ts, UpdatedAt: ts}}
	doc.Normalize()
	return doc
}

// Touch updates Meta.UpdatedAt and fills CreatedAt if it was never set.
func (d *Document) Touch(now time.Time) {
	ts := now.UTC().Format(time.RFC3339)
	if d.Meta.CreatedAt == "" {
		d.Meta.CreatedAt = ts
	}
	d.Meta.UpdatedAt = ts
}

// Normalize replaces nil slices with empty ones so the serialized form always carries arrays,
// which the browser renderer iterates without null checks.
func (d *Document) Normalize() {
	d.Financial.BankAccounts = orEmpty(d.Financial.BankAccounts)
	d.Financial.CreditCards = orEmpty(d.Financial.CreditCards)
	d.Financial.Investments = orEmpty(d.Financial.Investments)
	d.Financial.Debts = orEmpty(d.Financial.Debts)
	d.Insurance.Policies = orEmpty(d.Insurance.Policies)
	d.Bills.Bills = orEmpty(d.Bills.Bills)
	d.Property.Properties = orEmpty(d.Property.Properties)
	d.Property.Vehicles = orEmpty(d.Property.Vehicles)
	d.Property.Valuables = orEmpty(d.Property.Valuables)
	d.Legal.Trusts = orEmpty(d.Legal.Trusts)
	d.Digital.EmailAccounts = orEmpty(d.Digital.EmailAccounts)
	d.Digital.SocialMedia = orEmpty(d.Digital.SocialMedia)
	d.Household.MaintenanceItems = orEmpty(d.Household.MaintenanceItems)
	d.Household.Contractors = orEmpty(d.Household.Contractors)
	d.Household.HowThingsWork = orEmpty(d.Household.HowThingsWork)
	d.Personal.Messages = orEmpty(d.Personal.Messages)
	d.Contacts.EmergencyContacts = orEmpty(d.Contacts.EmergencyContacts)
	d.Contacts.Family = orEmpty(d.Contacts.Family)
	d.Contacts.Professionals = orEmpty(d.Contacts.Professionals)
	d.Medical.FamilyMembers = orEmpty(d.Medical.FamilyMembers)
	for i := range d.Medical.FamilyMembers {
		m := &d.Medical.FamilyMembers[i]
		m.Doctors = orEmpty(m.Doctors)
		m.Medications = orEmpty(m.Medications)
		m.Conditions = orEmpty(m.Conditions)
		m.Allergies = orEmpty(m.Allergies)
	}
	d.Pets.Pets = orEmpty(d.Pets.Pets)
	for i := range d.Pets.Pets {
		d.Pets.Pets[i].Medications = orEmpty(d.Pets.Pets[i].Medications)
	}
	d.CustomSections = orEmpty(d.CustomSections)
	for i := range d.CustomSections {
		s := &d.CustomSections[i]
		s.Subsections = orEmpty(s.Subsections)
		for j := range s.Subsections {
			sub := &s.Subsections[j]
			sub.FieldDefinitions = orEmpty(sub.FieldDefinitions)
			sub.Items = orEmpty(sub.Items)
		}
	}
	if d.WelcomeScreen != nil {
		d.WelcomeScreen.Slides = orEmpty(d.WelcomeScreen.Slides)
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Financial section.
type Financial struct {
	BankAccounts []BankAccount `json:"bank_accounts"`
	CreditCards  []CreditCard  `json:"credit_cards"`
	Investments  []Investment  `json:"investments"`
	Debts        []Debt        `json:"debts"`
	Notes        string        `json:"notes"`
}

type BankAccount struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	AccountType string `json:"account_type"`
	LastFour    string `json:"last_four"`
	Notes       string `json:"notes"`
}

type CreditCard struct {
	Name     string `json:"name"`
	Issuer   string `json:"issuer"`
	LastFour string `json:"last_four"`
	Notes    string `json:"notes"`
}

type Investment struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	AccountType string `json:"account_type"`
	Notes       string `json:"notes"`
}

type Debt struct {
	Name   string `json:"name"`
	Lender string `json:"lender"`
	Notes  string `json:"notes"`
}

// Insurance section.
type Insurance struct {
	Policies []InsurancePolicy `json:"policies"`
	Notes    string            `json:"notes"`
}

type InsurancePolicy struct {
	PolicyType   string `json:"policy_type"` // life, health, home, auto, ...
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
	Contact      string `json:"contact"`
	Notes        string `json:"notes"`
}

// Bills section.
type Bills struct {
	Bills []Bill `json:"bills"`
	Notes string `json:"notes"`
}

type Bill struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Amount   string `json:"amount"`
	DueDay   string `json:"due_day"`
	Autopay  bool   `json:"autopay"`
	Notes    string `json:"notes"`
}

// Property section.
type Property struct {
	Properties []RealEstate `json:"properties"`
	Vehicles   []Vehicle    `json:"vehicles"`
	Valuables  []Valuable   `json:"valuables"`
	Notes      string       `json:"notes"`
}

type RealEstate struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type Vehicle struct {
	Name    string `json:"name"`
	Details string `json:"details"`
	Notes   string `json:"notes"`
}

type Valuable struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// Legal section.
type Legal struct {
	WillLocation    string  `json:"will_location"`
	Attorney        Contact `json:"attorney"`
	PowerOfAttorney string  `json:"power_of_attorney"`
	Trusts          []Trust `json:"trusts"`
	Notes           string  `json:"notes"`
}

type Trust struct {
	Name    string `json:"name"`
	Trustee string `json:"trustee"`
	Notes   string `json:"notes"`
}

// Digital section.
type Digital struct {
	EmailAccounts   []DigitalAccount `json:"email_accounts"`
	SocialMedia     []DigitalAccount `json:"social_media"`
	PasswordManager PasswordManager  `json:"password_manager"`
	Notes           string           `json:"notes"`
}

type DigitalAccount struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	RecoveryHint string `json:"recovery_hint"`
	Notes        string `json:"notes"`
}

type PasswordManager struct {
	Name               string `json:"name"`
	MasterPasswordHint string `json:"master_password_hint"`
	RecoveryMethod     string `json:"recovery_method"`
	Notes              string `json:"notes"`
}

// Household section.
type Household struct {
	MaintenanceItems []MaintenanceItem `json:"maintenance_items"`
	Contractors      []Contact         `json:"contractors"`
	HowThingsWork    []HowTo           `json:"how_things_work"`
	Notes            string            `json:"notes"`
}

type MaintenanceItem struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	LastDone  string `json:"last_done"`
	Notes     string `json:"notes"`
}

type HowTo struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// Personal section.
type Personal struct {
	FuneralPreferences string            `json:"funeral_preferences"`
	ObituaryNotes      string            `json:"obituary_notes"`
	Messages           []PersonalMessage `json:"messages"`
	Notes              string            `json:"notes"`
}

type PersonalMessage struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

// Contacts section.
type Contacts struct {
	EmergencyContacts []Contact `json:"emergency_contacts"`
	Family            []Contact `json:"family"`
	Professionals     []Contact `json:"professionals"`
	Notes             string    `json:"notes"`
}

// Contact is shared by several sections.
type Contact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Notes        string `json:"notes"`
}

// Medical section.
type Medical struct {
	FamilyMembers []FamilyMedical `json:"family_members"`
	Notes         string          `json:"notes"`
}

type FamilyMedical struct {
	Name        string       `json:"name"`
	Doctors     []Contact    `json:"doctors"`
	Medications []Medication `json:"medications"`
	Conditions  []string     `json:"conditions"`
	Allergies   []string     `json:"allergies"`
	Pharmacy    Contact      `json:"pharmacy"`
	Notes       string       `json:"notes"`
}

type Medication struct {
	Name       string `json:"name"`
	Dosage     string `json:"dosage"`
	Frequency  string `json:"frequency"`
	Prescriber string `json:"prescriber"`
	Notes      string `json:"notes"`
}

// Pets section.
type Pets struct {
	Pets  []Pet  `json:"pets"`
	Notes string `json:"notes"`
}

type Pet struct {
	Name        string       `json:"name"`
	Species     string       `json:"species"`
	Breed       string       `json:"breed"`
	Vet         Contact      `json:"vet"`
	Medications []Medication `json:"medications"`
	Feeding     string       `json:"feeding"`
	CareNotes   string       `json:"care_notes"`
}

// FieldType is the value type of a custom field.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeNumber  FieldType = "number"
	FieldTypeDate    FieldType = "date"
	FieldTypeBoolean FieldType = "boolean"
)

// CustomSection is a user-defined section. A non-nil Parent names the fixed section it extends.
type CustomSection struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Parent      *string            `json:"parent,omitempty"`
	Subsections []CustomSubsection `json:"subsections"`
}

type CustomSubsection struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	FieldDefinitions []FieldDefinition `json:"field_definitions"`
	Items            []CustomItem      `json:"items"`
}

type FieldDefinition struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FieldType FieldType `json:"field_type"`
}

// CustomItem maps field definition IDs to values.
type CustomItem struct {
	ID     string            `json:"id"`
	Values map[string]string `json:"values"`
}
