package service

import (
	"strings"
	"time"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
)

// PrintView is the unencrypted, printable projection of a document.
type PrintView struct {
	Title       string
	CreatorName string
	GeneratedAt string
	Sections    []PrintSection
}

// PrintSection is one titled section of a printout.
type PrintSection struct {
	Name   string
	Title  string
	Groups []PrintGroup
	Notes  string
}

// PrintGroup holds the entries of one list within a section.
type PrintGroup struct {
	Title string
	Items []PrintItem
}

// PrintItem is one entry with its non-empty labelled values.
type PrintItem struct {
	Title   string
	Details []PrintDetail
}

type PrintDetail struct {
	Label string
	Value string
}

var sectionTitles = map[string]string{
	"financial": "Financial",
	"insurance": "Insurance",
	"bills":     "Bills",
	"property":  "Property",
	"legal":     "Legal",
	"digital":   "Digital Life",
	"household": "Household",
	"personal":  "Personal",
	"contacts":  "Contacts",
	"medical":   "Medical",
	"pets":      "Pets",
}

// BuildPrintView flattens doc into sections, dropping empty values, lists and sections. Custom
// sections whose parent names a fixed section are printed inside it.
func BuildPrintView(doc *documentDomain.Document, now time.Time) *PrintView {
	view := &PrintView{
		Title:       "Honey Did - Legacy Document",
		CreatorName: doc.Meta.CreatorName,
		GeneratedAt: now.Format("January 2, 2006"),
	}

	byName := make(map[string]*PrintSection, len(documentDomain.SectionNames))
	for _, name := range documentDomain.SectionNames {
		section := buildFixedSection(doc, name)
		section.Name = name
		section.Title = sectionTitles[name]
		byName[name] = &section
	}

	var standalone []PrintSection
	for _, custom := range doc.CustomSections {
		groups := customGroups(custom)
		if custom.Parent != nil {
			if parent, ok := byName[*custom.Parent]; ok {
				parent.Groups = append(parent.Groups, groups...)
				continue
			}
		}
		standalone = append(standalone, PrintSection{Name: custom.ID, Title: custom.Name, Groups: groups})
	}

	for _, name := range documentDomain.SectionNames {
		if s := byName[name]; !s.empty() {
			view.Sections = append(view.Sections, *s)
		}
	}
	for _, s := range standalone {
		if !s.empty() {
			view.Sections = append(view.Sections, s)
		}
	}
	return view
}

func (s *PrintSection) empty() bool {
	return len(s.Groups) == 0 && strings.TrimSpace(s.Notes) == ""
}

// item builds a PrintItem from alternating label/value pairs, skipping blank values.
func item(title string, pairs ...string) PrintItem {
	it := PrintItem{Title: title}
	for i := 0; i+1 < len(pairs); i += 2 {
		if v := strings.TrimSpace(pairs[i+1]); v != "" {
			it.Details = append(it.Details, PrintDetail{Label: pairs[i], Value: v})
		}
	}
	return it
}

func (it PrintItem) empty() bool {
	return strings.TrimSpace(it.Title) == "" && len(it.Details) == 0
}

func group(title string, items ...PrintItem) []PrintGroup {
	var kept []PrintItem
	for _, it := range items {
		if !it.empty() {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return []PrintGroup{{Title: title, Items: kept}}
}

func mapItems[T any](list []T, fn func(T) PrintItem) []PrintItem {
	items := make([]PrintItem, 0, len(list))
	for _, v := range list {
		items = append(items, fn(v))
	}
	return items
}

func contactItem(c documentDomain.Contact) PrintItem {
	return item(c.Name,
		"Relationship", c.Relationship,
		"Phone", c.Phone,
		"Email", c.Email,
		"Notes", c.Notes,
	)
}

func medicationItem(m documentDomain.Medication) PrintItem {
	return item(m.Name,
		"Dosage", m.Dosage,
		"Frequency", m.Frequency,
		"Prescriber", m.Prescriber,
		"Notes", m.Notes,
	)
}

func accountItem(a documentDomain.DigitalAccount) PrintItem {
	return item(a.Name,
		"Username", a.Username,
		"Recovery hint", a.RecoveryHint,
		"Notes", a.Notes,
	)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return ""
}

func buildFixedSection(doc *documentDomain.Document, name string) PrintSection {
	var s PrintSection
	add := func(groups []PrintGroup) { s.Groups = append(s.Groups, groups...) }

	switch name {
	case "financial":
		f := doc.Financial
		add(group("Bank Accounts", mapItems(f.BankAccounts, func(a documentDomain.BankAccount) PrintItem {
			return item(a.Name, "Institution", a.Institution, "Type", a.AccountType, "Last four", a.LastFour, "Notes", a.Notes)
		})...))
		add(group("Credit Cards", mapItems(f.CreditCards, func(c documentDomain.CreditCard) PrintItem {
			return item(c.Name, "Issuer", c.Issuer, "Last four", c.LastFour, "Notes", c.Notes)
		})...))
		add(group("Investments", mapItems(f.Investments, func(i documentDomain.Investment) PrintItem {
			return item(i.Name, "Institution", i.Institution, "Type", i.AccountType, "Notes", i.Notes)
		})...))
		add(group("Debts", mapItems(f.Debts, func(d documentDomain.Debt) PrintItem {
			return item(d.Name, "Lender", d.Lender, "Notes", d.Notes)
		})...))
		s.Notes = f.Notes
	case "insurance":
		add(group("Policies", mapItems(doc.Insurance.Policies, func(p documentDomain.InsurancePolicy) PrintItem {
			return item(p.PolicyType, "Provider", p.Provider, "Policy number", p.PolicyNumber, "Contact", p.Contact, "Notes", p.Notes)
		})...))
		s.Notes = doc.Insurance.Notes
	case "bills":
		add(group("Bills", mapItems(doc.Bills.Bills, func(b documentDomain.Bill) PrintItem {
			return item(b.Name, "Provider", b.Provider, "Amount", b.Amount, "Due day", b.DueDay, "Autopay", yesNo(b.Autopay), "Notes", b.Notes)
		})...))
		s.Notes = doc.Bills.Notes
	case "property":
		p := doc.Property
		add(group("Properties", mapItems(p.Properties, func(r documentDomain.RealEstate) PrintItem {
			return item(r.Name, "Address", r.Address, "Notes", r.Notes)
		})...))
		add(group("Vehicles", mapItems(p.Vehicles, func(v documentDomain.Vehicle) PrintItem {
			return item(v.Name, "Details", v.Details, "Notes", v.Notes)
		})...))
		add(group("Valuables", mapItems(p.Valuables, func(v documentDomain.Valuable) PrintItem {
			return item(v.Name, "Location", v.Location, "Notes", v.Notes)
		})...))
		s.Notes = p.Notes
	case "legal":
		l := doc.Legal
		add(group("", item("", "Will location", l.WillLocation, "Power of attorney", l.PowerOfAttorney)))
		add(group("Attorney", contactItem(l.Attorney)))
		add(group("Trusts", mapItems(l.Trusts, func(t documentDomain.Trust) PrintItem {
			return item(t.Name, "Trustee", t.Trustee, "Notes", t.Notes)
		})...))
		s.Notes = l.Notes
	case "digital":
		d := doc.Digital
		add(group("Email Accounts", mapItems(d.EmailAccounts, accountItem)...))
		add(group("Social Media", mapItems(d.SocialMedia, accountItem)...))
		pm := d.PasswordManager
		add(group("Password Manager", item(pm.Name,
			"Master password hint", pm.MasterPasswordHint,
			"Recovery method", pm.RecoveryMethod,
			"Notes", pm.Notes,
		)))
		s.Notes = d.Notes
	case "household":
		h := doc.Household
		add(group("Maintenance", mapItems(h.MaintenanceItems, func(m documentDomain.MaintenanceItem) PrintItem {
			return item(m.Name, "Frequency", m.Frequency, "Last done", m.LastDone, "Notes", m.Notes)
		})...))
		add(group("Contractors", mapItems(h.Contractors, contactItem)...))
		add(group("How Things Work", mapItems(h.HowThingsWork, func(h documentDomain.HowTo) PrintItem {
			return item(h.Name, "Instructions", h.Instructions)
		})...))
		s.Notes = h.Notes
	case "personal":
		p := doc.Personal
		add(group("", item("", "Funeral preferences", p.FuneralPreferences, "Obituary notes", p.ObituaryNotes)))
		add(group("Messages", mapItems(p.Messages, func(m documentDomain.PersonalMessage) PrintItem {
			return item(m.Recipient, "Message", m.Message)
		})...))
		s.Notes = p.Notes
	case "contacts":
		c := doc.Contacts
		add(group("Emergency Contacts", mapItems(c.EmergencyContacts, contactItem)...))
		add(group("Family", mapItems(c.Family, contactItem)...))
		add(group("Professionals", mapItems(c.Professionals, contactItem)...))
		s.Notes = c.Notes
	case "medical":
		for _, m := range doc.Medical.FamilyMembers {
			var items []PrintItem
			items = append(items, item("",
				"Conditions", strings.Join(m.Conditions, ", "),
				"Allergies", strings.Join(m.Allergies, ", "),
				"Notes", m.Notes,
			))
			for _, d := range m.Doctors {
				it := contactItem(d)
				it.Title = "Doctor: " + it.Title
				items = append(items, it)
			}
			for _, med := range m.Medications {
				it := medicationItem(med)
				it.Title = "Medication: " + it.Title
				items = append(items, it)
			}
			if ph := contactItem(m.Pharmacy); !ph.empty() {
				ph.Title = "Pharmacy: " + ph.Title
				items = append(items, ph)
			}
			add(group(m.Name, items...))
		}
		s.Notes = doc.Medical.Notes
	case "pets":
		for _, p := range doc.Pets.Pets {
			items := []PrintItem{item("",
				"Species", p.Species,
				"Breed", p.Breed,
				"Feeding", p.Feeding,
				"Care notes", p.CareNotes,
			)}
			if vet := contactItem(p.Vet); !vet.empty() {
				vet.Title = "Vet: " + vet.Title
				items = append(items, vet)
			}
			for _, med := range p.Medications {
				it := medicationItem(med)
				it.Title = "Medication: " + it.Title
				items = append(items, it)
			}
			add(group(p.Name, items...))
		}
		s.Notes = doc.Pets.Notes
	}
	return s
}

func customGroups(section documentDomain.CustomSection) []PrintGroup {
	var groups []PrintGroup
	for _, sub := range section.Subsections {
		items := make([]PrintItem, 0, len(sub.Items))
		for _, ci := range sub.Items {
			var it PrintItem
			for _, fd := range sub.FieldDefinitions {
				v := strings.TrimSpace(ci.Values[fd.ID])
				if v == "" {
					continue
				}
				if fd.FieldType == documentDomain.FieldTypeBoolean {
					if v != "true" {
						continue
					}
					v = "Yes"
				}
				it.Details = append(it.Details, PrintDetail{Label: fd.Name, Value: v})
			}
			items = append(items, it)
		}
		groups = append(groups, group(sub.Name, items...)...)
	}
	return groups
}
