package domain

// SectionSummary counts the entries of one document section.
type SectionSummary struct {
	Name  string `json:"name"`
	Items int    `json:"items"`
}

// Summary counts the entries of every fixed section followed by each custom section.
func (d *Document) Summary() []SectionSummary {
	summary := []SectionSummary{
		{"Financial", len(d.Financial.BankAccounts) + len(d.Financial.CreditCards) +
			len(d.Financial.Investments) + len(d.Financial.Debts)},
		{"Insurance", len(d.Insurance.Policies)},
		{"Bills", len(d.Bills.Bills)},
		{"Property", len(d.Property.Properties) + len(d.Property.Vehicles) + len(d.Property.Valuables)},
		{"Legal", len(d.Legal.Trusts)},
		{"Digital", len(d.Digital.EmailAccounts) + len(d.Digital.SocialMedia)},
		{"Household", len(d.Household.MaintenanceItems) + len(d.Household.Contractors) +
			len(d.Household.HowThingsWork)},
		{"Personal", len(d.Personal.Messages)},
		{"Contacts", len(d.Contacts.EmergencyContacts) + len(d.Contacts.Family) + len(d.Contacts.Professionals)},
		{"Medical", len(d.Medical.FamilyMembers)},
		{"Pets", len(d.Pets.Pets)},
	}

	for _, section := range d.CustomSections {
		items := 0
		for _, sub := range section.Subsections {
			items += len(sub.Items)
		}
		summary = append(summary, SectionSummary{Name: section.Name, Items: items})
	}
	return summary
}
