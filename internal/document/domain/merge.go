package domain

import (
	"reflect"
)

// Merge folds src into dst without discarding anything dst already holds.
//
// List entries of src are appended when dst has no equal entry, empty text fields of dst are
// filled from src, custom sections and their subsections and items are matched by ID, and the
// welcome screen of src is only taken when dst has none. Meta.CreatedAt keeps the earlier value.
// Both documents are normalized first.
func Merge(dst, src *Document) {
	if src == nil {
		return
	}
	dst.Normalize()
	src.Normalize()

	fillEmpty(&dst.Meta.CreatorName, src.Meta.CreatorName)
	if src.Meta.CreatedAt != "" && (dst.Meta.CreatedAt == "" || src.Meta.CreatedAt < dst.Meta.CreatedAt) {
		dst.Meta.CreatedAt = src.Meta.CreatedAt
	}

	dst.Financial.BankAccounts = appendMissing(dst.Financial.BankAccounts, src.Financial.BankAccounts)
	dst.Financial.CreditCards = appendMissing(dst.Financial.CreditCards, src.Financial.CreditCards)
	dst.Financial.Investments = appendMissing(dst.Financial.Investments, src.Financial.Investments)
	dst.Financial.Debts = appendMissing(dst.Financial.Debts, src.Financial.Debts)
	fillEmpty(&dst.Financial.Notes, src.Financial.Notes)

	dst.Insurance.Policies = appendMissing(dst.Insurance.Policies, src.Insurance.Policies)
	fillEmpty(&dst.Insurance.Notes, src.Insurance.Notes)

	dst.Bills.Bills = appendMissing(dst.Bills.Bills, src.Bills.Bills)
	fillEmpty(&dst.Bills.Notes, src.Bills.Notes)

	dst.Property.Properties = appendMissing(dst.Property.Properties, src.Property.Properties)
	dst.Property.Vehicles = appendMissing(dst.Property.Vehicles, src.Property.Vehicles)
	dst.Property.Valuables = appendMissing(dst.Property.Valuables, src.Property.Valuables)
	fillEmpty(&dst.Property.Notes, src.Property.Notes)

	fillEmpty(&dst.Legal.WillLocation, src.Legal.WillLocation)
	fillContact(&dst.Legal.Attorney, src.Legal.Attorney)
	fillEmpty(&dst.Legal.PowerOfAttorney, src.Legal.PowerOfAttorney)
	dst.Legal.Trusts = appendMissing(dst.Legal.Trusts, src.Legal.Trusts)
	fillEmpty(&dst.Legal.Notes, src.Legal.Notes)

	dst.Digital.EmailAccounts = appendMissing(dst.Digital.EmailAccounts, src.Digital.EmailAccounts)
	dst.Digital.SocialMedia = appendMissing(dst.Digital.SocialMedia, src.Digital.SocialMedia)
	if dst.Digital.PasswordManager == (PasswordManager{}) {
		dst.Digital.PasswordManager = src.Digital.PasswordManager
	}
	fillEmpty(&dst.Digital.Notes, src.Digital.Notes)

	dst.Household.MaintenanceItems = appendMissing(dst.Household.MaintenanceItems, src.Household.MaintenanceItems)
	dst.Household.Contractors = appendMissing(dst.Household.Contractors, src.Household.Contractors)
	dst.Household.HowThingsWork = appendMissing(dst.Household.HowThingsWork, src.Household.HowThingsWork)
	fillEmpty(&dst.Household.Notes, src.Household.Notes)

	fillEmpty(&dst.Personal.FuneralPreferences, src.Personal.FuneralPreferences)
	fillEmpty(&dst.Personal.ObituaryNotes, src.Personal.ObituaryNotes)
	dst.Personal.Messages = appendMissing(dst.Personal.Messages, src.Personal.Messages)
	fillEmpty(&dst.Personal.Notes, src.Personal.Notes)

	dst.Contacts.EmergencyContacts = appendMissing(dst.Contacts.EmergencyContacts, src.Contacts.EmergencyContacts)
	dst.Contacts.Family = appendMissing(dst.Contacts.Family, src.Contacts.Family)
	dst.Contacts.Professionals = appendMissing(dst.Contacts.Professionals, src.Contacts.Professionals)
	fillEmpty(&dst.Contacts.Notes, src.Contacts.Notes)

	dst.Medical.FamilyMembers = appendMissing(dst.Medical.FamilyMembers, src.Medical.FamilyMembers)
	fillEmpty(&dst.Medical.Notes, src.Medical.Notes)

	dst.Pets.Pets = appendMissing(dst.Pets.Pets, src.Pets.Pets)
	fillEmpty(&dst.Pets.Notes, src.Pets.Notes)

	if dst.WelcomeScreen == nil && src.WelcomeScreen != nil {
		ws := *src.WelcomeScreen
		ws.Slides = append([]QuestionSlide(nil), src.WelcomeScreen.Slides...)
		dst.WelcomeScreen = &ws
	}

	dst.CustomSections = mergeCustomSections(dst.CustomSections, src.CustomSections)
	dst.Normalize()
}

func mergeCustomSections(dst, src []CustomSection) []CustomSection {
	for _, s := range src {
		i := indexByID(dst, s.ID, func(c CustomSection) string { return c.ID })
		if i < 0 {
			dst = append(dst, s)
			continue
		}
		for _, sub := range s.Subsections {
			subs := dst[i].Subsections
			j := indexByID(subs, sub.ID, func(c CustomSubsection) string { return c.ID })
			if j < 0 {
				dst[i].Subsections = append(subs, sub)
				continue
			}
			for _, fd := range sub.FieldDefinitions {
				if indexByID(subs[j].FieldDefinitions, fd.ID, func(f FieldDefinition) string { return f.ID }) < 0 {
					subs[j].FieldDefinitions = append(subs[j].FieldDefinitions, fd)
				}
			}
			for _, item := range sub.Items {
				if indexByID(subs[j].Items, item.ID, func(c CustomItem) string { return c.ID }) < 0 {
					subs[j].Items = append(subs[j].Items, item)
				}
			}
		}
	}
	return dst
}

func indexByID[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

func appendMissing[T any](dst, src []T) []T {
	for _, s := range src {
		found := false
		for _, d := range dst {
			if reflect.DeepEqual(d, s) {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, s)
		}
	}
	return dst
}

func fillEmpty(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

func fillContact(dst *Contact, src Contact) {
	if *dst == (Contact{}) {
		*dst = src
	}
}
