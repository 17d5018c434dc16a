package handlers

import (
	"github.com/spec-kit/crm-service/internal/api/dto"
	"github.com/spec-kit/crm-service/internal/service"
)

func accountInput(r dto.CreateAccountRequest) service.AccountInput {
	return service.AccountInput{ID: r.ID, Name: r.Name, Website: r.Website, Phone: r.Phone}
}

func accountPatch(r dto.UpdateAccountRequest) service.AccountPatch {
	return service.AccountPatch{Name: r.Name, Website: r.Website, Phone: r.Phone}
}

func contactInput(r dto.CreateContactRequest) service.ContactInput {
	return service.ContactInput{ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone, Title: r.Title, AccountID: r.AccountID}
}

func contactPatch(r dto.UpdateContactRequest) service.ContactPatch {
	return service.ContactPatch{Name: r.Name, Email: r.Email, Phone: r.Phone, Title: r.Title, AccountID: r.AccountID}
}

func dealInput(r dto.CreateDealRequest) service.DealInput {
	return service.DealInput{
		ID:        r.ID,
		Title:     r.Title,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Stage:     r.Stage,
		CloseDate: r.CloseDate,
		AccountID: r.AccountID,
		ContactID: r.ContactID,
	}
}

func dealPatch(r dto.UpdateDealRequest) service.DealPatch {
	return service.DealPatch{
		Title:     r.Title,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Stage:     r.Stage,
		CloseDate: r.CloseDate,
		AccountID: r.AccountID,
		ContactID: r.ContactID,
	}
}

func leadInput(r dto.CreateLeadRequest) service.LeadInput {
	return service.LeadInput{
		ID:      r.ID,
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Source:  r.Source,
		Status:  r.Status,
	}
}

func leadPatch(r dto.UpdateLeadRequest) service.LeadPatch {
	return service.LeadPatch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Source:  r.Source,
		Status:  r.Status,
	}
}

func activityInput(r dto.CreateActivityRequest) service.ActivityInput {
	return service.ActivityInput{
		ID:                  r.ID,
		Type:                r.Type,
		Title:               r.Title,
		Status:              r.Status,
		DueDate:             r.DueDate,
		RemindBeforeMinutes: r.RemindBeforeMinutes,
		Notes:               r.Notes,
		AccountID:           r.AccountID,
		ContactID:           r.ContactID,
		DealID:              r.DealID,
		LeadID:              r.LeadID,
	}
}

func activityPatch(r dto.UpdateActivityRequest) service.ActivityPatch {
	return service.ActivityPatch{
		Type:                r.Type,
		Title:               r.Title,
		Status:              r.Status,
		DueDate:             r.DueDate,
		RemindBeforeMinutes: r.RemindBeforeMinutes,
		Notes:               r.Notes,
		AccountID:           r.AccountID,
		ContactID:           r.ContactID,
		DealID:              r.DealID,
		LeadID:              r.LeadID,
	}
}

func noteInput(r dto.CreateNoteRequest) service.NoteInput {
	return service.NoteInput{
		ID:        r.ID,
		Body:      r.Body,
		AccountID: r.AccountID,
		ContactID: r.ContactID,
		DealID:    r.DealID,
		LeadID:    r.LeadID,
	}
}

func notePatch(r dto.UpdateNoteRequest) service.NotePatch {
	return service.NotePatch{
		Body:      r.Body,
		AccountID: r.AccountID,
		ContactID: r.ContactID,
		DealID:    r.DealID,
		LeadID:    r.LeadID,
	}
}
