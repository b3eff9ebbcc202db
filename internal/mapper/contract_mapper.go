package mapper

import (
	"contract-assistant-be/internal/dto"
	"contract-assistant-be/pkg/store"
)

func ModificationsToDTO(mods []store.Modification) []dto.ModificationDTO {
	out := make([]dto.ModificationDTO, 0, len(mods))
	for _, m := range mods {
		out = append(out, dto.ModificationDTO{Change: m.Change, Timestamp: m.Timestamp})
	}
	return out
}

func SummariesToDTO(summaries []store.DocumentSummary) []dto.ContractSummaryDTO {
	out := make([]dto.ContractSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.ContractSummaryDTO{
			ContractID:   s.ID,
			ContractType: s.TypeLabel,
			CreatedAt:    s.CreatedAt,
			IsActive:     s.IsActive,
		})
	}
	return out
}

func ActiveContractToDTO(doc *store.Document) *dto.ActiveContractDTO {
	if doc == nil {
		return nil
	}
	return &dto.ActiveContractDTO{
		ContractID:          doc.ID,
		ContractType:        doc.TypeLabel,
		ContractText:        doc.Content,
		SourceQuery:         doc.SourceQuery,
		CreatedAt:           doc.CreatedAt,
		ModificationHistory: ModificationsToDTO(doc.Modifications),
	}
}

func TurnsToDTO(turns []store.Turn) []dto.ConversationTurnDTO {
	out := make([]dto.ConversationTurnDTO, 0, len(turns))
	for _, t := range turns {
		out = append(out, dto.ConversationTurnDTO{
			Query:     t.Query,
			Response:  t.Response,
			Intent:    t.Intent,
			Timestamp: t.Timestamp,
		})
	}
	return out
}

func SessionToListItem(s *store.Session) dto.SessionListItem {
	return dto.SessionListItem{
		SessionID:    s.ID,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
		TotalQueries: s.TotalQueries,
		Contracts:    len(s.Documents),
	}
}
