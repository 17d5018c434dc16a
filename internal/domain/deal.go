package domain

// DealStage enumerates pipeline stages.
type DealStage string

const (
	DealStageNew         DealStage = "nuevo"
	DealStageQualified   DealStage = "calificado"
	DealStageProposal    DealStage = "propuesta"
	DealStageNegotiation DealStage = "negociacion"
	DealStageWon         DealStage = "ganado"
	DealStageLost        DealStage = "perdido"
)

// Valid reports whether s is a known stage.
func (s DealStage) Valid() bool {
	switch s {
	case DealStageNew, DealStageQualified, DealStageProposal, DealStageNegotiation, DealStageWon, DealStageLost:
		return true
	}
	return false
}

// Closed reports whether the deal left the pipeline.
func (s DealStage) Closed() bool {
	return s == DealStageWon || s == DealStageLost
}

// Deal is a sales opportunity.
type Deal struct {
	ID        string
	TenantID  string
	Title     string
	Amount    *float64
	Currency  *string
	Stage     DealStage
	CloseDate *int64
	AccountID *string
	ContactID *string
	CreatedBy *string
	CreatedAt int64
	UpdatedAt int64
}
