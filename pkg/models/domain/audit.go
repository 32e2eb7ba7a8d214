package domain

import "time"

type AuditStatus string

const (
	AuditStatusDraft      AuditStatus = "draft"
	AuditStatusInProgress AuditStatus = "in_progress"
	AuditStatusCompleted  AuditStatus = "completed"
	AuditStatusReviewed   AuditStatus = "reviewed"
)

type LevelType string

const (
	LevelCompany    LevelType = "company"
	LevelBranch     LevelType = "branch"
	LevelDepartment LevelType = "department"
	LevelTeam       LevelType = "team"
	LevelSubteam    LevelType = "subteam"
)

// Level is the single organizational unit an audit is executed against.
// An audit carries exactly one level, so statistics bucketing by level
// is mutually exclusive by construction.
type Level struct {
	Type     LevelType
	UnitID   string
	UnitName string
}

// Audit is one execution of a Template at one organizational level.
type Audit struct {
	ID             string
	Code           string
	Name           string
	Description    string
	TemplateID     string
	OrganizationID string
	Level          Level

	Status            AuditStatus
	TotalQuestions    int
	AnsweredQuestions int
	Score             float64 // 0-100, two decimals

	StartDate   *time.Time
	EndDate     *time.Time
	CompletedAt *time.Time

	CreatedBy  string
	AssignedTo string
	CreatedAt  time.Time
}

// Editable reports whether answers may still be submitted or changed.
func (a Audit) Editable() bool {
	return a.Status == AuditStatusDraft || a.Status == AuditStatusInProgress
}

// Progress is the recomputed aggregate state of an audit after an
// answer submission.
type Progress struct {
	Score             float64
	AnsweredQuestions int
}
