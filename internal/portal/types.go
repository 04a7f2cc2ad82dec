package portal

import "encoding/json"

// LoginRequest is the body posted to /auth/login.
type LoginRequest struct {
	Ident string `json:"ident"`
	UID   string `json:"uid"`
	Pass  string `json:"pass"`
}

// NewLoginRequest fills ident and uid with the username, as the portal expects.
func NewLoginRequest(username, password string) LoginRequest {
	return LoginRequest{Ident: username, UID: username, Pass: password}
}

// LoginPayload mirrors a successful /auth/login response.
type LoginPayload struct {
	Expire                string `json:"expire"`
	FirstName             string `json:"firstName"`
	Ident                 string `json:"ident"`
	LastName              string `json:"lastName"`
	Release               string `json:"release"`
	ShowPwdChangeReminder bool   `json:"showPwdChangeReminder"`
	Token                 string `json:"token"`
	TokenAP               string `json:"tokenAP"`
}

// Notice is the error shape shared by login failures, expired tokens and
// other API errors.
type Notice struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Info       string `json:"info"`
	Message    string `json:"message"`
}

// GradesResponse mirrors /students/{id}/grades.
type GradesResponse struct {
	Grades []Grade `json:"grades"`
}

// Grade is a single grade event. Field names follow the server, typos included.
type Grade struct {
	SubjectID           int             `json:"subjectId"`
	SubjectCode         string          `json:"subjectCode"`
	SubjectDesc         string          `json:"subjectDesc"`
	EvtID               int             `json:"evtId"`
	EvtCode             string          `json:"evtCode"`
	EvtDate             string          `json:"evtDate"`
	DecimalValue        *float64        `json:"decimalValue"`
	DisplayValue        string          `json:"displayValue"`
	DisplayPos          int             `json:"displaPos"`
	NotesForFamily      string          `json:"notesForFamily"`
	Color               string          `json:"color"`
	Canceled            bool            `json:"canceled"`
	Underlined          bool            `json:"underlined"`
	PeriodPos           int             `json:"periodPos"`
	PeriodDesc          string          `json:"periodDesc"`
	ComponentPos        int             `json:"componentPos"`
	ComponentDesc       string          `json:"componentDesc"`
	WeightFactor        float64         `json:"weightFactor"`
	SkillID             int             `json:"skillId"`
	GradeMasterID       int             `json:"gradeMasterId"`
	SkillDesc           json.RawMessage `json:"skillDesc"`
	SkillCode           json.RawMessage `json:"skillCode"`
	SkillMasterID       int             `json:"skillMasterId"`
	SkillValueDesc      string          `json:"skillValueDesc"`
	SkillValueShortDesc json.RawMessage `json:"skillValueShortDesc"`
	OldSkillID          int             `json:"oldskillId"`
	OldSkillDesc        string          `json:"oldskillDesc"`
}

// AbsencesResponse mirrors /students/{id}/absences/details.
type AbsencesResponse struct {
	Events []Absence `json:"events"`
}

// Absence is an absence, late entry or early exit.
type Absence struct {
	EvtID            int             `json:"evtId"`
	EvtCode          string          `json:"evtCode"`
	EvtDate          string          `json:"evtDate"`
	EvtHPos          *int            `json:"evtHPos"`
	EvtValue         *int            `json:"evtValue"`
	IsJustified      bool            `json:"isJustified"`
	JustifReasonCode *string         `json:"justifReasonCode"`
	JustifReasonDesc *string         `json:"justifReasonDesc"`
	HoursAbsence     json.RawMessage `json:"hoursAbsence"`
}

// AgendaResponse mirrors /students/{id}/agenda/all/{start}/{end}.
type AgendaResponse struct {
	Agenda []AgendaEvent `json:"agenda"`
}

// AgendaEvent is a homework, note or other calendar entry.
type AgendaEvent struct {
	EvtID            int     `json:"evtId"`
	EvtCode          string  `json:"evtCode"`
	EvtDatetimeBegin string  `json:"evtDatetimeBegin"`
	EvtDatetimeEnd   string  `json:"evtDatetimeEnd"`
	IsFullDay        bool    `json:"isFullDay"`
	Notes            string  `json:"notes"`
	AuthorName       string  `json:"authorName"`
	ClassDesc        string  `json:"classDesc"`
	SubjectID        *int    `json:"subjectId"`
	SubjectDesc      *string `json:"subjectDesc"`
	HomeworkID       *string `json:"homeworkId"`
}

// LessonsResponse mirrors /students/{id}/lessons/{start}/{end}.
type LessonsResponse struct {
	Lessons []Lesson `json:"lessons"`
}

// Lesson is one taught hour as recorded by the teacher.
type Lesson struct {
	EvtID       int    `json:"evtId"`
	EvtDate     string `json:"evtDate"`
	EvtCode     string `json:"evtCode"`
	EvtHPos     int    `json:"evtHPos"`
	EvtDuration int    `json:"evtDuration"`
	ClassDesc   string `json:"classDesc"`
	AuthorName  string `json:"authorName"`
	SubjectID   int    `json:"subjectId"`
	SubjectCode string `json:"subjectCode"`
	SubjectDesc string `json:"subjectDesc"`
	LessonType  string `json:"lessonType"`
	LessonArg   string `json:"lessonArg"`
}
