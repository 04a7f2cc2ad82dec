package portal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a response body is not JSON at all.
var ErrInvalidJSON = errors.New("response is not valid JSON")

// Kind tags the variant a response body was classified as.
type Kind int

const (
	KindUnknown Kind = iota
	KindExpiredToken
	KindLoginSuccess
	KindLoginError
	KindGrades
	KindAbsences
	KindAgenda
	KindLessons
)

func (k Kind) String() string {
	switch k {
	case KindExpiredToken:
		return "expired-token"
	case KindLoginSuccess:
		return "login-success"
	case KindLoginError:
		return "login-error"
	case KindGrades:
		return "grades"
	case KindAbsences:
		return "absences"
	case KindAgenda:
		return "agenda"
	case KindLessons:
		return "lessons"
	default:
		return "unknown"
	}
}

// Envelope is a classified response. Exactly one payload field is set, the one
// matching Kind; Raw always holds the body for diagnostics.
type Envelope struct {
	Kind     Kind
	Raw      []byte
	Notice   *Notice
	Login    *LoginPayload
	Grades   []Grade
	Absences []Absence
	Agenda   []AgendaEvent
	Lessons  []Lesson
}

type variant struct {
	kind   Kind
	match  func(gjson.Result) bool
	decode func([]byte, *Envelope) error
}

// Data endpoints are matched in this order; the first structural match wins.
// Any notice on a data endpoint means the session token is no longer
// accepted, whatever its status code or text.
var dataVariants = []variant{
	{KindExpiredToken, isNotice, decodeNotice},
	{KindGrades, hasArray("grades"), decodeInto(func(e *Envelope, r *GradesResponse) { e.Grades = r.Grades })},
	{KindAbsences, hasArray("events"), decodeInto(func(e *Envelope, r *AbsencesResponse) { e.Absences = r.Events })},
	{KindAgenda, hasArray("agenda"), decodeInto(func(e *Envelope, r *AgendaResponse) { e.Agenda = r.Agenda })},
	{KindLessons, hasArray("lessons"), decodeInto(func(e *Envelope, r *LessonsResponse) { e.Lessons = r.Lessons })},
}

// Login responses are matched success first, then the error notice.
var loginVariants = []variant{
	{KindLoginSuccess, isLoginSuccess, decodeLogin},
	{KindLoginError, isNotice, decodeNotice},
}

// Classify tags a data endpoint response.
func Classify(body []byte) (Envelope, error) {
	return classify(body, dataVariants)
}

// ClassifyLogin tags an /auth/login response.
func ClassifyLogin(body []byte) (Envelope, error) {
	return classify(body, loginVariants)
}

func classify(body []byte, variants []variant) (Envelope, error) {
	env := Envelope{Kind: KindUnknown, Raw: body}
	if !gjson.ValidBytes(body) {
		return env, ErrInvalidJSON
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return env, nil
	}
	for _, v := range variants {
		if !v.match(root) {
			continue
		}
		env.Kind = v.kind
		if err := v.decode(body, &env); err != nil {
			env.Kind = KindUnknown
			return env, fmt.Errorf("decode %s payload: %w", v.kind, err)
		}
		return env, nil
	}
	return env, nil
}

func isNotice(r gjson.Result) bool {
	return r.Get("statusCode").Type == gjson.Number &&
		r.Get("error").Exists() &&
		r.Get("message").Exists()
}

func isLoginSuccess(r gjson.Result) bool {
	return r.Get("token").Type == gjson.String && r.Get("ident").Type == gjson.String
}

func hasArray(key string) func(gjson.Result) bool {
	return func(r gjson.Result) bool {
		return r.Get(key).IsArray()
	}
}

func decodeNotice(body []byte, env *Envelope) error {
	var n Notice
	if err := json.Unmarshal(body, &n); err != nil {
		return err
	}
	env.Notice = &n
	return nil
}

func decodeLogin(body []byte, env *Envelope) error {
	var p LoginPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return err
	}
	env.Login = &p
	return nil
}

func decodeInto[T any](assign func(*Envelope, *T)) func([]byte, *Envelope) error {
	return func(body []byte, env *Envelope) error {
		var payload T
		if err := json.Unmarshal(body, &payload); err != nil {
			return err
		}
		assign(env, &payload)
		return nil
	}
}
