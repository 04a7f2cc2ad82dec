package portal

import (
	"errors"
	"testing"
)

func TestClassify_DataVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Kind
	}{
		{"expired 401", `{"statusCode":401,"error":"auth token expired","message":"token expired"}`, KindExpiredToken},
		{"expired by text", `{"statusCode":422,"error":"Token Expired","message":"renew"}`, KindExpiredToken},
		{"forbidden notice", `{"statusCode":403,"error":"403 Forbidden","message":"Auth token not valid"}`, KindExpiredToken},
		{"other notice", `{"statusCode":404,"error":"not found","message":"no such student"}`, KindExpiredToken},
		{"notice missing message", `{"statusCode":404,"error":"not found"}`, KindUnknown},
		{"grades", `{"grades":[{"subjectDesc":"MATEMATICA","evtId":1,"evtDate":"2026-10-01","decimalValue":7.5,"weightFactor":1}]}`, KindGrades},
		{"absences", `{"events":[{"evtId":3,"evtCode":"ABA0","evtDate":"2026-10-02","isJustified":false,"justifReasonDesc":null}]}`, KindAbsences},
		{"agenda", `{"agenda":[{"evtId":4,"evtCode":"AGHW","evtDatetimeBegin":"2026-10-05T08:00:00+02:00","notes":"p. 12"}]}`, KindAgenda},
		{"lessons", `{"lessons":[{"evtId":5,"evtDate":"2026-10-05","evtHPos":1,"lessonArg":"Derivate"}]}`, KindLessons},
		{"empty grades", `{"grades":[]}`, KindGrades},
		{"nothing known", `{"foo":"bar"}`, KindUnknown},
		{"array root", `[1,2,3]`, KindUnknown},
		{"login shape on data endpoint", `{"ident":"S1S","token":"t"}`, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Classify([]byte(tt.body))
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if env.Kind != tt.want {
				t.Fatalf("Kind = %s, want %s", env.Kind, tt.want)
			}
			if string(env.Raw) != tt.body {
				t.Fatalf("Raw not preserved")
			}
		})
	}
}

func TestClassify_DecodesPayload(t *testing.T) {
	env, err := Classify([]byte(`{"grades":[{"subjectDesc":"FISICA","evtDate":"2026-10-01","decimalValue":6.25,"displaPos":2,"oldskillId":7,"skillDesc":null}]}`))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if len(env.Grades) != 1 {
		t.Fatalf("Grades = %#v", env.Grades)
	}
	g := env.Grades[0]
	if g.SubjectDesc != "FISICA" || g.DecimalValue == nil || *g.DecimalValue != 6.25 || g.DisplayPos != 2 || g.OldSkillID != 7 {
		t.Fatalf("grade = %#v", g)
	}

	env, err = Classify([]byte(`{"statusCode":401,"error":"expired","message":"please login"}`))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if env.Notice == nil || env.Notice.Message != "please login" {
		t.Fatalf("Notice = %#v", env.Notice)
	}
}

func TestClassify_NoticeWinsOverPayloadKeys(t *testing.T) {
	env, err := Classify([]byte(`{"statusCode":401,"error":"x","message":"y","grades":[]}`))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if env.Kind != KindExpiredToken {
		t.Fatalf("Kind = %s, want expired-token", env.Kind)
	}
}

func TestClassify_InvalidJSON(t *testing.T) {
	env, err := Classify([]byte("<html>502</html>"))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("Classify error = %v, want ErrInvalidJSON", err)
	}
	if env.Kind != KindUnknown || string(env.Raw) != "<html>502</html>" {
		t.Fatalf("env = %#v", env)
	}
}

func TestClassify_MatchedShapeWithBadFieldsFails(t *testing.T) {
	env, err := Classify([]byte(`{"grades":[{"evtId":"not-a-number"}]}`))
	if err == nil {
		t.Fatalf("Classify returned nil error for undecodable grades")
	}
	if env.Kind != KindUnknown {
		t.Fatalf("Kind = %s, want unknown", env.Kind)
	}
}

func TestClassifyLogin(t *testing.T) {
	env, err := ClassifyLogin([]byte(`{"expire":"2026-10-17T20:00:00+02:00","firstName":"Ada","ident":"S12345S","lastName":"L","release":"x","showPwdChangeReminder":false,"token":"tok","tokenAP":"ap"}`))
	if err != nil {
		t.Fatalf("ClassifyLogin returned error: %v", err)
	}
	if env.Kind != KindLoginSuccess || env.Login == nil || env.Login.Token != "tok" || env.Login.Ident != "S12345S" {
		t.Fatalf("env = %#v", env)
	}

	env, err = ClassifyLogin([]byte(`{"statusCode":422,"error":"422 Unprocessable","info":"AuthenticationFailed","message":"wrong password"}`))
	if err != nil {
		t.Fatalf("ClassifyLogin returned error: %v", err)
	}
	if env.Kind != KindLoginError || env.Notice.Message != "wrong password" || env.Notice.Info != "AuthenticationFailed" {
		t.Fatalf("env = %#v", env)
	}

	env, err = ClassifyLogin([]byte(`{"grades":[]}`))
	if err != nil {
		t.Fatalf("ClassifyLogin returned error: %v", err)
	}
	if env.Kind != KindUnknown {
		t.Fatalf("Kind = %s, want unknown", env.Kind)
	}
}

func TestKindString(t *testing.T) {
	if KindExpiredToken.String() != "expired-token" || Kind(99).String() != "unknown" {
		t.Fatalf("unexpected Kind strings")
	}
}
