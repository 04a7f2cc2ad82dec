package display

import "strings"

// sectionSuffixes are institutional suffixes appended to some subject names.
var sectionSuffixes = []string{"sez. INFORMATICA"}

var subjectAliases = map[string]string{
	"LINGUA E LETTERATURA ITALIANA":                                            "ITALIANO",
	"STORIA,CITTADINANZA E COSTITUZIONE":                                       "STORIA",
	"SCIENZE MOTORIE E SPORTIVE":                                               "MOTORIA",
	"TECNOLOGIE E PROGETTAZIONE DI SISTEMI INFORMATICI E DI TELECOMUNICAZIONI": "TPSIT",
}

var absenceLabels = map[string]string{
	"ABA0": "Assenza",
	"ABR0": "Ritardo",
	"ABR1": "R. Breve",
	"ABU0": "Uscita",
}

var agendaLabels = map[string]string{
	"AGHW": "Homework",
	"AGNT": "Nota",
}

// CanonicalSubject shortens a subject description for display. Unknown
// subjects are returned trimmed but otherwise unchanged.
func CanonicalSubject(desc string) string {
	subject := strings.TrimSpace(desc)
	for _, suffix := range sectionSuffixes {
		subject = strings.TrimSpace(strings.TrimSuffix(subject, suffix))
	}
	if alias, ok := subjectAliases[subject]; ok {
		return alias
	}
	return subject
}

// AbsenceLabel names an absence event code.
func AbsenceLabel(code string) string {
	return labelFor(absenceLabels, code)
}

// AgendaLabel names an agenda event code.
func AgendaLabel(code string) string {
	return labelFor(agendaLabels, code)
}

func labelFor(labels map[string]string, code string) string {
	if label, ok := labels[strings.TrimSpace(code)]; ok {
		return label
	}
	return code
}
