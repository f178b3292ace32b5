package sqlerr

import (
	"fmt"
	"strings"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// message renders a client-facing description for constraint failures and
// falls back to the driver text for everything else.
func message(d Detail, err error) string {
	if d.Code != domainagg.CodeConstraintViolation {
		return err.Error()
	}
	entity := entityName(d.Table)
	field := humanize(d.Column)
	switch d.Kind {
	case KindUnique:
		if field != "" {
			return fmt.Sprintf("%s with this %s already exists", entity, strings.ToLower(field))
		}
		return fmt.Sprintf("%s with this identifier already exists", entity)
	case KindForeignKey:
		return "referenced record does not exist"
	case KindNotNull:
		if field != "" {
			return fmt.Sprintf("%s is required", field)
		}
		return "a required value is missing"
	case KindCheck:
		return "one or more values do not meet required conditions"
	default:
		return err.Error()
	}
}

func entityName(table string) string {
	t := strings.TrimSpace(table)
	if t == "" {
		return "Record"
	}
	if strings.HasSuffix(t, "s") && len(t) > 1 {
		t = t[:len(t)-1]
	}
	return humanize(t)
}

func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
