package formatters

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeStr normaliza uma string para busca (remove acentos e pontuação).
func NormalizeStr(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, strings.ToLower(str))
	if err != nil {
		normalized = strings.ToLower(str)
	}

	var b strings.Builder
	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDate interpreta datas no formato brasileiro (dd/mm/yyyy) ou ISO (yyyy-mm-dd).
// Retorna ok=false quando a string não se divide em exatamente três componentes
// numéricos, ou quando mês/dia estão fora de 1-12 / 1-31. Não há validação de
// quantidade de dias por mês nem de ano bissexto (comportamento conhecido e
// mantido: o seletor de data da UI já impede essas entradas).
func ParseDate(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}

	var parts []string
	if strings.Contains(dateStr, "/") {
		// dd/mm/yyyy -> yyyy/mm/dd
		p := strings.Split(dateStr, "/")
		for i := len(p) - 1; i >= 0; i-- {
			parts = append(parts, p[i])
		}
	} else {
		parts = strings.Split(dateStr, "-")
	}

	if len(parts) != 3 {
		return time.Time{}, false
	}

	year, errY := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	day, errD := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errY != nil || errM != nil || errD != nil {
		return time.Time{}, false
	}

	if year == 0 || month == 0 || day == 0 {
		return time.Time{}, false
	}
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	if day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// FormatDate formata uma data para exibição (DD/MM/YYYY). Strings que não
// puderem ser interpretadas voltam inalteradas.
func FormatDate(dateStr string) string {
	parsed, ok := ParseDate(dateStr)
	if !ok {
		return dateStr
	}
	return parsed.Format("02/01/2006")
}

// ToISO converte DD/MM/YYYY para YYYY-MM-DD (formato trocado com a API).
func ToISO(dateStr string) string {
	parsed, ok := ParseDate(dateStr)
	if !ok {
		return dateStr
	}
	return parsed.Format("2006-01-02")
}

// FromISO converte YYYY-MM-DD para DD/MM/YYYY.
func FromISO(dateStr string) string {
	return FormatDate(dateStr)
}

// FormatPhone formata um telefone brasileiro. 11 dígitos viram
// (DD) DDDDD-DDDD, 10 dígitos viram (DD) DDDD-DDDD; qualquer outra
// quantidade passa sem alteração.
func FormatPhone(phone string) string {
	cleaned := OnlyDigits(phone)

	switch len(cleaned) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", cleaned[0:2], cleaned[2:7], cleaned[7:11])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", cleaned[0:2], cleaned[2:6], cleaned[6:10])
	}

	return phone
}

// OnlyDigits remove tudo que não for dígito.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsDateInPast verifica se a data está antes de hoje (granularidade de dia).
// Datas que não puderem ser interpretadas não contam como passadas.
func IsDateInPast(dateStr string) bool {
	return isDateInPastAt(dateStr, time.Now())
}

func isDateInPastAt(dateStr string, now time.Time) bool {
	date, ok := ParseDate(dateStr)
	if !ok {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return date.Before(today)
}

// IsTimeInPast verifica se o horário já passou, mas somente quando a data é hoje.
func IsTimeInPast(dateStr, timeStr string) bool {
	return isTimeInPastAt(dateStr, timeStr, time.Now())
}

func isTimeInPastAt(dateStr, timeStr string, now time.Time) bool {
	date, ok := ParseDate(dateStr)
	if !ok {
		return false
	}

	isToday := date.Year() == now.Year() && date.Month() == now.Month() && date.Day() == now.Day()
	if !isToday {
		return false
	}

	parts := strings.SplitN(timeStr, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return false
	}
	minute := 0
	if len(parts) == 2 {
		if m, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			minute = m
		}
	}

	slot := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.Local)
	return slot.Before(now)
}
