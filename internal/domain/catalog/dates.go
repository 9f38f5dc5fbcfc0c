package catalog

import (
	"fmt"
	"strings"
	"time"
)

// As datas do catálogo (avaliações, devlogs, lançamento) são strings já
// formatadas no padrão pt-BR "02 Jun, 2024": dia com dois dígitos, mês
// abreviado e ano com quatro dígitos. O formato veio do site e é mantido como
// está, inclusive para ordenação — o que torna a ordenação não confiável para
// strings fora desse padrão. ParseDate documenta os casos que não resolve.

var monthAbbr = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

var monthByAbbr = map[string]time.Month{
	"jan": time.January, "fev": time.February, "mar": time.March,
	"abr": time.April, "mai": time.May, "jun": time.June,
	"jul": time.July, "ago": time.August, "set": time.September,
	"out": time.October, "nov": time.November, "dez": time.December,
	// Abreviações inglesas aparecem em dados antigos importados.
	"feb": time.February, "apr": time.April, "may": time.May,
	"aug": time.August, "sep": time.September, "oct": time.October,
	"dec": time.December,
}

// FormatDate formata um instante no padrão de exibição do portal.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d %s, %d", t.Day(), monthAbbr[int(t.Month())-1], t.Year())
}

// ParseDate interpreta uma data no formato do portal ("02 Jun, 2024"), com
// tolerância a abreviações inglesas e ao formato ISO (2024-06-02). Strings que
// não casam com nenhum desses formatos resultam em zero time, o que faz o
// registro afundar para o fim de qualquer ordenação decrescente. Casos
// conhecidos que não resolve: meses por extenso, datas numéricas dd/mm/aaaa.
func ParseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}

	// "02 Jun, 2024" ou "2 Jun 2024".
	s = strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}
	}

	var day, year int
	if _, err := fmt.Sscanf(fields[0], "%d", &day); err != nil || day < 1 || day > 31 {
		return time.Time{}
	}
	month, ok := monthByAbbr[strings.ToLower(strings.TrimSuffix(fields[1], "."))]
	if !ok {
		return time.Time{}
	}
	if _, err := fmt.Sscanf(fields[2], "%d", &year); err != nil || year < 1000 {
		return time.Time{}
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
