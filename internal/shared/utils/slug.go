package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// GenerateSlug - "Детские Игрушки" → "detskie-igrushki", "Café Noir" → "cafe-noir"
func GenerateSlug(input string) string {
	// Step 1: Transliterate to ASCII
	ascii := Transliterate(input)

	// Step 2: Lowercase + spaces → hyphens
	hyphenated := strings.ReplaceAll(strings.ToLower(ascii), " ", "-")

	// Step 3: Keep only a-z, 0-9, hyphens
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")

	// Step 4: Collapse and trim hyphens
	return strings.Trim(slugDashes.ReplaceAllString(cleaned, "-"), "-")
}

// Transliterate - Cyrillic và Latin có dấu → ASCII. Ký tự khác giữ nguyên.
func Transliterate(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	for _, r := range input {
		lower := r
		upper := false
		if r >= 'А' && r <= 'Я' || r == 'Ё' {
			lower = []rune(strings.ToLower(string(r)))[0]
			upper = true
		}
		if repl, ok := translit[lower]; ok {
			if upper && repl != "" {
				repl = strings.ToUpper(repl[:1]) + repl[1:]
			}
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var translit = map[rune]string{
	// Cyrillic
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",

	// Latin with diacritics
	'á': "a", 'à': "a", 'â': "a", 'ä': "a", 'ã': "a", 'å': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'ó': "o", 'ò': "o", 'ô': "o", 'ö': "o", 'õ': "o",
	'ú': "u", 'ù': "u", 'û': "u", 'ü': "u",
	'ç': "c", 'ñ': "n", 'ß': "ss",
}
