package pipeline

import (
	"regexp"
	"strings"
)

// reTrailingComma は末尾のカンマと後続の空白
var reTrailingComma = regexp.MustCompile(`,\s*$`)

// Assemble は PublicationSummary と ResolvedLink を1つのレコードにまとめる
func (c *Config) Assemble(s PublicationSummary, link ResolvedLink) PublicationRecord {
	return PublicationRecord{
		Title:       s.Title,
		ScholarLink: c.DetailURL(s.DetailReference),
		SourceLink:  link.Source,
		Authors:     NormalizeAuthors(s.RawAuthorsText),
		Venue:       CleanVenue(s.RawVenueBlock, s.Year, c.VenueMarker),
		Year:        s.Year,
	}
}

// NormalizeAuthors は ", " で分割して各要素をトリムし、", " で再結合する
func NormalizeAuthors(raw string) string {
	parts := strings.Split(raw, ", ")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// CleanVenue は venue ブロックから年と定型文字列を取り除く
//
// 年は最初の1回だけ、marker は全て除去。末尾のカンマを1つ落としてトリムする。
// venue の構造は解釈しないので、崩れた入力では句読点が残ることがある。
func CleanVenue(raw, year, marker string) string {
	v := strings.TrimSpace(raw)
	if year != "" {
		v = strings.Replace(v, year, "", 1)
	}
	if marker != "" {
		v = strings.ReplaceAll(v, marker, "")
	}
	v = reTrailingComma.ReplaceAllString(v, "")
	return strings.TrimSpace(v)
}
